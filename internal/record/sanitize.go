package record

import "strings"

// SanitizeKey replaces every character the store rejects in key paths with an
// underscore.
func SanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '$', '#', '[', ']', '/', '.':
			return '_'
		}
		return r
	}, key)
}
