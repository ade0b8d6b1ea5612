package extract

import (
	"bufio"
	"strings"
)

// RemoteDate takes the last non-blank line of a date dump verbatim as the
// device's current date string.
func RemoteDate(data string) *string {
	var date *string

	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		value := line
		date = &value
	}

	return date
}
