package extract

import (
	"bufio"
	"strings"
)

const airmaxMarker = "airMAX"

// Airmax reads the vendor link-quality status block as an opaque key/value
// map. Only lines carrying the airMAX marker are considered, and only when
// they split into exactly one key and one value around a colon.
func Airmax(data string) map[string]string {
	status := map[string]string{}

	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, airmaxMarker) {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}

		key := strings.ReplaceAll(strings.TrimSpace(parts[0]), " ", "_")
		status[key] = strings.TrimSpace(parts[1])
	}

	return status
}
