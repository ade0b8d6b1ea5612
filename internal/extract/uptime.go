package extract

import (
	"bufio"
	"strconv"
	"strings"
)

// Uptime parses the "up <days> days, HH:MM" pattern from an uptime dump into
// total seconds. The days segment is optional. A malformed or missing pattern
// yields nil.
func Uptime(data string) *int64 {
	var uptimeSeconds *int64

	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()

		_, rest, found := strings.Cut(line, "up ")
		if !found {
			continue
		}

		segments := strings.Split(rest, ",")
		first := strings.TrimSpace(segments[0])

		var days int64
		timeSegment := first
		if strings.Contains(first, "day") {
			fields := strings.Fields(first)
			value, err := strconv.ParseInt(fields[0], 10, 64)
			if err != nil || len(segments) < 2 {
				continue
			}
			days = value
			timeSegment = strings.TrimSpace(segments[1])
		}

		clock := strings.Split(timeSegment, ":")
		if len(clock) != 2 {
			continue
		}
		hours, err := strconv.ParseInt(clock[0], 10, 64)
		if err != nil {
			continue
		}
		minutes, err := strconv.ParseInt(clock[1], 10, 64)
		if err != nil {
			continue
		}

		total := days*86400 + hours*3600 + minutes*60
		uptimeSeconds = &total
	}

	return uptimeSeconds
}
