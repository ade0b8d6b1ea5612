// Package extract turns raw command output captured on AirOS devices into
// partial, optional-field records. Every function in this package follows the
// same contract: malformed or missing input yields nil fields, never an error.
package extract

import (
	"bufio"
	"strconv"
	"strings"
)

// CPU detail labels, keyed by token position in the busybox top CPU line.
var cpuDetailFields = []struct {
	label string
	index int
}{
	{"Uso_por_Usuario", 1},
	{"Uso_por_Sistema", 3},
	{"Uso_por_NIC", 5},
	{"Tiempo_Ocioso", 7},
	{"Uso_por_E_S", 9},
	{"Interrupciones", 11},
	{"Interrupciones_Soft", 13},
}

// TopStats holds the fields recovered from a busybox top snapshot.
type TopStats struct {
	MemUsedMB *float64
	MemFreeMB *float64
	// CPUBusyPct is 100 minus the idle percentage.
	CPUBusyPct *int
	CPUDetail  map[string]int
}

// Top scans a `top -b -n1` snapshot for the Mem and CPU summary lines.
// A malformed token aborts only that line's assignment.
func Top(data string) TopStats {
	var stats TopStats

	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "Mem:"):
			parts := strings.Fields(line)

			used, err := kilobyteToken(parts, 1)
			if err != nil {
				continue
			}
			free, err := kilobyteToken(parts, 3)
			if err != nil {
				continue
			}

			stats.MemUsedMB = &used
			stats.MemFreeMB = &free

		case strings.HasPrefix(line, "CPU:"):
			parts := strings.Fields(line)

			detail := make(map[string]int, len(cpuDetailFields))
			valid := true
			for _, field := range cpuDetailFields {
				value, err := percentToken(parts, field.index)
				if err != nil {
					valid = false
					break
				}
				detail[field.label] = value
			}
			if !valid {
				continue
			}

			busy := 100 - detail["Tiempo_Ocioso"]
			stats.CPUBusyPct = &busy
			stats.CPUDetail = detail
		}
	}

	return stats
}

// kilobyteToken reads a "<n>K" token at the given position and converts it to
// megabytes. Positions past the end of the line are an error here, unlike
// percent fields, because the Mem line carries no optional tail.
func kilobyteToken(parts []string, index int) (float64, error) {
	if index >= len(parts) {
		return 0, strconv.ErrSyntax
	}

	value, err := strconv.Atoi(strings.ReplaceAll(parts[index], "K", ""))
	if err != nil {
		return 0, err
	}

	return float64(value) / 1024, nil
}

// percentToken reads a "<n>%" token at the given position. Positions past the
// end of the line count as zero so that short CPU lines still parse.
func percentToken(parts []string, index int) (int, error) {
	if index >= len(parts) {
		return 0, nil
	}

	return strconv.Atoi(strings.ReplaceAll(parts[index], "%", ""))
}
