package extract

import (
	"bufio"
	"strconv"
	"strings"
)

const (
	wirelessInterface = "ath0"
	wiredInterface    = "eth0"
)

// NetDevCounters holds the wireless interface counters read from
// /proc/net/dev.
type NetDevCounters struct {
	RxBytes   *int64
	RxPackets *int64
	TxBytes   *int64
	TxPackets *int64
}

// NetDev locates the wireless interface row in a /proc/net/dev dump and reads
// its receive and transmit counters from their fixed column positions.
// Counters are assigned in order; the first malformed token stops the
// remaining assignments but keeps the ones already made.
func NetDev(data string) NetDevCounters {
	var counters NetDevCounters

	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(strings.TrimSpace(line), wirelessInterface+":") {
			continue
		}

		parts := strings.Fields(line)
		targets := []struct {
			index int
			value **int64
		}{
			{1, &counters.RxBytes},
			{2, &counters.RxPackets},
			{9, &counters.TxBytes},
			{10, &counters.TxPackets},
		}

		for _, target := range targets {
			value, err := counterToken(parts, target.index)
			if err != nil {
				break
			}
			*target.value = &value
		}
	}

	return counters
}

func counterToken(parts []string, index int) (int64, error) {
	if index >= len(parts) {
		return 0, strconv.ErrSyntax
	}

	return strconv.ParseInt(parts[index], 10, 64)
}
