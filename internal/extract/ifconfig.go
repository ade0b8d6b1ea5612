package extract

import (
	"strconv"
	"strings"
)

// InterfaceStats holds packet statistics and hardware addresses read from an
// ifconfig dump.
type InterfaceStats struct {
	RxPackets   *int64
	TxPackets   *int64
	RxDropped   *int64
	TxDropped   *int64
	WirelessMAC *string
	WiredMAC    *string
}

// Ifconfig scans an ifconfig dump for the wireless interface block. Packet
// counts come from the first "RX packets" line following the interface name;
// later blocks are ignored. Hardware addresses are taken from HWaddr lines
// tagged with the wireless or wired interface name.
func Ifconfig(data string) InterfaceStats {
	var stats InterfaceStats

	lines := strings.Split(data, "\n")
	for i, line := range lines {
		if strings.Contains(line, "HWaddr") {
			if strings.Contains(line, wirelessInterface) {
				mac := hwAddr(line)
				stats.WirelessMAC = &mac
			} else if strings.Contains(line, wiredInterface) {
				mac := hwAddr(line)
				stats.WiredMAC = &mac
			}
		}

		// The interface header line both carries the hardware address and
		// opens the block whose statistics line we want.
		if !strings.Contains(line, wirelessInterface) || stats.RxPackets != nil {
			continue
		}

		for _, next := range lines[i+1:] {
			if !strings.Contains(next, "RX packets") {
				continue
			}
			parsePacketLine(next, &stats)
			break
		}
	}

	return stats
}

// parsePacketLine reads packet and drop counters from their fixed token
// positions. Assignments are made in order; the first malformed token stops
// the remaining ones but keeps those already made.
func parsePacketLine(line string, stats *InterfaceStats) {
	parts := strings.Fields(line)

	rxPackets, err := counterToken(parts, 0)
	if err != nil {
		return
	}
	stats.RxPackets = &rxPackets

	txPackets, err := counterToken(parts, 4)
	if err != nil {
		return
	}
	stats.TxPackets = &txPackets

	rxDropped, err := taggedCounter(line, parts, 3, "dropped:")
	if err != nil {
		return
	}
	stats.RxDropped = &rxDropped

	txDropped, err := taggedCounter(line, parts, 7, "overruns:")
	if err != nil {
		return
	}
	stats.TxDropped = &txDropped
}

// taggedCounter reads the number after a "tag:" marker in the token at the
// given position. A line that does not mention the tag at all counts as zero.
func taggedCounter(line string, parts []string, index int, tag string) (int64, error) {
	if !strings.Contains(line, strings.TrimSuffix(tag, ":")) {
		return 0, nil
	}
	if index >= len(parts) {
		return 0, strconv.ErrSyntax
	}

	_, value, found := strings.Cut(parts[index], tag)
	if !found {
		return 0, strconv.ErrSyntax
	}

	return strconv.ParseInt(value, 10, 64)
}

func hwAddr(line string) string {
	_, mac, _ := strings.Cut(line, "HWaddr ")
	return strings.TrimSpace(mac)
}
