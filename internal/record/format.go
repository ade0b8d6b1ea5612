// Package record builds the display-ready, sectioned per-device records and
// the fleet snapshot that gets published to the shared store. All values are
// pre-formatted strings with their unit attached; consumers render them as-is.
package record

import "fmt"

const bytesPerMegabyte = 1_048_576

// MemoryUsagePercent derives the used-memory percentage from the used and
// free megabyte counts. It reports false when the total is not positive, so a
// zeroed memory line never divides by zero.
func MemoryUsagePercent(usedMB, freeMB float64) (string, bool) {
	total := usedMB + freeMB
	if total <= 0 {
		return "", false
	}

	return fmt.Sprintf("%.1f %%", usedMB/total*100), true
}

// Megabits converts a byte counter to megabits for display. Note the factor
// of eight: the dashboard shows link throughput, not storage volume.
func Megabits(bytes int64) string {
	return fmt.Sprintf("%.1f Mb", float64(bytes)/bytesPerMegabyte*8)
}

// FormatUptime buckets an uptime in seconds into whole days, hours or
// minutes with a Spanish unit suffix. Zero or negative uptime reports false.
func FormatUptime(seconds int64) (string, bool) {
	if seconds <= 0 {
		return "", false
	}

	switch {
	case seconds >= 86400:
		return pluralize(seconds/86400, "día"), true
	case seconds >= 3600:
		return pluralize(seconds/3600, "hora"), true
	default:
		return pluralize(seconds/60, "minuto"), true
	}
}

// PacketLoss renders the drop counters for both directions. The field is
// present as soon as either counter is, with the missing side shown as zero.
func PacketLoss(rxDropped, txDropped *int64) (string, bool) {
	if rxDropped == nil && txDropped == nil {
		return "", false
	}

	return fmt.Sprintf("%d (Bajada), %d (Subida)", counterOrZero(rxDropped), counterOrZero(txDropped)), true
}

// pluralize treats only a count of exactly one as singular, so a count of
// zero renders with the plural suffix ("0 minutos").
func pluralize(count int64, unit string) string {
	suffix := ""
	if count != 1 {
		suffix = "s"
	}

	return fmt.Sprintf("%d %s%s", count, unit, suffix)
}

func counterOrZero(counter *int64) int64 {
	if counter == nil {
		return 0
	}

	return *counter
}
