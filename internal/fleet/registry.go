// Package fleet drives one polling round end to end: read the device
// registry, collect and parse the seven command outputs per device, assemble
// the records and publish the consolidated snapshot.
package fleet

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/wisplabs/antenna-poller/pkg/redis"
)

const (
	registryKeyPrefix = "antenas_registradas:"

	registryScanCount = 256
)

// Device is one registry entry flagged active.
type Device struct {
	ID          string
	Name        string
	IP          string
	SSHUser     string
	SSHPassword string
}

// loadDevices reads the registry hashes and keeps only the active entries.
// Incomplete entries are skipped with a log line, never fatal.
func loadDevices(ctx context.Context, store *redis.Client, logger *slog.Logger) ([]Device, error) {
	keys, err := store.ScanKeys(ctx, registryKeyPrefix+"*", registryScanCount)
	if err != nil {
		return nil, fmt.Errorf("failed to scan device registry: %w", err)
	}

	sort.Strings(keys)

	devices := make([]Device, 0, len(keys))
	for _, key := range keys {
		entry, err := store.HGetAll(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read registry entry %s: %w", key, err)
		}

		if len(entry) == 0 {
			continue
		}

		active, err := strconv.ParseBool(entry["activa"])
		if err != nil || !active {
			continue
		}

		device := Device{
			ID:          strings.TrimPrefix(key, registryKeyPrefix),
			Name:        entry["nombre"],
			IP:          entry["ip"],
			SSHUser:     entry["usuario_ssh"],
			SSHPassword: entry["password_ssh"],
		}

		if device.IP == "" {
			logger.Warn("Registry entry has no IP, skipping", "device", device.ID)
			continue
		}

		devices = append(devices, device)
	}

	return devices, nil
}
