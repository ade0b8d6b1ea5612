package fleet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/wisplabs/antenna-poller/internal/record"
	"github.com/wisplabs/antenna-poller/pkg/redis"
)

// Snapshot key paths in the shared store. The dashboard reads both.
const (
	snapshotAntennasKey  = "antenas/aggregated_data/antennas"
	snapshotTimestampKey = "antenas/aggregated_data/timestamp"

	snapshotTimestampLayout = "2006-01-02 15:04 PM"
)

// RoundObserver receives the outcome of each polling round.
type RoundObserver interface {
	ObserveRound(duration time.Duration, polled, reported int, publishOK bool)
}

// Poller processes rounds against a fixed set of collaborators, acquired once
// at startup and never re-acquired per round.
type Poller struct {
	store    *redis.Client
	runner   CommandRunner
	observer RoundObserver
	logger   *slog.Logger
	pause    time.Duration

	now func() time.Time
}

func NewPoller(store *redis.Client, runner CommandRunner, observer RoundObserver, logger *slog.Logger, pause time.Duration) *Poller {
	return &Poller{
		store:    store,
		runner:   runner,
		observer: observer,
		logger:   logger,
		pause:    pause,
		now:      time.Now,
	}
}

// Run polls forever, pausing a fixed interval after each round finishes. No
// round failure is fatal; the next round supersedes whatever went wrong.
func (p *Poller) Run(ctx context.Context) {
	for {
		if err := p.RunRound(ctx); err != nil {
			p.logger.Error("Polling round failed", "error", err)
		}

		select {
		case <-ctx.Done():
			p.logger.Info("Polling loop stopped")
			return
		case <-time.After(p.pause):
		}
	}
}

// RunRound processes exactly one polling round: registry read, per-device
// collection, snapshot publish. Devices that yielded nothing are dropped, not
// published as placeholders.
func (p *Poller) RunRound(ctx context.Context) error {
	start := p.now()

	devices, err := loadDevices(ctx, p.store, p.logger)
	if err != nil {
		p.observer.ObserveRound(p.now().Sub(start), 0, 0, false)
		return err
	}

	antennas := make([]record.DeviceRecord, 0, len(devices))
	for _, device := range devices {
		if deviceRecord := p.collectDevice(ctx, device); deviceRecord != nil {
			antennas = append(antennas, *deviceRecord)
		}
	}

	snapshot := record.FleetSnapshot{
		Timestamp: p.now().Format(snapshotTimestampLayout),
		Antennas:  antennas,
	}

	err = p.publish(ctx, snapshot)
	p.observer.ObserveRound(p.now().Sub(start), len(devices), len(antennas), err == nil)
	if err != nil {
		return err
	}

	p.logger.Info("Fleet snapshot published", "timestamp", snapshot.Timestamp, "devices_polled", len(devices), "devices_reported", len(antennas))
	return nil
}

// publish replaces the previous snapshot wholesale. The antenna list and the
// timestamp go out in one pipelined write; per-device merging never happens.
func (p *Poller) publish(ctx context.Context, snapshot record.FleetSnapshot) error {
	antennas, err := json.Marshal(snapshot.Antennas)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	err = p.store.SetMulti(ctx, map[string]string{
		snapshotAntennasKey:  string(antennas),
		snapshotTimestampKey: snapshot.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	return nil
}
