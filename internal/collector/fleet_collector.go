// Package collector exposes the poller's own health as prometheus metrics:
// how long rounds take, how many devices answered, and whether the last
// snapshot made it into the store.
package collector

import (
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type FleetCollector struct {
	roundDuration   *prometheus.Desc
	devicesPolled   *prometheus.Desc
	devicesReported *prometheus.Desc
	publishSuccess  *prometheus.Desc
	roundAge        *prometheus.Desc
	roundsTotal     *prometheus.Desc

	logger *slog.Logger

	mu                  sync.RWMutex
	lastRoundDuration   float64
	lastDevicesPolled   float64
	lastDevicesReported float64
	lastPublishSuccess  float64
	lastRoundTime       time.Time
	rounds              float64
}

func NewFleetCollector(logger *slog.Logger) *FleetCollector {
	const (
		namespace = "antenna"
		subsystem = "fleet"
	)

	return &FleetCollector{
		roundDuration: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, "round_duration_seconds"),
			"Time the latest polling round took", nil, nil),
		devicesPolled: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, "devices_polled"),
			"Number of active devices in the latest round", nil, nil),
		devicesReported: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, "devices_reported"),
			"Number of devices that produced data in the latest round", nil, nil),
		publishSuccess: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, "publish_success"),
			"Whether the latest snapshot publish succeeded", nil, nil),
		roundAge: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, "round_age_seconds"),
			"Age of the latest completed round", nil, nil),
		roundsTotal: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, "rounds_total"),
			"Number of polling rounds run since start", nil, nil),
		logger: logger,
	}
}

// ObserveRound records the outcome of one polling round.
func (collector *FleetCollector) ObserveRound(duration time.Duration, polled, reported int, publishOK bool) {
	collector.mu.Lock()
	defer collector.mu.Unlock()

	collector.lastRoundDuration = duration.Seconds()
	collector.lastDevicesPolled = float64(polled)
	collector.lastDevicesReported = float64(reported)
	collector.lastPublishSuccess = 0
	if publishOK {
		collector.lastPublishSuccess = 1
	}
	collector.lastRoundTime = time.Now()
	collector.rounds++
}

func (collector *FleetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.roundDuration
	ch <- collector.devicesPolled
	ch <- collector.devicesReported
	ch <- collector.publishSuccess
	ch <- collector.roundAge
	ch <- collector.roundsTotal
}

func (collector *FleetCollector) Collect(ch chan<- prometheus.Metric) {
	collector.mu.RLock()
	lastRoundDuration := collector.lastRoundDuration
	lastDevicesPolled := collector.lastDevicesPolled
	lastDevicesReported := collector.lastDevicesReported
	lastPublishSuccess := collector.lastPublishSuccess
	lastRoundTime := collector.lastRoundTime
	rounds := collector.rounds
	collector.mu.RUnlock()

	roundAge := 0.0
	if !lastRoundTime.IsZero() {
		roundAge = time.Since(lastRoundTime).Seconds()
	}

	ch <- prometheus.MustNewConstMetric(collector.roundDuration, prometheus.GaugeValue, lastRoundDuration)
	ch <- prometheus.MustNewConstMetric(collector.devicesPolled, prometheus.GaugeValue, lastDevicesPolled)
	ch <- prometheus.MustNewConstMetric(collector.devicesReported, prometheus.GaugeValue, lastDevicesReported)
	ch <- prometheus.MustNewConstMetric(collector.publishSuccess, prometheus.GaugeValue, lastPublishSuccess)
	ch <- prometheus.MustNewConstMetric(collector.roundAge, prometheus.GaugeValue, roundAge)
	ch <- prometheus.MustNewConstMetric(collector.roundsTotal, prometheus.CounterValue, rounds)
}
