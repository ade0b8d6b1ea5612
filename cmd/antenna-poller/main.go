package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/promslog"
	"github.com/prometheus/common/promslog/flag"
	"github.com/prometheus/exporter-toolkit/web"
	webflag "github.com/prometheus/exporter-toolkit/web/kingpinflag"
	nodecollector "github.com/prometheus/node_exporter/collector"
	"github.com/wisplabs/antenna-poller/internal/collector"
	"github.com/wisplabs/antenna-poller/internal/fleet"
	"github.com/wisplabs/antenna-poller/pkg/redis"
	"github.com/wisplabs/antenna-poller/pkg/sshclient"
)

func main() {
	// setup node exporter collectors through global kingpin flags
	kingpin.CommandLine.Parse([]string{
		"--collector.disable-defaults",
		"--collector.loadavg",
		"--collector.cpu",
		"--collector.meminfo",
		"--collector.time",
	})

	// New kingpin instance to prevent imported code from adding flags (node exporter)
	kp := kingpin.New("antenna-poller", "Fleet telemetry poller for AirOS wireless bridges")

	var (
		webConfig   = webflag.AddFlags(kp, ":9110")
		metricsPath = kp.Flag("web.telemetry-path", "Path under which to expose metrics.").Default("/metrics").String()
		pollPause   = kp.Flag("poll.pause", "Pause between the end of one polling round and the start of the next.").Default("30s").Duration()
	)

	promslogConfig := &promslog.Config{}
	flag.AddFlags(kp, promslogConfig)
	kp.HelpFlag.Short('h')
	kp.UsageWriter(os.Stdout)
	kp.Parse(os.Args[1:])

	logger := promslog.New(promslogConfig)

	store, err := redis.NewClient()
	if err != nil {
		logger.Error("Failed to connect to the shared store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	runner, err := sshclient.NewClient()
	if err != nil {
		logger.Error("Failed to configure the ssh transport", "error", err)
		os.Exit(1)
	}

	fleetCollector := collector.NewFleetCollector(logger)
	prometheus.MustRegister(fleetCollector)

	// Node exporter collectors for the poller host itself
	nodeCollector, err := nodecollector.NewNodeCollector(logger,
		"loadavg",
		"cpu",
		"meminfo",
		"time",
	)
	if err != nil {
		logger.Error("Failed to create node collector", "error", err)
		os.Exit(1)
	}
	prometheus.MustRegister(nodeCollector)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := fleet.NewPoller(store, runner, fleetCollector, logger, *pollPause)
	go poller.Run(ctx)

	http.Handle(*metricsPath, promhttp.Handler())
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`<html>
             <head><title>Antenna Poller</title></head>
             <body>
             <h1>Antenna Poller</h1>
             <p><a href='` + *metricsPath + `'>Metrics</a></p>
             </body>
             </html>`))
		if err != nil {
			logger.Error("Error writing response", "error", err)
		}
	})
	srv := &http.Server{}
	if err := web.ListenAndServe(srv, webConfig, logger); err != nil {
		logger.Error("Error starting HTTP server", "error", err)
		os.Exit(1)
	}
}
