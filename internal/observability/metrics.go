// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Scenario metrics
	ScenarioRunsTotal *prometheus.CounterVec
	ScenarioDuration  prometheus.Histogram
	TradesSimulated   prometheus.Counter

	// Serving metrics
	WSStreamsServed prometheus.Counter
	RunsRegistered  prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "token_launch_lab"
	}

	return &Metrics{
		ScenarioRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scenario",
			Name:      "runs_total",
			Help:      "Total number of scenario runs by status",
		}, []string{"status"}),
		ScenarioDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scenario",
			Name:      "duration_seconds",
			Help:      "Scenario run duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
		TradesSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scenario",
			Name:      "trades_simulated_total",
			Help:      "Total number of trades simulated across all runs",
		}),
		WSStreamsServed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "ws_streams_served_total",
			Help:      "Total number of WebSocket snapshot streams served",
		}),
		RunsRegistered: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "runs_registered",
			Help:      "Number of runs held in the in-memory registry",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordScenarioRun records one scenario run with its outcome and duration.
func RecordScenarioRun(status string, durationSeconds float64, trades int) {
	DefaultMetrics.ScenarioRunsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.ScenarioDuration.Observe(durationSeconds)
	DefaultMetrics.TradesSimulated.Add(float64(trades))
}

// RecordWSStream increments the WebSocket streams served counter.
func RecordWSStream() {
	DefaultMetrics.WSStreamsServed.Inc()
}

// UpdateRegistrySize updates the registry size gauge.
func UpdateRegistrySize(size int) {
	DefaultMetrics.RunsRegistered.Set(float64(size))
}
