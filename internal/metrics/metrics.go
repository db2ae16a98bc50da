package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the tracker.
type Metrics struct {
	FetchesTotal    *prometheus.CounterVec // labels: source
	FetchErrors     *prometheus.CounterVec // labels: source
	FetchDuration   prometheus.Histogram
	AlertsTriggered prometheus.Counter
	StreamClients   prometheus.Gauge

	registry *prometheus.Registry
}

// New registers and returns all tracker metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goldtracker_fetches_total",
			Help: "Successful upstream price fetches by source",
		}, []string{"source"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goldtracker_fetch_errors_total",
			Help: "Failed upstream price fetches by source",
		}, []string{"source"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "goldtracker_fetch_duration_seconds",
			Help:    "Upstream fetch latency",
			Buckets: prometheus.DefBuckets,
		}),
		AlertsTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goldtracker_alerts_triggered_total",
			Help: "Price alerts that fired",
		}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "goldtracker_stream_clients",
			Help: "Currently connected WebSocket clients",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.FetchesTotal,
		m.FetchErrors,
		m.FetchDuration,
		m.AlertsTriggered,
		m.StreamClients,
	)
	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
