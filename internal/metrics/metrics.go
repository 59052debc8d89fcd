// Package metrics exposes gateway and keep-alive counters to prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zachkp/analyst-dashboard/internal/gateway"
)

// Recorder owns a private registry so several instances can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	fetches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	pings    *prometheus.CounterVec
}

// NewRecorder registers the dashboard collectors plus Go runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_fetch_total",
			Help: "Gateway calls by dataset and data source.",
		}, []string{"dataset", "source"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gateway_fetch_duration_seconds",
			Help:    "Time spent serving a gateway call.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"dataset"}),
		pings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keepalive_pings_total",
			Help: "Keep-alive pings by result.",
		}, []string{"result"}),
	}

	r.registry.MustRegister(
		r.fetches,
		r.duration,
		r.pings,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Observe implements gateway.Observer.
func (r *Recorder) Observe(o gateway.Outcome) {
	r.fetches.WithLabelValues(string(o.Dataset), string(o.Source)).Inc()
	r.duration.WithLabelValues(string(o.Dataset)).Observe(o.Latency.Seconds())
}

// ObservePing counts one keep-alive ping.
func (r *Recorder) ObservePing(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.pings.WithLabelValues(result).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
