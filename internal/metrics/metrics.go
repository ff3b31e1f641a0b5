// Package metrics exposes Prometheus instrumentation for pipeline
// invocations and the HTTP surface.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements the pipeline invocation observer and serves the
// scrape endpoint.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	httpReqs    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "refit_model_invocations_total",
			Help: "Model invocations by task and outcome.",
		}, []string{"task", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "refit_model_invocation_seconds",
			Help:    "Model invocation latency by task.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"task"}),
		httpReqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "refit_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"route", "status"}),
	}
	m.registry.MustRegister(m.invocations, m.duration, m.httpReqs)
	return m
}

func (m *Metrics) OnInvocationStart(task string) {}

func (m *Metrics) OnInvocationEnd(task string, success bool, elapsed time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.invocations.WithLabelValues(task, outcome).Inc()
	m.duration.WithLabelValues(task).Observe(elapsed.Seconds())
}

// CountRequest records one handled HTTP request.
func (m *Metrics) CountRequest(route, status string) {
	m.httpReqs.WithLabelValues(route, status).Inc()
}

// Handler returns the scrape endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
