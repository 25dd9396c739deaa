// Package metrics exposes Prometheus instruments for the summarization pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Summarize outcomes
const (
	OutcomeOK        = "ok"
	OutcomeUpstream  = "upstream_error"
	OutcomeMalformed = "malformed_response"
)

// Metrics owns a private registry so tests can build as many as they like
type Metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	wizardOps *prometheus.CounterVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "careerai",
			Name:      "summarize_requests_total",
			Help:      "Upstream summarization calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "careerai",
			Name:      "summarize_duration_seconds",
			Help:      "Upstream summarization latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"provider"}),
		wizardOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "careerai",
			Name:      "wizard_operations_total",
			Help:      "Wizard operations by kind and result.",
		}, []string{"op", "result"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.wizardOps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSummarize records one upstream call
func (m *Metrics) ObserveSummarize(provider, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(provider, outcome).Inc()
	m.latency.WithLabelValues(provider).Observe(took.Seconds())
}

// ObserveWizard records one wizard operation
func (m *Metrics) ObserveWizard(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.wizardOps.WithLabelValues(op, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
