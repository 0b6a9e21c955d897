package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	summaries       *prometheus.CounterVec
	storeFailures   prometheus.Counter
	pipelineSeconds prometheus.Histogram
}

// New creates the collectors and registers them with a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		summaries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "summaryhub",
				Name:      "summaries_total",
				Help:      "Summary records produced, by type and urgency.",
			},
			[]string{"type", "urgency"},
		),
		storeFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "summaryhub",
				Name:      "store_failures_total",
				Help:      "Summary records that could not be persisted.",
			},
		),
		pipelineSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "summaryhub",
				Name:      "pipeline_seconds",
				Help:      "Time spent running the summarize pipeline.",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
		),
	}
	reg.MustRegister(
		m.summaries,
		m.storeFailures,
		m.pipelineSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSummary counts a produced record and its pipeline latency
func (m *Metrics) ObserveSummary(recordType, urgency string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.summaries.WithLabelValues(recordType, urgency).Inc()
	m.pipelineSeconds.Observe(elapsed.Seconds())
}

// StoreFailure counts a record that was returned but not persisted
func (m *Metrics) StoreFailure() {
	if m == nil {
		return
	}
	m.storeFailures.Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
