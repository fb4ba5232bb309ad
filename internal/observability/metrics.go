package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	// Upstream (Notamify API) metrics.
	UpstreamRequests    *prometheus.CounterVec // labels: outcome={success,error}
	UpstreamDuration    prometheus.Histogram
	PagesPerAggregation prometheus.Histogram
	NotamsCollected     prometheus.Histogram

	// API surface metrics.
	APIRequests *prometheus.CounterVec // labels: endpoint, status
	APIDuration *prometheus.HistogramVec
}

// NewMetrics creates all service metrics and registers them with the given
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notamify",
			Name:      "upstream_requests_total",
			Help:      "Page requests issued against the Notamify API, by outcome.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "notamify",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of a single Notamify page request.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PagesPerAggregation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "notamify",
			Name:      "pages_per_aggregation",
			Help:      "Number of pages walked to assemble one aggregate result.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		NotamsCollected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "notamify",
			Name:      "notams_collected",
			Help:      "NOTAMs collected per completed aggregation.",
			Buckets:   []float64{0, 10, 30, 60, 90, 150, 300, 600},
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notamify",
			Name:      "api_requests_total",
			Help:      "API requests served, by endpoint and HTTP status.",
		}, []string{"endpoint", "status"}),
		APIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "notamify",
			Name:      "api_request_duration_seconds",
			Help:      "Duration of served API requests, by endpoint.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"endpoint"}),
	}

	reg.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.PagesPerAggregation,
		m.NotamsCollected,
		m.APIRequests,
		m.APIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
