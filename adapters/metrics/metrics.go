// Package metrics provides Prometheus metrics collection for QuoteFlow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for QuoteFlow.
type Collector struct {
	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Gate metrics
	ValidationFailures *prometheus.CounterVec
	AuthFailures       *prometheus.CounterVec

	// Store metrics
	StoreErrors *prometheus.CounterVec

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter
}

// New creates a new metrics collector with all metrics registered.
func New() *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quoteflow",
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "quoteflow",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path", "status"},
		),
		RequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "quoteflow",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),
		ValidationFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quoteflow",
				Name:      "validation_failures_total",
				Help:      "Requests rejected by the schema validation gate",
			},
			[]string{"path"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quoteflow",
				Name:      "auth_failures_total",
				Help:      "Token and permission check failures",
			},
			[]string{"reason"},
		),
		StoreErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quoteflow",
				Name:      "store_errors_total",
				Help:      "Unclassified persistence-layer failures",
			},
			[]string{"resource"},
		),
		ConfigReloads: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "quoteflow",
				Name:      "config_reloads_total",
				Help:      "Successful configuration reloads",
			},
		),
		ConfigReloadErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "quoteflow",
				Name:      "config_reload_errors_total",
				Help:      "Configuration reloads that failed",
			},
		),
	}
}
