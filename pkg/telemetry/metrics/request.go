package metrics

import (
	"time"

	"github.com/hadronlab/cutconf/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks HTTP requests served by the lookup server.
//
// Metrics:
//   - cutconf_reader_requests_total: Requests by endpoint and status code
//   - cutconf_reader_request_duration_seconds: Request duration histogram
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of lookup server requests",
			},
			[]string{"endpoint", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of lookup server requests in seconds",
				// Lookups are in-memory: 50µs to ~100ms.
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 7),
			},
			[]string{"endpoint"},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
	)

	return rm
}

// RecordRequest records a served request.
func (rm *RequestMetrics) RecordRequest(endpoint, status string, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(endpoint, status).Inc()
	rm.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
