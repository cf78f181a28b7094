package metrics

import (
	"time"

	"github.com/hadronlab/cutconf/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DocumentMetrics tracks the loaded document set and its reloads.
//
// Metrics:
//   - cutconf_reader_documents: Number of documents currently loaded
//   - cutconf_reader_reloads_total: Reload attempts by result
//   - cutconf_reader_last_reload_timestamp_seconds: Time of the last
//     successful reload
type DocumentMetrics struct {
	documents           prometheus.Gauge
	reloadsTotal        *prometheus.CounterVec
	lastReloadTimestamp prometheus.Gauge
}

// NewDocumentMetrics creates and registers document metrics with the provided registry.
func NewDocumentMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DocumentMetrics {
	dm := &DocumentMetrics{
		documents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents",
				Help:      "Number of calibration documents currently loaded",
			},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reloads_total",
				Help:      "Total number of document reloads by result",
			},
			[]string{"result"},
		),

		lastReloadTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_reload_timestamp_seconds",
				Help:      "Unix time of the last successful document reload",
			},
		),
	}

	registry.MustRegister(
		dm.documents,
		dm.reloadsTotal,
		dm.lastReloadTimestamp,
	)

	return dm
}

// SetDocuments sets the number of loaded documents.
func (dm *DocumentMetrics) SetDocuments(n int) {
	dm.documents.Set(float64(n))
}

// RecordReload records a reload attempt. A successful reload also stamps
// the last reload time.
func (dm *DocumentMetrics) RecordReload(success bool, at time.Time) {
	if !success {
		dm.reloadsTotal.WithLabelValues("error").Inc()
		return
	}
	dm.reloadsTotal.WithLabelValues("success").Inc()
	dm.lastReloadTimestamp.Set(float64(at.Unix()))
}
