package metrics

import (
	"github.com/hadronlab/cutconf/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LookupMetrics tracks how lookups against the loaded documents resolve.
//
// Metrics:
//   - cutconf_reader_lookups_total: Lookups by accessor kind and outcome
//   - cutconf_reader_defaults_total: Lookups that fell back to the caller's
//     default, by group
type LookupMetrics struct {
	// Lookup counter
	lookupsTotal *prometheus.CounterVec

	// Default fallback counter
	defaultsTotal *prometheus.CounterVec
}

// NewLookupMetrics creates and registers lookup metrics with the provided registry.
func NewLookupMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LookupMetrics {
	lm := &LookupMetrics{
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lookups_total",
				Help:      "Total number of lookups by accessor kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		defaultsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "defaults_total",
				Help:      "Total number of lookups answered with the caller's default",
			},
			[]string{"group"},
		),
	}

	registry.MustRegister(
		lm.lookupsTotal,
		lm.defaultsTotal,
	)

	return lm
}

// RecordLookup records one lookup.
//
// Parameters:
//   - kind: Accessor kind ("scalar", "sequence", "value", "array")
//   - outcome: Resolution outcome ("hit", "group_missing", "no_period",
//     "no_value", "conversion")
func (lm *LookupMetrics) RecordLookup(kind, outcome string) {
	lm.lookupsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordDefault records a default fallback for group.
func (lm *LookupMetrics) RecordDefault(group string) {
	lm.defaultsTotal.WithLabelValues(group).Inc()
}
