// Package metrics provides Prometheus metrics collection for cutconf.
//
// # Metrics Categories
//
//   - Lookup Metrics: lookups by accessor kind and outcome, default
//     fallbacks by group
//   - Document Metrics: loaded document count, reloads by result, last
//     successful reload time
//   - Request Metrics: lookup server requests by endpoint and status,
//     request duration
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordLookup("scalar", "hit", "cuts")
//	collector.RecordReload(err, len(docs))
//
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// All Record methods are no-ops when metrics are disabled or the collector
// is nil.
//
// # Cardinality
//
// The kind, outcome, result and endpoint labels take a fixed set of values.
// Group names are caller supplied, so at most 1000 distinct groups are
// tracked; further groups are counted under "other".
package metrics
