// Package reader answers calibration lookups against one or more loaded
// YAML documents.
//
// # Lookups
//
// A two-stage lookup names a group (the top-level list of run periods), the
// key holding each period's run interval, a dependent key (such as "pid" or
// "sector") and the key of the payload:
//
//	cuts:
//	  - runs: [6000, 6500]
//	    pid:
//	      - pid: 11
//	        vals: [-5, 5]
//	    vals: [-15, 15]
//
//	q := reader.Query{Group: "cuts", Period: "runs", Dependent: "pid", Value: "vals", Run: 6143, Probe: 11}
//	vals := reader.LookupSlice(r, q, []float64{-20, 20}) // [-5 5]
//
// When the period has no dependent list, or no element matches the probe,
// the period's own payload is used. The pass-through dependent key
// ("single" unless configured otherwise) skips the dependent list; a scalar
// lookup in that mode indexes a sequence payload by the probe, so 0 and 1
// address the low and high bound of a pair.
//
// Flat reads use Value and Array for top-level keys.
//
// Every accessor takes a default and returns it when any stage fails. No
// lookup returns an error; failures are logged at debug level and counted
// in the metrics collector. The Find variants return the outcome instead
// of taking a default.
//
// Callers that learn the result type at run time, such as the CLI and the
// HTTP server, use Evaluate with a textual ValueType and default.
//
// # Documents
//
// A Reader holds its documents in precedence order. A lookup that cannot be
// answered by one document is tried against the next. The document set is
// immutable and swapped atomically by Reload, so lookups never block.
// Watcher and Scheduler trigger reloads on file changes and on a cron
// schedule.
package reader
