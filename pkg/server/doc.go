// Package server serves calibration lookups over HTTP.
//
// # Endpoints
//
//	GET /lookup   two-stage lookup (group, period, dependent, value, run, probe)
//	GET /value    flat read of a top-level key (key)
//
// Both take type (float, int, string, bool; default float), array
// (true/false) and an optional default. Array defaults are comma separated.
// A successful response reports the value, the lookup outcome and whether
// the default was used:
//
//	{"value": [-5, 5], "outcome": "hit", "default_used": false}
//
// A lookup that finds nothing and has no default answers 404 with the
// outcome that stopped it. Malformed parameters answer 400.
//
// When a health.Checker is configured the server also answers /healthz,
// /readyz and /version, and when a metrics.Collector is configured it
// exposes the registry at the configured metrics path.
//
// # Usage
//
//	srv, err := server.NewServer(&cfg.Server, server.Options{
//	    Reader:      rd,
//	    Logger:      logger,
//	    Metrics:     collector,
//	    MetricsPath: cfg.Telemetry.Metrics.Path,
//	})
//	if err != nil {
//	    return err
//	}
//	return srv.Start(ctx) // returns after ctx is done and shutdown completes
//
// Every request gets an X-Request-ID header (kept from the client when
// present) and the ID is attached to the request's log records.
package server
