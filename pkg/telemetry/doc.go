// Package telemetry groups the observability packages of cutconf.
//
//   - logging: structured logging on log/slog with request and run context
//   - metrics: Prometheus counters for lookups, reloads and server requests
//   - health: liveness and readiness endpoints for the lookup server
package telemetry
