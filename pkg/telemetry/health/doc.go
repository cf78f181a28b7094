// Package health provides health check endpoints for the cutconf lookup
// server.
//
// # Endpoints
//
//   - /healthz: Liveness probe, 200 while the process is running
//   - /readyz: Readiness probe, runs every registered check
//   - /version: Build information
//
// # Usage
//
//	checker := health.New(time.Second)
//	checker.WatchDocuments(r, time.Hour)
//
//	mux := http.NewServeMux()
//	health.Register(mux, checker, version, commit, buildDate)
//
// Checks run concurrently, each bounded by the checker's timeout. A critical
// check that fails or times out marks the server unhealthy and the readiness
// endpoint answers 503. A failing warning check only marks it degraded: the
// server still answers lookups, so readiness stays 200.
package health
