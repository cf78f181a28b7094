// Package logging provides structured logging for cutconf.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with request IDs and run numbers
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logger.Info("Documents loaded",
//	    "sources", 2,
//	    "duration_ms", 3,
//	)
//
//	// Components that accept a *slog.Logger
//	r, err := reader.Open(reader.Options{Logger: logger.Slog()}, "cuts.yaml")
//
//	// Context-aware logging
//	ctx := logging.WithRequestID(ctx, "req-123")
//	logger.WithContext(ctx).Info("Lookup served")
//
// Logs go to stderr unless Config.Writer is set, keeping stdout free for
// command output.
package logging
