package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// RunKey is the context key for the run number being processed.
	RunKey contextKey = "run"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithRun adds a run number to the context.
func WithRun(ctx context.Context, run int64) context.Context {
	return context.WithValue(ctx, RunKey, run)
}

// GetRun retrieves the run number from the context.
func GetRun(ctx context.Context) (int64, bool) {
	run, ok := ctx.Value(RunKey).(int64)
	return run, ok
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if run, ok := GetRun(ctx); ok {
		fields = append(fields, "run", run)
	}

	return fields
}
