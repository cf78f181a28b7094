package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "reader.debounce").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateReader(&cfg.Reader)...)
	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateReader validates the reader configuration.
func validateReader(cfg *ReaderConfig) []FieldError {
	var errs []FieldError

	for i, src := range cfg.Sources {
		if strings.TrimSpace(src) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("reader.sources[%d]", i),
				Message: "source path must not be empty",
			})
		}
	}

	if cfg.PassThroughKey == "" {
		errs = append(errs, FieldError{
			Field:   "reader.pass_through_key",
			Message: "pass-through key is required",
		})
	}
	if cfg.BoundMinKey == "" {
		errs = append(errs, FieldError{
			Field:   "reader.bound_min_key",
			Message: "bound min key is required",
		})
	}
	if cfg.BoundMaxKey == "" {
		errs = append(errs, FieldError{
			Field:   "reader.bound_max_key",
			Message: "bound max key is required",
		})
	}
	if cfg.BoundMinKey != "" && cfg.BoundMinKey == cfg.BoundMaxKey {
		errs = append(errs, FieldError{
			Field:   "reader.bound_max_key",
			Message: fmt.Sprintf("bound keys must differ, both are %q", cfg.BoundMinKey),
		})
	}

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "reader.debounce",
			Message: fmt.Sprintf("debounce must not be negative, got %v", cfg.Debounce),
		})
	}

	if cfg.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(cfg.ReloadSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "reader.reload_schedule",
				Message: fmt.Sprintf("invalid cron schedule %q: %v", cfg.ReloadSchedule, err),
			})
		}
	}

	return errs
}

// validateServer validates the lookup server configuration.
func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	} else if _, port, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("invalid listen address %q: %v", cfg.ListenAddress, err),
		})
	} else if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("invalid port %q: must be 0-65535", port),
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.read_timeout",
			Message: "read timeout must not be negative",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: "write timeout must not be negative",
		})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.shutdown_timeout",
			Message: "shutdown timeout must not be negative",
		})
	}

	return errs
}

// validateTelemetry validates the telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json', 'text', or 'console'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Path == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path is required when metrics are enabled",
			})
		} else if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: fmt.Sprintf("metrics path %q must start with '/'", cfg.Metrics.Path),
			})
		}
	}

	return errs
}
