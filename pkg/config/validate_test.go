package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		wantField string
	}{
		{
			name: "valid config",
			cfg:  NewTestConfig().Build(),
		},
		{
			name:      "blank source",
			cfg:       NewTestConfig().WithSources("cuts.yaml", "  ").Build(),
			wantField: "reader.sources[1]",
		},
		{
			name:      "missing pass-through key",
			cfg:       NewTestConfig().WithPassThroughKey("").Build(),
			wantField: "reader.pass_through_key",
		},
		{
			name:      "missing bound min key",
			cfg:       NewTestConfig().WithBoundKeys("", "max").Build(),
			wantField: "reader.bound_min_key",
		},
		{
			name:      "identical bound keys",
			cfg:       NewTestConfig().WithBoundKeys("edge", "edge").Build(),
			wantField: "reader.bound_max_key",
		},
		{
			name:      "negative debounce",
			cfg:       NewTestConfig().WithWatch(-time.Second).Build(),
			wantField: "reader.debounce",
		},
		{
			name:      "invalid reload schedule",
			cfg:       NewTestConfig().WithReloadSchedule("every tuesday").Build(),
			wantField: "reader.reload_schedule",
		},
		{
			name: "descriptor reload schedule",
			cfg:  NewTestConfig().WithReloadSchedule("@hourly").Build(),
		},
		{
			name:      "missing listen address",
			cfg:       NewTestConfig().WithListenAddress("").Build(),
			wantField: "server.listen_address",
		},
		{
			name:      "listen address without port",
			cfg:       NewTestConfig().WithListenAddress("localhost").Build(),
			wantField: "server.listen_address",
		},
		{
			name:      "port out of range",
			cfg:       NewTestConfig().WithListenAddress("localhost:70000").Build(),
			wantField: "server.listen_address",
		},
		{
			name:      "negative read timeout",
			cfg:       NewTestConfig().WithReadTimeout(-time.Second).Build(),
			wantField: "server.read_timeout",
		},
		{
			name:      "invalid logging level",
			cfg:       NewTestConfig().WithLoggingLevel("trace").Build(),
			wantField: "telemetry.logging.level",
		},
		{
			name:      "invalid logging format",
			cfg:       NewTestConfig().WithLoggingFormat("xml").Build(),
			wantField: "telemetry.logging.format",
		},
		{
			name:      "relative metrics path",
			cfg:       NewTestConfig().WithMetricsPath("metrics").Build(),
			wantField: "telemetry.metrics.path",
		},
		{
			name: "metrics path ignored when disabled",
			cfg:  NewTestConfig().WithMetricsEnabled(false).WithMetricsPath("").Build(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			found := false
			for _, fe := range validationErr.Errors {
				if fe.Field == tt.wantField {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got %v", tt.wantField, validationErr.Errors)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := NewTestConfig().
		WithPassThroughKey("").
		WithListenAddress("").
		WithLoggingLevel("loud").
		Build()

	err := Validate(cfg)
	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(validationErr.Errors), validationErr.Errors)
	}
	if !strings.Contains(err.Error(), "with 3 errors") {
		t.Errorf("expected multi-error message, got %q", err.Error())
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  ValidationError
		want string
	}{
		{
			name: "no errors",
			err:  ValidationError{},
			want: "configuration validation failed",
		},
		{
			name: "single error",
			err: ValidationError{Errors: []FieldError{
				{Field: "reader.debounce", Message: "debounce must not be negative"},
			}},
			want: "configuration validation failed: reader.debounce: debounce must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
