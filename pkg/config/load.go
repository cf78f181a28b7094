package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "CUTCONF_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// Relative reader sources are resolved against the directory of the file.
// The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)
	resolveSources(cfg, filepath.Dir(path))

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention CUTCONF_SECTION_FIELD (e.g., CUTCONF_READER_SOURCES).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// resolveSources makes relative source paths relative to dir.
func resolveSources(cfg *Config, dir string) {
	for i, src := range cfg.Reader.Sources {
		if src != "" && !filepath.IsAbs(src) {
			cfg.Reader.Sources[i] = filepath.Join(dir, src)
		}
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Reader overrides
	if val := os.Getenv(EnvPrefix + "READER_SOURCES"); val != "" {
		cfg.Reader.Sources = splitList(val)
	}
	if val := os.Getenv(EnvPrefix + "READER_PASS_THROUGH_KEY"); val != "" {
		cfg.Reader.PassThroughKey = val
	}
	if val := os.Getenv(EnvPrefix + "READER_BOUND_MIN_KEY"); val != "" {
		cfg.Reader.BoundMinKey = val
	}
	if val := os.Getenv(EnvPrefix + "READER_BOUND_MAX_KEY"); val != "" {
		cfg.Reader.BoundMaxKey = val
	}
	if val := os.Getenv(EnvPrefix + "READER_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Reader.Watch = b
		}
	}
	if val := os.Getenv(EnvPrefix + "READER_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Reader.Debounce = d
		}
	}
	if val := os.Getenv(EnvPrefix + "READER_RELOAD_SCHEDULE"); val != "" {
		cfg.Reader.ReloadSchedule = val
	}

	// Server overrides
	if val := os.Getenv(EnvPrefix + "SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv(EnvPrefix + "SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv(EnvPrefix + "SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv(EnvPrefix + "SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	// Telemetry overrides
	if val := os.Getenv(EnvPrefix + "TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}

// splitList splits a comma or OS path-list separated value, dropping blanks.
func splitList(val string) []string {
	fields := strings.FieldsFunc(val, func(r rune) bool {
		return r == ',' || r == os.PathListSeparator
	})
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			res = append(res, f)
		}
	}
	return res
}
