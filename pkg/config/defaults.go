package config

import "time"

// Default values for configuration fields.
const (
	// Reader defaults
	DefaultPassThroughKey = "single"
	DefaultBoundMinKey    = "min"
	DefaultBoundMaxKey    = "max"
	DefaultWatch          = false
	DefaultDebounce       = 100 * time.Millisecond

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8090"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "cutconf"
	DefaultMetricsSubsystem = "reader"
	DefaultMetricsPath      = "/metrics"
)

// Default returns a Config holding every default value. LoadConfig decodes
// files on top of it, so booleans absent from a file keep their defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Reader.Watch = DefaultWatch
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Reader defaults
	if cfg.Reader.PassThroughKey == "" {
		cfg.Reader.PassThroughKey = DefaultPassThroughKey
	}
	if cfg.Reader.BoundMinKey == "" {
		cfg.Reader.BoundMinKey = DefaultBoundMinKey
	}
	if cfg.Reader.BoundMaxKey == "" {
		cfg.Reader.BoundMaxKey = DefaultBoundMaxKey
	}
	if cfg.Reader.Debounce == 0 {
		cfg.Reader.Debounce = DefaultDebounce
	}

	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
