package config

import "time"

// Config is the root configuration structure for cutconf.
type Config struct {
	// Reader contains the calibration documents to load and the key names
	// used while resolving lookups.
	Reader ReaderConfig `yaml:"reader"`

	// Server contains the HTTP lookup server configuration used by
	// "cutconf serve".
	Server ServerConfig `yaml:"server"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ReaderConfig configures how calibration documents are loaded and read.
type ReaderConfig struct {
	// Sources lists the calibration documents in precedence order. A lookup
	// that cannot be resolved in one document is tried in the next.
	Sources []string `yaml:"sources"`

	// PassThroughKey is the dependent key meaning "no dependency". Lookups
	// using it read the period's value directly.
	// Default: "single"
	PassThroughKey string `yaml:"pass_through_key"`

	// BoundMinKey and BoundMaxKey name the bounds of mapping-shaped run
	// intervals ({min: 6000, max: 6200}).
	// Default: "min", "max"
	BoundMinKey string `yaml:"bound_min_key"`
	BoundMaxKey string `yaml:"bound_max_key"`

	// Watch reloads the sources when they change on disk.
	// Default: false
	Watch bool `yaml:"watch"`

	// Debounce is the quiet period after a file event before reloading.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// ReloadSchedule is a cron expression for periodic reloads, for
	// filesystems that do not deliver change events. Empty disables it.
	ReloadSchedule string `yaml:"reload_schedule"`
}

// ServerConfig contains configuration for the HTTP lookup server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8090"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json", "text" or "console".
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether lookup metrics are recorded and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "cutconf"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "reader"
	Subsystem string `yaml:"subsystem"`

	// Path is the HTTP path serving metrics.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
