package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with sensible defaults for testing.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	cfg := *Default()
	cfg.Reader.Sources = []string{"testdata/cuts.yaml"}
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithSources replaces the reader sources.
func (b *ConfigBuilder) WithSources(paths ...string) *ConfigBuilder {
	b.cfg.Reader.Sources = paths
	return b
}

// WithPassThroughKey sets the dependent key that means "no dependency".
func (b *ConfigBuilder) WithPassThroughKey(key string) *ConfigBuilder {
	b.cfg.Reader.PassThroughKey = key
	return b
}

// WithBoundKeys sets the mapping-shaped interval bound keys.
func (b *ConfigBuilder) WithBoundKeys(min, max string) *ConfigBuilder {
	b.cfg.Reader.BoundMinKey = min
	b.cfg.Reader.BoundMaxKey = max
	return b
}

// WithWatch enables file watching with the given debounce.
func (b *ConfigBuilder) WithWatch(debounce time.Duration) *ConfigBuilder {
	b.cfg.Reader.Watch = true
	b.cfg.Reader.Debounce = debounce
	return b
}

// WithReloadSchedule sets the cron reload schedule.
func (b *ConfigBuilder) WithReloadSchedule(schedule string) *ConfigBuilder {
	b.cfg.Reader.ReloadSchedule = schedule
	return b
}

// WithListenAddress sets the server listen address.
func (b *ConfigBuilder) WithListenAddress(addr string) *ConfigBuilder {
	b.cfg.Server.ListenAddress = addr
	return b
}

// WithReadTimeout sets the server read timeout.
func (b *ConfigBuilder) WithReadTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Server.ReadTimeout = d
	return b
}

// WithLoggingLevel sets the logging level.
func (b *ConfigBuilder) WithLoggingLevel(level string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	return b
}

// WithLoggingFormat sets the logging format.
func (b *ConfigBuilder) WithLoggingFormat(format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Format = format
	return b
}

// WithMetricsEnabled enables or disables metrics.
func (b *ConfigBuilder) WithMetricsEnabled(enabled bool) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Enabled = enabled
	return b
}

// WithMetricsPath sets the metrics endpoint path.
func (b *ConfigBuilder) WithMetricsPath(path string) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Path = path
	return b
}

// MinimalConfig returns the smallest valid configuration: defaults with no
// sources.
func MinimalConfig() *Config {
	return Default()
}
