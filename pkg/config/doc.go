// Package config provides configuration management for cutconf.
//
// This package loads, validates and holds the application configuration:
// which calibration documents to read, the key names used while resolving
// lookups, the lookup server settings, and logging and metrics settings.
// It does not read the calibration documents themselves; see package reader.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("cutconf.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("cutconf.yaml")
//
// Relative entries in reader.sources are resolved against the directory of
// the configuration file.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CUTCONF_SECTION_FIELD:
//
//   - CUTCONF_READER_SOURCES overrides reader.sources (comma separated)
//   - CUTCONF_READER_PASS_THROUGH_KEY overrides reader.pass_through_key
//   - CUTCONF_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	reader:
//	  sources:
//	    - cuts.yaml
//	    - cuts-fallback.yaml
//	  pass_through_key: single
//	  watch: true
//
//	server:
//	  listen_address: "127.0.0.1:8090"
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//	  metrics:
//	    enabled: true
//
// # Singleton Pattern
//
//	if err := config.Initialize(path); err != nil {
//	    return err
//	}
//	cfg := config.GetConfig()
//
// An empty path initializes from defaults and environment overrides only.
package config
