package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/hadronlab/cutconf/pkg/cli"
	"github.com/hadronlab/cutconf/pkg/config"
	"github.com/hadronlab/cutconf/pkg/reader"
	"github.com/hadronlab/cutconf/pkg/resolve"
	"github.com/hadronlab/cutconf/pkg/telemetry/logging"
	"github.com/hadronlab/cutconf/pkg/telemetry/metrics"
)

// errNoValue is returned by lookup and get when nothing resolves and no
// default was given.
var errNoValue = errors.New("no value found")

// loadConfig initializes the global configuration and returns a copy with
// the command-line overrides applied.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := *config.GetConfig()

	if len(sourceFiles) > 0 {
		cfg.Reader.Sources = append([]string(nil), sourceFiles...)
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if len(cfg.Reader.Sources) == 0 {
		return nil, cli.NewConfigError("reader.sources", "no calibration documents configured, use --file or reader.sources")
	}
	return &cfg, nil
}

func newLogger(cfg *config.LoggingConfig) (*logging.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: cfg.AddSource,
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}

func openReader(cfg *config.Config, logger *logging.Logger, collector *metrics.Collector) (*reader.Reader, error) {
	opts := reader.OptionsFromConfig(&cfg.Reader, logger.Slog(), collector)
	r, err := reader.Open(opts, cfg.Reader.Sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to open calibration documents: %w", err)
	}
	return r, nil
}

// setup loads the configuration and opens the reader for a one-shot
// command.
func setup() (*reader.Reader, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(&cfg.Telemetry.Logging)
	if err != nil {
		return nil, err
	}
	return openReader(cfg, logger, nil)
}

// result is what lookup and get print. Text and CSV output show only the
// value.
type result struct {
	Target      string `json:"target"`
	Value       any    `json:"value"`
	Outcome     string `json:"outcome"`
	DefaultUsed bool   `json:"default_used"`
}

func (r result) OutputValue() interface{} { return r.Value }

// valueFlags are the flags lookup and get share.
type valueFlags struct {
	typ    string
	array  bool
	def    string
	format string
}

// evaluate runs req with the shared flags and prints the result.
func evaluate(w io.Writer, command, target string, req reader.Request, flags *valueFlags, hasDefault bool) error {
	format, err := cli.ParseOutputFormat(flags.format)
	if err != nil {
		return err
	}
	typ, err := reader.ParseValueType(flags.typ)
	if err != nil {
		return cli.NewFlagError("type", flags.typ, "must be float, int, string or bool")
	}

	r, err := setup()
	if err != nil {
		return err
	}

	req.Type = typ
	req.Array = flags.array
	if hasDefault {
		def := flags.def
		req.Default = &def
	}

	resp, err := r.Evaluate(req)
	if err != nil {
		return cli.NewFlagError("default", flags.def, err.Error())
	}
	if resp.Outcome != resolve.OutcomeHit && !resp.DefaultUsed {
		return cli.NewCommandError(command, fmt.Errorf("%w for %s (%s)", errNoValue, target, resp.Outcome))
	}

	return cli.NewFormatter(format).FormatTo(w, result{
		Target:      target,
		Value:       resp.Value,
		Outcome:     string(resp.Outcome),
		DefaultUsed: resp.DefaultUsed,
	})
}
