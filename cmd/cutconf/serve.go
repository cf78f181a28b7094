package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hadronlab/cutconf/pkg/cli"
	"github.com/hadronlab/cutconf/pkg/reader"
	"github.com/hadronlab/cutconf/pkg/server"
	"github.com/hadronlab/cutconf/pkg/telemetry/health"
	"github.com/hadronlab/cutconf/pkg/telemetry/metrics"
)

// healthCheckTimeout bounds each readiness check.
const healthCheckTimeout = 5 * time.Second

var serveFlags struct {
	listen string
	watch  bool
	maxAge time.Duration
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve calibration lookups over HTTP",
	Long: `Start the HTTP lookup server.

Endpoints:
  GET /lookup   ?group=cuts&dependent=pid&run=6143&probe=11&array=true
  GET /value    ?key=myInt&type=int
  GET /healthz  liveness
  GET /readyz   readiness (documents loaded; degraded when stale with --max-age)
  GET /version  build information
  GET /metrics  Prometheus metrics (telemetry.metrics.path)

Documents are reloaded when they change on disk (--watch or reader.watch)
and on reader.reload_schedule. A failed reload keeps the previous documents.
The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  cutconf serve -c cutconf.yaml
  cutconf serve -f cuts.yaml --listen 0.0.0.0:8090 --watch`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveFlags.listen, "listen", "", "listen address (overrides server.listen_address)")
	serveCmd.Flags().BoolVar(&serveFlags.watch, "watch", false, "reload documents when they change (overrides reader.watch)")
	serveCmd.Flags().DurationVar(&serveFlags.maxAge, "max-age", 0, "report degraded readiness when documents were last loaded longer ago than this")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.listen != "" {
		cfg.Server.ListenAddress = serveFlags.listen
	}
	if cmd.Flags().Changed("watch") {
		cfg.Reader.Watch = serveFlags.watch
	}

	logger, err := newLogger(&cfg.Telemetry.Logging)
	if err != nil {
		return err
	}
	slog.SetDefault(logger.Slog())

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	rd, err := openReader(cfg, logger, collector)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Loaded %d calibration document(s)\n", len(rd.Documents()))

	checker := health.New(healthCheckTimeout)
	checker.WatchDocuments(rd, serveFlags.maxAge)

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	if cfg.Reader.Watch {
		watcher, err := reader.NewWatcher(&reader.WatcherConfig{
			Paths:            rd.Sources(),
			DebounceInterval: cfg.Reader.Debounce,
		}, logger.Slog())
		if err != nil {
			return cli.NewCommandError("serve", fmt.Errorf("failed to create file watcher: %w", err))
		}
		defer watcher.Stop()

		go func() {
			if err := watcher.Watch(ctx, rd.Reload); err != nil {
				logger.Error("file watcher failed", "error", err)
			}
		}()
		fmt.Fprintf(out, "✓ Watching %d source(s) for changes\n", len(rd.Sources()))
	}

	if cfg.Reader.ReloadSchedule != "" {
		scheduler := reader.NewScheduler(cfg.Reader.ReloadSchedule, rd.Reload, logger.Slog())
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewConfigError("reader.reload_schedule", err.Error())
		}
		defer scheduler.Stop()
		fmt.Fprintf(out, "✓ Reloading on schedule %q\n", cfg.Reader.ReloadSchedule)
	}

	var metricsPath string
	if collector != nil {
		metricsPath = cfg.Telemetry.Metrics.Path
	}
	srv, err := server.NewServer(&cfg.Server, server.Options{
		Reader:      rd,
		Logger:      logger,
		Metrics:     collector,
		MetricsPath: metricsPath,
		Health:      checker,
		Version:     Version,
		Commit:      GitCommit,
		BuildTime:   BuildDate,
	})
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	fmt.Fprintf(out, "✓ Listening on %s\n", cfg.Server.ListenAddress)
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}

	fmt.Fprintln(out, "✓ Server stopped")
	return nil
}
