package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/hadronlab/cutconf/pkg/config"
	"github.com/hadronlab/cutconf/pkg/reader"
	"github.com/hadronlab/cutconf/pkg/telemetry/health"
	"github.com/hadronlab/cutconf/pkg/telemetry/logging"
	"github.com/hadronlab/cutconf/pkg/telemetry/metrics"
)

// Options carries the components a Server serves from.
type Options struct {
	Reader *reader.Reader
	Logger *logging.Logger

	// Metrics is optional. When set and MetricsPath is not empty, the
	// registry is exposed at MetricsPath.
	Metrics     *metrics.Collector
	MetricsPath string

	// Health is optional. When set, the liveness, readiness and version
	// endpoints are registered.
	Health *health.Checker

	Version   string
	Commit    string
	BuildTime string
}

// Server is the HTTP lookup server.
type Server struct {
	config     *config.ServerConfig
	opts       Options
	logger     *logging.Logger
	httpServer *http.Server

	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	addr         string
}

// NewServer creates a new lookup server.
func NewServer(cfg *config.ServerConfig, opts Options) (*Server, error) {
	if opts.Reader == nil {
		return nil, errors.New("server requires a reader")
	}
	logger := opts.Logger
	if logger == nil {
		var err error
		if logger, err = logging.New(logging.Config{}); err != nil {
			return nil, err
		}
	}
	return &Server{
		config: cfg,
		opts:   opts,
		logger: logger.With("component", "server"),
	}, nil
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.addr = listener.Addr().String()
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting lookup server", "address", s.addr)

		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("lookup server stopped")
	})

	return shutdownErr
}

// Handler returns the routed handler with its middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.route(mux, LookupPath, "lookup", s.handleLookup)
	s.route(mux, ValuePath, "value", s.handleValue)

	if s.opts.Health != nil {
		health.Register(mux, s.opts.Health, s.opts.Version, s.opts.Commit, s.opts.BuildTime)
	}
	if s.opts.Metrics != nil && s.opts.MetricsPath != "" {
		mux.Handle(s.opts.MetricsPath, s.opts.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = loggingMiddleware(s.logger)(handler)
	handler = requestIDMiddleware(handler)
	handler = recoveryMiddleware(s.logger)(handler)

	return handler
}

// route registers a lookup endpoint, instrumented under the endpoint label.
func (s *Server) route(mux *http.ServeMux, path, endpoint string, h http.HandlerFunc) {
	mux.Handle(path, instrument(s.opts.Metrics, endpoint)(h))
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the address the server listens on, once started.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}
