package reader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler reloads documents on a cron schedule. It covers filesystems
// that do not deliver change events, such as some network mounts.
type Scheduler struct {
	schedule string
	reload   func() error
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a scheduler that calls reload on schedule.
func NewScheduler(schedule string, reload func() error, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		schedule: schedule,
		reload:   reload,
		cron:     cron.New(),
		logger:   logger.With("component", "reader.scheduler"),
	}
}

// Start begins scheduled reloads. It accepts standard five-field cron
// expressions and descriptors:
//   - "*/5 * * * *"  - Every 5 minutes
//   - "0 * * * *"    - Hourly
//   - "@every 30s"   - Every 30 seconds
//
// If the schedule is empty, the scheduler does nothing. The scheduler stops
// when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("reload schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runReload); err != nil {
		return fmt.Errorf("failed to schedule reload: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("reload scheduler started", "schedule", s.schedule)

	// Wait for context cancellation in background
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runReload executes one scheduled reload.
func (s *Scheduler) runReload() {
	s.logger.Debug("starting scheduled reload")

	if err := s.reload(); err != nil {
		s.logger.Error("scheduled reload failed", "error", err)
	}
}

// Stop stops the scheduler and waits for a running reload to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("reload scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled reload time, or nil if none is
// scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
