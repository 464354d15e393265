package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Sweeper evicts stale limiter entries on a cron schedule, keeping the
// limiter's memory bounded by the number of recently active clients.
type Sweeper struct {
	limiter  *FixedWindowLimiter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	// OnSweep, if set, is invoked after each sweep with the number of
	// evicted identities and the number still tracked.
	OnSweep func(evicted, tracked int)

	mu      sync.Mutex
	running bool
}

// NewSweeper creates a sweeper for the given limiter.
//
// Common cron expressions:
//   - "*/5 * * * *" - every 5 minutes
//   - "0 * * * *"   - hourly
func NewSweeper(limiter *FixedWindowLimiter, schedule string) *Sweeper {
	return &Sweeper{
		limiter:  limiter,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "ratelimit.sweeper"),
	}
}

// Start begins scheduled sweeping. If the schedule is empty, the sweeper
// does nothing. The sweeper stops when the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping sweeper")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runSweep); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("rate limit sweeper started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runSweep executes one sweep cycle.
func (s *Sweeper) runSweep() {
	evicted := s.limiter.Sweep()
	tracked := s.limiter.Len()

	if evicted > 0 {
		s.logger.Info("rate limit sweep completed",
			"evicted", evicted,
			"tracked", tracked,
		)
	} else {
		s.logger.Debug("rate limit sweep completed, nothing to evict",
			"tracked", tracked,
		)
	}

	if s.OnSweep != nil {
		s.OnSweep(evicted, tracked)
	}
}

// Stop stops the sweeper and waits for a running sweep to complete.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("rate limit sweeper stopped")
	}
}

// IsRunning returns true if the sweeper is running.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
