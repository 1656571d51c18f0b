package core

// scheduler.go keeps the parameter tables in step with their sources.
//
// The refresh scheduler is long-running and context-aware for graceful
// shutdown. A failed refresh is logged and the scheduler carries on; the
// store has already published empty tables for unavailable sources.

import (
	"context"
	"time"
)

// RefreshConfig holds configuration for the refresh scheduler.
type RefreshConfig struct {
	Interval time.Duration // Time between refreshes; non-positive loads once
	Timeout  time.Duration // Bound on a single refresh; non-positive means none
}

// StartRefreshScheduler periodically re-reads all sources.
// It runs immediately on start, then every interval, and stops when the
// context is cancelled. A non-positive interval runs once and returns.
func (s *Service) StartRefreshScheduler(ctx context.Context, cfg RefreshConfig) {
	s.logger.Info("refresh scheduler started",
		"interval", cfg.Interval.String(),
		"timeout", cfg.Timeout.String(),
	)

	// Run immediately on startup
	s.runRefreshJob(ctx, cfg.Timeout)

	if cfg.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			s.runRefreshJob(ctx, cfg.Timeout)
		}
	}
}

// runRefreshJob performs one refresh cycle.
func (s *Service) runRefreshJob(ctx context.Context, timeout time.Duration) {
	start := time.Now()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Error("refresh failed", "error", err)
	}

	s.logger.Info("refresh job completed",
		"materials", len(s.AvailableMaterials()),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
