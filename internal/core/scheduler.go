package core

// scheduler.go keeps the source warm in the background.
//
// The refresh job re-fetches the CSV on a fixed interval so the cache and the
// snapshot store stay current even when no one is browsing. It is long-running
// and context-aware for graceful shutdown, and a failed refresh is logged but
// never stops the loop: the next tick simply tries again.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultRefreshInterval is how often the background job re-fetches.
const DefaultRefreshInterval = 6 * time.Hour

// RefreshConfig holds configuration for the refresh scheduler.
type RefreshConfig struct {
	Interval   time.Duration // How often to run (default: 6h)
	RunOnStart bool          // Refresh once before the first tick
}

// StartRefreshScheduler runs Refresh every Interval until ctx is cancelled.
// It blocks; run it in its own goroutine.
func (s *Service) StartRefreshScheduler(ctx context.Context, cfg RefreshConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultRefreshInterval
	}

	slog.Info("refresh scheduler started",
		"interval", cfg.Interval.String(),
		"source_path", s.sourcePath,
	)

	if cfg.RunOnStart {
		s.runRefreshJob(ctx)
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh scheduler stopped")
			return
		case <-ticker.C:
			s.runRefreshJob(ctx)
		}
	}
}

// runRefreshJob performs one refresh cycle.
func (s *Service) runRefreshJob(ctx context.Context) {
	slog.Debug("refresh job started")
	start := time.Now()

	res, err := s.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("scheduled refresh failed", "error", err)
		return
	}

	slog.Info("refresh job completed",
		"rows", res.Rows,
		"bytes", res.Bytes,
		"snapshot_saved", res.SnapshotSaved,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
