package scheduler

import (
	"context"
	"log/slog"
	"time"

	"legisync/internal/domain"
)

// Syncer runs one full sync across all sources.
type Syncer interface {
	SyncAll(ctx context.Context) *domain.SyncReport
}

// Scheduler triggers periodic orchestrator runs. Manual /sync requests are
// independent of the schedule.
type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(syncer Syncer, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	report := s.syncer.SyncAll(syncCtx)

	for source, result := range report.Sources {
		if !result.Success {
			s.logger.Error("scheduled sync source failed", "source", source, "error", result.Error)
		}
	}
}
