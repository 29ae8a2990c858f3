package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"legisync/internal/domain"
)

// SyncService runs a single source adapter against the bill store. The same
// runner serves all adapters; per-source behavior lives entirely in the
// Source implementations.
type SyncService struct {
	bills     BillStore
	syncLog   SyncLogStore
	publisher Publisher
	logger    *slog.Logger
}

func NewSyncService(
	bills BillStore,
	syncLog SyncLogStore,
	publisher Publisher,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		bills:     bills,
		syncLog:   syncLog,
		publisher: publisher,
		logger:    logger,
	}
}

// SyncSource fetches one source's page of bills and upserts each record.
// Record-level failures are counted and skipped; only a failed fetch (or a
// failure to open the sync log entry) fails the run.
func (s *SyncService) SyncSource(ctx context.Context, src Source) (*domain.SourceResult, error) {
	logger := s.logger.With("source", src.ID())
	startTime := time.Now()

	logID, err := s.syncLog.Start(ctx, src.ID())
	if err != nil {
		return nil, fmt.Errorf("start sync log: %w", err)
	}

	logger.Info("starting sync", "source_name", src.Name())

	bills, err := src.FetchBills(ctx)
	if err != nil {
		if finishErr := s.syncLog.Finish(ctx, logID, domain.SyncStatusFailed, 0); finishErr != nil {
			logger.Error("failed to finalize sync log", "error", finishErr)
		}
		return nil, fmt.Errorf("fetch bills: %w", err)
	}

	logger.Info("fetched bills from source", "count", len(bills))

	result := &domain.SourceResult{Success: true}

	for i := range bills {
		bill := &bills[i]

		_, isNew, err := s.bills.Upsert(ctx, bill)
		if err != nil {
			logger.Error("failed to upsert bill",
				"external_id", bill.ExternalID,
				"error", err,
			)
			result.FailedExternalIDs = append(result.FailedExternalIDs, bill.ExternalID)
			continue
		}
		result.Count++

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, bill, isNew); err != nil {
				logger.Error("failed to publish bill event",
					"external_id", bill.ExternalID,
					"error", err,
				)
			}
		}
	}

	if err := s.syncLog.Finish(ctx, logID, domain.SyncStatusCompleted, result.Count); err != nil {
		logger.Error("failed to finalize sync log", "error", err)
	}

	logger.Info("sync completed",
		"synced", result.Count,
		"failed", len(result.FailedExternalIDs),
		"duration", time.Since(startTime),
	)

	return result, nil
}
