package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"legisync/internal/domain"
)

// Orchestrator fans a sync run out across every configured source. Sources
// run sequentially; a hard failure in one is recorded in the report and never
// prevents the others from running.
type Orchestrator struct {
	syncer  SourceSyncer
	sources []Source
	logger  *slog.Logger
}

func NewOrchestrator(syncer SourceSyncer, sources []Source, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		syncer:  syncer,
		sources: sources,
		logger:  logger,
	}
}

// SyncAll runs every source and aggregates the per-source results into one
// report. It always returns a report, even when every source fails.
func (o *Orchestrator) SyncAll(ctx context.Context) *domain.SyncReport {
	o.logger.Info("starting full sync", "sources", len(o.sources))

	report := &domain.SyncReport{
		Success: true,
		Sources: make(map[string]domain.SourceResult, len(o.sources)),
	}

	for _, src := range o.sources {
		result, err := o.runSource(ctx, src)
		if err != nil {
			o.logger.Error("source sync failed",
				"source", src.ID(),
				"error", err,
			)
			report.Sources[src.ID()] = domain.SourceResult{Error: err.Error()}
			continue
		}

		report.Sources[src.ID()] = *result
		report.TotalBillsSynced += result.Count
	}

	report.Timestamp = time.Now().UTC()

	o.logger.Info("full sync completed", "total_synced", report.TotalBillsSynced)

	return report
}

// runSource shields the fan-out loop from a panicking adapter; a panic in one
// source becomes that source's error and the remaining sources still run.
func (o *Orchestrator) runSource(ctx context.Context, src Source) (result *domain.SourceResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("source panicked: %v", r)
		}
	}()

	return o.syncer.SyncSource(ctx, src)
}
