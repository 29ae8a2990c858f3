package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"legisync/internal/domain"
)

type BillStore interface {
	// Upsert inserts the bill or refreshes its mutable fields in one
	// conditional write keyed on external_id. Reports whether the record
	// was newly created.
	Upsert(ctx context.Context, bill *domain.Bill) (id string, isNew bool, err error)
}

type SyncLogStore interface {
	// Start appends an in_progress entry and returns its id.
	Start(ctx context.Context, source string) (string, error)
	// Finish moves an entry to a terminal status with its final count.
	Finish(ctx context.Context, id, status string, billsSynced int) error
}

type Source interface {
	ID() string
	Name() string
	FetchBills(ctx context.Context) ([]domain.Bill, error)
}

type Publisher interface {
	Publish(ctx context.Context, bill *domain.Bill, isNew bool) error
	Close() error
}

// SourceSyncer runs one adapter end to end: log entry, fetch, upserts,
// terminal log update.
type SourceSyncer interface {
	SyncSource(ctx context.Context, src Source) (*domain.SourceResult, error)
}
