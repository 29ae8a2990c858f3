package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"legisync/internal/domain"
)

type SyncLogStore struct {
	db *sqlx.DB
}

func NewSyncLogStore(db *sqlx.DB) *SyncLogStore {
	return &SyncLogStore{db: db}
}

// Start appends an in_progress entry for one adapter invocation and returns
// its id. Entries are never deleted; one that never reaches a terminal status
// marks a crashed run.
func (s *SyncLogStore) Start(ctx context.Context, source string) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO sync_log (id, source, status, started_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query, id, source, domain.SyncStatusInProgress, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%w: insert sync log for %s: %v", domain.ErrPersistence, source, err)
	}

	return id, nil
}

// Finish moves an entry to its terminal status. Called exactly once per run.
func (s *SyncLogStore) Finish(ctx context.Context, id, status string, billsSynced int) error {
	query := `
		UPDATE sync_log
		SET status = $2, bills_synced = $3, completed_at = $4
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id, status, billsSynced, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: finalize sync log %s: %v", domain.ErrPersistence, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", domain.ErrPersistence, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: sync log entry %s", domain.ErrNotFound, id)
	}
	return nil
}

// ListRecent returns the newest entries first. Unterminated in_progress
// entries surface here for external staleness monitoring.
func (s *SyncLogStore) ListRecent(ctx context.Context, limit int) ([]domain.SyncLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, source, status, started_at, completed_at, bills_synced
		FROM sync_log
		ORDER BY started_at DESC
		LIMIT $1`

	var entries []domain.SyncLogEntry
	if err := s.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("%w: list sync log: %v", domain.ErrPersistence, err)
	}

	return entries, nil
}
