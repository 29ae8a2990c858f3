package domain

import "time"

// Sync log entry statuses.
const (
	SyncStatusInProgress = "in_progress"
	SyncStatusCompleted  = "completed"
	SyncStatusFailed     = "failed"
)

// SyncLogEntry records one adapter invocation. An entry that never reaches a
// terminal status indicates a crashed or still-running sync.
type SyncLogEntry struct {
	ID          string     `db:"id" json:"id"`
	Source      string     `db:"source" json:"source"`
	Status      string     `db:"status" json:"status"`
	StartedAt   time.Time  `db:"started_at" json:"started_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	BillsSynced *int       `db:"bills_synced" json:"bills_synced,omitempty"`
}

// SourceResult is one source's contribution to a sync run.
type SourceResult struct {
	Success           bool     `json:"success"`
	Count             int      `json:"count"`
	Error             string   `json:"error,omitempty"`
	FailedExternalIDs []string `json:"failed_external_ids,omitempty"`
}

// SyncReport aggregates a full orchestrator run across all sources.
type SyncReport struct {
	Success          bool                    `json:"success"`
	TotalBillsSynced int                     `json:"totalBillsSynced"`
	Sources          map[string]SourceResult `json:"sources"`
	Timestamp        time.Time               `json:"timestamp"`
}
