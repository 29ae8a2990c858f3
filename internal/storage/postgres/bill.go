package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"legisync/internal/domain"
)

type BillStore struct {
	db *sqlx.DB
}

func NewBillStore(db *sqlx.DB) *BillStore {
	return &BillStore{db: db}
}

// billRow mirrors the bills table; JSONB columns come back as raw bytes and
// are unmarshalled at this boundary.
type billRow struct {
	ID               string    `db:"id"`
	ExternalID       string    `db:"external_id"`
	Source           string    `db:"source"`
	BillNumber       string    `db:"bill_number"`
	Title            string    `db:"title"`
	ShortDescription string    `db:"short_description"`
	FullText         string    `db:"full_text"`
	Status           string    `db:"status"`
	IntroducedDate   time.Time `db:"introduced_date"`
	Category         string    `db:"category"`
	Sponsor          *string   `db:"sponsor"`
	OfficialURL      *string   `db:"official_url"`
	LastSynced       time.Time `db:"last_synced"`
	Cosponsors       []byte    `db:"cosponsors"`
	Committees       []byte    `db:"committees"`
	ImpactData       []byte    `db:"impact_data"`
	Stages           []byte    `db:"stages"`
	Arguments        []byte    `db:"arguments"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (r *billRow) toDomain() (*domain.Bill, error) {
	bill := &domain.Bill{
		ID:               r.ID,
		ExternalID:       r.ExternalID,
		Source:           r.Source,
		BillNumber:       r.BillNumber,
		Title:            r.Title,
		ShortDescription: r.ShortDescription,
		FullText:         r.FullText,
		Status:           domain.Status(r.Status),
		IntroducedDate:   r.IntroducedDate,
		Category:         r.Category,
		Sponsor:          r.Sponsor,
		OfficialURL:      r.OfficialURL,
		LastSynced:       r.LastSynced,
		Cosponsors:       r.Cosponsors,
		Committees:       r.Committees,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}

	if len(r.ImpactData) > 0 {
		var impact domain.ImpactData
		if err := json.Unmarshal(r.ImpactData, &impact); err != nil {
			return nil, fmt.Errorf("unmarshal impact_data: %w", err)
		}
		bill.ImpactData = &impact
	}
	if len(r.Stages) > 0 {
		if err := json.Unmarshal(r.Stages, &bill.Stages); err != nil {
			return nil, fmt.Errorf("unmarshal stages: %w", err)
		}
	}
	if len(r.Arguments) > 0 {
		if err := json.Unmarshal(r.Arguments, &bill.Arguments); err != nil {
			return nil, fmt.Errorf("unmarshal arguments: %w", err)
		}
	}

	return bill, nil
}

const billColumns = `
	id, external_id, source, bill_number, title, short_description, full_text,
	status, introduced_date, category, sponsor, official_url, last_synced,
	cosponsors, committees, impact_data, stages, arguments, created_at, updated_at`

// Upsert inserts the bill or refreshes its mutable fields in a single
// conditional write. id, external_id, source and created_at are never
// touched on conflict; a later sync of a different source can never claim
// the row because external_id embeds the source name.
func (s *BillStore) Upsert(ctx context.Context, bill *domain.Bill) (string, bool, error) {
	query := `
		INSERT INTO bills (
			external_id, source, bill_number, title, short_description,
			full_text, status, introduced_date, category, sponsor,
			official_url, last_synced, cosponsors, committees
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		ON CONFLICT (external_id) DO UPDATE SET
			bill_number = EXCLUDED.bill_number,
			title = EXCLUDED.title,
			short_description = EXCLUDED.short_description,
			full_text = EXCLUDED.full_text,
			status = EXCLUDED.status,
			introduced_date = EXCLUDED.introduced_date,
			category = EXCLUDED.category,
			sponsor = EXCLUDED.sponsor,
			official_url = EXCLUDED.official_url,
			last_synced = EXCLUDED.last_synced,
			cosponsors = EXCLUDED.cosponsors,
			committees = EXCLUDED.committees,
			updated_at = now()
		RETURNING id, (xmax = 0) AS inserted`

	var (
		id       string
		inserted bool
	)
	err := s.db.QueryRowContext(ctx, query,
		bill.ExternalID,
		bill.Source,
		bill.BillNumber,
		bill.Title,
		bill.ShortDescription,
		bill.FullText,
		string(bill.Status),
		bill.IntroducedDate,
		bill.Category,
		bill.Sponsor,
		bill.OfficialURL,
		bill.LastSynced,
		jsonArg(bill.Cosponsors),
		jsonArg(bill.Committees),
	).Scan(&id, &inserted)
	if err != nil {
		return "", false, fmt.Errorf("%w: upsert bill %s: %v", domain.ErrPersistence, bill.ExternalID, err)
	}

	bill.ID = id
	return id, inserted, nil
}

func (s *BillStore) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	var row billRow
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`

	err := s.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: bill %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get bill %s: %v", domain.ErrPersistence, id, err)
	}

	return row.toDomain()
}

// List returns bills ordered by last_synced descending, newest first, the
// order the browsing UI displays.
func (s *BillStore) List(ctx context.Context, filter domain.BillFilter) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills`
	var (
		args  []any
		where string
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = " WHERE status = $" + strconv.Itoa(len(args))
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		clause := "source = $" + strconv.Itoa(len(args))
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)

	query += where + " ORDER BY last_synced DESC LIMIT $" + strconv.Itoa(len(args))

	var rows []billRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: list bills: %v", domain.ErrPersistence, err)
	}

	bills := make([]domain.Bill, 0, len(rows))
	for i := range rows {
		bill, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		bills = append(bills, *bill)
	}

	return bills, nil
}

func (s *BillStore) SetImpactData(ctx context.Context, id string, impact *domain.ImpactData) error {
	return s.setJSONField(ctx, id, "impact_data", impact)
}

func (s *BillStore) SetStages(ctx context.Context, id string, stages []domain.Stage) error {
	return s.setJSONField(ctx, id, "stages", stages)
}

func (s *BillStore) SetArguments(ctx context.Context, id string, args []domain.Argument) error {
	return s.setJSONField(ctx, id, "arguments", args)
}

func (s *BillStore) setJSONField(ctx context.Context, id, column string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", column, err)
	}

	// column is one of three fixed names, never caller input
	query := `UPDATE bills SET ` + column + ` = $2, updated_at = now() WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id, string(data))
	if err != nil {
		return fmt.Errorf("%w: update %s for bill %s: %v", domain.ErrPersistence, column, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", domain.ErrPersistence, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: bill %s", domain.ErrNotFound, id)
	}
	return nil
}

// jsonArg passes raw JSON as a text parameter, or NULL when absent.
func jsonArg(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
