// Package store persists processed timeline rows in PostgreSQL so the
// visualization can be served without refetching the sheet. Each refresh
// replaces the previous load wholesale inside one transaction; there is no
// row-level merging across loads.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sheetfeed/internal/sheet"
)

// Entry is one stored timeline row.
type Entry struct {
	LoadID   uuid.UUID         `json:"loadId"`
	RowNum   int               `json:"row"`
	Valid    bool              `json:"valid"`
	Values   map[string]string `json:"values"`
	Errors   int               `json:"errors"`
	Warnings int               `json:"warnings"`
	LoadedAt time.Time         `json:"loadedAt"`
}

// LoadInfo describes the most recent persisted load.
type LoadInfo struct {
	LoadID    uuid.UUID `json:"loadId"`
	Rows      int       `json:"rows"`
	ValidRows int       `json:"validRows"`
	LoadedAt  time.Time `json:"loadedAt"`
}

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the timeline_entries table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS timeline_entries (
			load_id    uuid        NOT NULL,
			row_num    int         NOT NULL,
			valid      boolean     NOT NULL,
			row_values jsonb       NOT NULL,
			errors     int         NOT NULL DEFAULT 0,
			warnings   int         NOT NULL DEFAULT 0,
			loaded_at  timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (load_id, row_num)
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ReplaceLoad swaps the stored entries for the rows of a new load. Runs in
// one transaction: readers see either the old load or the new one, never a
// mix.
func (s *Store) ReplaceLoad(ctx context.Context, loadID uuid.UUID, rows []sheet.ProcessedRow) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM timeline_entries`); err != nil {
		return fmt.Errorf("clear previous load: %w", err)
	}

	loadedAt := time.Now().UTC()
	for _, row := range rows {
		values, err := json.Marshal(row.Values)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", row.Num, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO timeline_entries (load_id, row_num, valid, row_values, errors, warnings, loaded_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			loadID, row.Num, row.Valid, values, len(row.Errors), len(row.Warnings), loadedAt)
		if err != nil {
			return fmt.Errorf("insert row %d: %w", row.Num, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Entries returns stored rows ordered by row number. With onlyValid set,
// invalid rows are filtered out.
func (s *Store) Entries(ctx context.Context, onlyValid bool) ([]Entry, error) {
	query := `
		SELECT load_id, row_num, valid, row_values, errors, warnings, loaded_at
		FROM timeline_entries`
	if onlyValid {
		query += ` WHERE valid`
	}
	query += ` ORDER BY row_num`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var values []byte
		if err := rows.Scan(&e.LoadID, &e.RowNum, &e.Valid, &values, &e.Errors, &e.Warnings, &e.LoadedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if err := json.Unmarshal(values, &e.Values); err != nil {
			return nil, fmt.Errorf("decode entry values: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LastLoad returns metadata for the most recent persisted load.
// Returns false when no load has been stored yet.
func (s *Store) LastLoad(ctx context.Context) (LoadInfo, bool, error) {
	var info LoadInfo
	err := s.pool.QueryRow(ctx, `
		SELECT load_id, count(*), count(*) FILTER (WHERE valid), max(loaded_at)
		FROM timeline_entries
		GROUP BY load_id
		ORDER BY max(loaded_at) DESC
		LIMIT 1`).Scan(&info.LoadID, &info.Rows, &info.ValidRows, &info.LoadedAt)
	if err == pgx.ErrNoRows {
		return LoadInfo{}, false, nil
	}
	if err != nil {
		return LoadInfo{}, false, fmt.Errorf("query last load: %w", err)
	}
	return info, true, nil
}

// Ping verifies database connectivity for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
