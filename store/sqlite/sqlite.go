/*
Package sqlite provides SQLite-backed persistence for the shift
engine's configuration and audit data.

PURPOSE:
  Two concerns live here:
  - Named rate tables: per-band hourly rates plus a fallback rate,
    supplied to the payroll calculator at request time
  - Extraction logs: an audit trail of what the extraction engines
    parsed, recorded best-effort by the API layer

KEY TABLES:
  rate_tables:      one row per (table name, band), plus one fallback
                    row per table
  extraction_logs:  one row per extraction call, result stored as JSON

RATES AS TEXT:
  Rates are stored as decimal strings, never floats, so a round trip
  through the database cannot drift.

WAL MODE:
  SQLite is opened with WAL for better concurrency; a sync.RWMutex
  serializes writers on top of that.

USAGE:
  store, err := sqlite.New("./data/asmito.db")   // or ":memory:"

SEE ALSO:
  - payroll/bands.go: RateTable consumed by the calculator
  - api/handlers.go: The only caller
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nohataku/Asmito-sub001/payroll"
	"github.com/shopspring/decimal"
)

// Store implements rate-table and extraction-log persistence.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store at the given path. Use ":memory:"
// for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rate_tables (
		name TEXT NOT NULL,
		band TEXT NOT NULL,
		rate TEXT NOT NULL,
		PRIMARY KEY (name, band)
	);

	CREATE TABLE IF NOT EXISTS extraction_logs (
		id TEXT PRIMARY KEY,
		input_text TEXT NOT NULL,
		engine TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_extraction_logs_created
		ON extraction_logs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RATE TABLES
// =============================================================================

// The fallback rate is stored alongside the band rows under a
// reserved band name.
const fallbackBandRow = "_fallback"

// RateTableRecord is a named rate configuration.
type RateTableRecord struct {
	Name         string
	Rates        payroll.RateTable
	FallbackRate decimal.Decimal
}

// SaveRateTable replaces the named table atomically.
func (s *Store) SaveRateTable(ctx context.Context, rec RateTableRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rate_tables WHERE name = ?", rec.Name); err != nil {
		return err
	}

	for band, rate := range rec.Rates {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO rate_tables (name, band, rate) VALUES (?, ?, ?)",
			rec.Name, string(band), rate.String(),
		); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO rate_tables (name, band, rate) VALUES (?, ?, ?)",
		rec.Name, fallbackBandRow, rec.FallbackRate.String(),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// GetRateTable retrieves a named table. Returns nil when the table
// does not exist.
func (s *Store) GetRateTable(ctx context.Context, name string) (*RateTableRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT band, rate FROM rate_tables WHERE name = ?", name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rec := RateTableRecord{Name: name, Rates: payroll.RateTable{}}
	found := false
	for rows.Next() {
		var band, rate string
		if err := rows.Scan(&band, &rate); err != nil {
			return nil, err
		}
		value, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("corrupt rate for %s/%s: %w", name, band, err)
		}
		if band == fallbackBandRow {
			rec.FallbackRate = value
		} else {
			rec.Rates[payroll.Band(band)] = value
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}

// ListRateTables returns all stored table names.
func (s *Store) ListRateTables(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT name FROM rate_tables ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// =============================================================================
// EXTRACTION LOGS
// =============================================================================

// ExtractionLogRecord is one audit entry for an extraction call.
type ExtractionLogRecord struct {
	ID         string
	InputText  string
	Engine     string
	ResultJSON string
	CreatedAt  time.Time
}

// AppendExtractionLog records one extraction call.
func (s *Store) AppendExtractionLog(ctx context.Context, rec ExtractionLogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO extraction_logs (id, input_text, engine, result_json, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.InputText, rec.Engine, rec.ResultJSON,
		createdAt.Format(time.RFC3339),
	)
	return err
}

// ListExtractionLogs returns the most recent entries, newest first.
func (s *Store) ListExtractionLogs(ctx context.Context, limit int) ([]ExtractionLogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, input_text, engine, result_json, created_at FROM extraction_logs ORDER BY created_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ExtractionLogRecord
	for rows.Next() {
		var rec ExtractionLogRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.InputText, &rec.Engine, &rec.ResultJSON, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}
