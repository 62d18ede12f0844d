// Package history keeps an optional SQLite record of past scans so
// spreads can be inspected across cycles, which the file-per-scan
// snapshots cannot offer.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS scans (
	scan_id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	records INTEGER NOT NULL,
	opportunities INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS opportunities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	scan_id TEXT NOT NULL REFERENCES scans(scan_id),
	symbol TEXT NOT NULL,
	long_exchange TEXT NOT NULL,
	short_exchange TEXT NOT NULL,
	long_rate REAL NOT NULL,
	short_rate REAL NOT NULL,
	rate_difference REAL NOT NULL,
	net_profit_8h REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_opportunities_scan ON opportunities(scan_id);
`

// Store records scan outcomes in a local SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordScan stores one scan summary plus its opportunity rows in a
// single transaction.
func (s *Store) RecordScan(ctx context.Context, scanID string, startedAt time.Time, recordCount int, opportunities []models.Opportunity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO scans (scan_id, started_at, records, opportunities) VALUES (?, ?, ?, ?)`,
		scanID, startedAt.UTC().Format(time.RFC3339), recordCount, len(opportunities),
	); err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}

	for _, op := range opportunities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO opportunities (scan_id, symbol, long_exchange, short_exchange, long_rate, short_rate, rate_difference, net_profit_8h)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			scanID, op.Symbol, op.LongExchange, op.ShortExchange, op.LongRate, op.ShortRate, op.RateDifference, op.NetProfit8h,
		); err != nil {
			return fmt.Errorf("insert opportunity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ScanSummary is one row of the scans table.
type ScanSummary struct {
	ScanID        string
	StartedAt     time.Time
	Records       int
	Opportunities int
}

// RecentScans returns up to limit scan summaries, newest first.
func (s *Store) RecentScans(ctx context.Context, limit int) ([]ScanSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT scan_id, started_at, records, opportunities FROM scans ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var summaries []ScanSummary
	for rows.Next() {
		var summary ScanSummary
		var startedAt string
		if err := rows.Scan(&summary.ScanID, &startedAt, &summary.Records, &summary.Opportunities); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			summary.StartedAt = t
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
