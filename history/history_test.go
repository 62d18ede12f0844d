package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

func TestRecordScanRoundTrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	startedAt := time.Date(2025, 8, 31, 14, 30, 0, 0, time.UTC)

	ops := []models.Opportunity{
		{
			Symbol:         "BTC",
			LongExchange:   "Binance",
			ShortExchange:  "Bybit",
			LongRate:       0.0060,
			ShortRate:      0.0002,
			RateDifference: 0.0058,
			EstimatedFees:  0.0038,
			NetProfit8h:    0.0020,
		},
	}

	if err := store.RecordScan(ctx, "scan-1", startedAt, 10, ops); err != nil {
		t.Fatalf("failed to record scan: %v", err)
	}

	summaries, err := store.RecentScans(ctx, 10)
	if err != nil {
		t.Fatalf("failed to query scans: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 scan, got %d", len(summaries))
	}

	s := summaries[0]
	if s.ScanID != "scan-1" {
		t.Errorf("scan_id = %q", s.ScanID)
	}
	if !s.StartedAt.Equal(startedAt) {
		t.Errorf("started_at = %v, want %v", s.StartedAt, startedAt)
	}
	if s.Records != 10 {
		t.Errorf("records = %d", s.Records)
	}
	if s.Opportunities != 1 {
		t.Errorf("opportunities = %d", s.Opportunities)
	}
}

func TestRecentScansOrderAndLimit(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		scanID := []string{"scan-a", "scan-b", "scan-c"}[i]
		if err := store.RecordScan(ctx, scanID, base.Add(time.Duration(i)*time.Hour), i, nil); err != nil {
			t.Fatalf("failed to record scan %d: %v", i, err)
		}
	}

	summaries, err := store.RecentScans(ctx, 2)
	if err != nil {
		t.Fatalf("failed to query scans: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 scans, got %d", len(summaries))
	}
	if summaries[0].ScanID != "scan-c" || summaries[1].ScanID != "scan-b" {
		t.Errorf("unexpected order: %s, %s", summaries[0].ScanID, summaries[1].ScanID)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open store with nested path: %v", err)
	}
	store.Close()
}
