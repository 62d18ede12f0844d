package bot

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/collector"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/config"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/exchange"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/report"
)

type stubAdapter struct {
	name  string
	rates []models.FundingRate
}

func (s stubAdapter) Name() string { return s.name }

func (s stubAdapter) FetchRates(ctx context.Context, symbols []string) []models.FundingRate {
	return s.rates
}

func rateRecord(exchangeName string, rate float64) models.FundingRate {
	return models.FundingRate{
		Exchange:   exchangeName,
		Symbol:     "BTC",
		Rate:       rate,
		ObservedAt: time.Now().UTC(),
	}
}

func newTestBot(t *testing.T, cfg *config.Config, adapters []exchange.Adapter, out *bytes.Buffer) *Bot {
	t.Helper()
	c := collector.New(cfg, adapters)
	console := report.NewConsole(out, cfg.Scanner.PositionSize)
	snapshots := report.NewSnapshotWriter(cfg)
	return New(cfg, c, console, snapshots, nil)
}

func TestScanWritesSnapshotForProfitableSpread(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Scanner.Symbols = []string{"BTC"}
	cfg.Scanner.MinProfitThreshold = 0.001

	var out bytes.Buffer
	b := newTestBot(t, cfg, []exchange.Adapter{
		stubAdapter{name: "Binance", rates: []models.FundingRate{rateRecord("Binance", 0.0100)}},
		stubAdapter{name: "Bybit", rates: []models.FundingRate{rateRecord("Bybit", 0.0002)}},
	}, &out)

	b.Scan(context.Background())

	entries, err := os.ReadDir(cfg.Output.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 snapshot file, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "opportunities_") || !strings.HasSuffix(entries[0].Name(), ".json") {
		t.Errorf("unexpected snapshot name %q", entries[0].Name())
	}

	printed := out.String()
	if !strings.Contains(printed, "Total: 2 funding rates") {
		t.Errorf("missing collection summary in:\n%s", printed)
	}
	if !strings.Contains(printed, "1 profitable opportunities found") {
		t.Errorf("missing profitable count in:\n%s", printed)
	}
	if !strings.Contains(printed, "TOP ARBITRAGE OPPORTUNITIES") {
		t.Errorf("missing opportunity listing in:\n%s", printed)
	}
}

func TestScanBelowThresholdWritesNothing(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Scanner.Symbols = []string{"BTC"}
	// Spread nets 0.0020, below the 0.005 default threshold.
	var out bytes.Buffer
	b := newTestBot(t, cfg, []exchange.Adapter{
		stubAdapter{name: "Binance", rates: []models.FundingRate{rateRecord("Binance", 0.0060)}},
		stubAdapter{name: "Bybit", rates: []models.FundingRate{rateRecord("Bybit", 0.0002)}},
	}, &out)

	b.Scan(context.Background())

	entries, err := os.ReadDir(cfg.Output.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no snapshot files, got %d", len(entries))
	}
	if !strings.Contains(out.String(), "No profitable opportunity found") {
		t.Errorf("missing fallback message in:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Best current opportunities:") {
		t.Errorf("missing best-opportunities fallback in:\n%s", out.String())
	}
}

func TestScanWithNoDataSkipsCycle(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()

	var out bytes.Buffer
	b := newTestBot(t, cfg, []exchange.Adapter{
		stubAdapter{name: "Binance"},
		stubAdapter{name: "Bybit"},
	}, &out)

	b.Scan(context.Background())

	if strings.Contains(out.String(), "FUNDING RATES COLLECTED") {
		t.Errorf("empty cycle should not print a summary:\n%s", out.String())
	}
}

func TestTestConnectivity(t *testing.T) {
	cfg := config.Default()
	var console bytes.Buffer
	b := newTestBot(t, cfg, []exchange.Adapter{
		stubAdapter{name: "Binance", rates: []models.FundingRate{rateRecord("Binance", 0.0001)}},
		stubAdapter{name: "OKX"},
	}, &console)

	var out bytes.Buffer
	b.TestConnectivity(context.Background(), &out)

	if !strings.Contains(out.String(), "Binance: OK (1 rates)") {
		t.Errorf("missing Binance status in:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "OKX: no data") {
		t.Errorf("missing OKX status in:\n%s", out.String())
	}
}

func TestTopTruncates(t *testing.T) {
	ops := []models.Opportunity{{Symbol: "A"}, {Symbol: "B"}, {Symbol: "C"}}
	if got := top(ops, 2); len(got) != 2 {
		t.Errorf("top(3, 2) returned %d items", len(got))
	}
	if got := top(ops, 5); len(got) != 3 {
		t.Errorf("top(3, 5) returned %d items", len(got))
	}
}
