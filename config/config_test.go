package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Scanner.Name != "funding-rate-bot" {
		t.Errorf("scanner.name = %q", cfg.Scanner.Name)
	}
	if len(cfg.Scanner.Symbols) != 7 {
		t.Errorf("expected 7 default symbols, got %d", len(cfg.Scanner.Symbols))
	}
	if cfg.Scanner.MinProfitThreshold != 0.005 {
		t.Errorf("min_profit_threshold = %v", cfg.Scanner.MinProfitThreshold)
	}
	if cfg.Scanner.PositionSize != 1000 {
		t.Errorf("position_size = %v", cfg.Scanner.PositionSize)
	}
	if cfg.Scanner.ScanIntervalMinutes != 30 {
		t.Errorf("scan_interval_minutes = %v", cfg.Scanner.ScanIntervalMinutes)
	}
	if len(cfg.Scanner.EnabledExchanges) != 5 {
		t.Errorf("expected 5 enabled exchanges, got %d", len(cfg.Scanner.EnabledExchanges))
	}
	if cfg.Exchanges.Binance.URL != "https://fapi.binance.com" {
		t.Errorf("binance url = %q", cfg.Exchanges.Binance.URL)
	}
	if cfg.Reader.Timeout != 10*time.Second {
		t.Errorf("reader.timeout = %v", cfg.Reader.Timeout)
	}

	if err := validateConfig(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Scanner.Name != "funding-rate-bot" {
		t.Errorf("expected defaults, got scanner.name = %q", cfg.Scanner.Name)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
scanner:
  symbols: ["BTC", "ETH"]
  min_profit_threshold: 0.01
output:
  dir: /tmp/snapshots
fees:
  Binance: 0.05
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.Scanner.Symbols) != 2 {
		t.Errorf("expected 2 symbols, got %v", cfg.Scanner.Symbols)
	}
	if cfg.Scanner.MinProfitThreshold != 0.01 {
		t.Errorf("min_profit_threshold = %v", cfg.Scanner.MinProfitThreshold)
	}
	if cfg.Output.Dir != "/tmp/snapshots" {
		t.Errorf("output.dir = %q", cfg.Output.Dir)
	}
	if cfg.ExchangeFee("Binance") != 0.05/100 {
		t.Errorf("Binance fee = %v", cfg.ExchangeFee("Binance"))
	}
	// Untouched sections keep their defaults.
	if cfg.Scanner.PositionSize != 1000 {
		t.Errorf("position_size = %v", cfg.Scanner.PositionSize)
	}
	if cfg.Exchanges.Okx.URL != "https://www.okx.com" {
		t.Errorf("okx url = %q", cfg.Exchanges.Okx.URL)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty symbols", "scanner:\n  symbols: []\n"},
		{"zero position size", "scanner:\n  position_size: 0\n"},
		{"negative threshold", "scanner:\n  min_profit_threshold: -0.1\n"},
		{"zero interval", "scanner:\n  scan_interval_minutes: 0\n"},
		{"s3 without bucket", "storage:\n  s3:\n    enabled: true\n    region: eu-west-1\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestFeeAndSlippageFallbacks(t *testing.T) {
	cfg := Default()

	if got := cfg.ExchangeFee("Bitget"); got != 0.10/100 {
		t.Errorf("Bitget fee = %v, want 0.001", got)
	}
	if got := cfg.ExchangeFee("UnknownExchange"); got != 0.1/100 {
		t.Errorf("unknown exchange fee = %v, want 0.001", got)
	}
	if got := cfg.SymbolSlippage("ETH"); got != 0.02/100 {
		t.Errorf("ETH slippage = %v, want 0.0002", got)
	}
	if got := cfg.SymbolSlippage("XRP"); got != 0.05/100 {
		t.Errorf("unknown symbol slippage = %v, want 0.0005", got)
	}
}

func TestExchangeEnabled(t *testing.T) {
	cfg := Default()
	cfg.Scanner.EnabledExchanges = []string{"binance", "OKX"}

	if !cfg.ExchangeEnabled("binance") {
		t.Error("binance should be enabled")
	}
	if !cfg.ExchangeEnabled("okx") {
		t.Error("exchange matching should ignore case")
	}
	if cfg.ExchangeEnabled("bybit") {
		t.Error("bybit should not be enabled")
	}
}

func TestScanInterval(t *testing.T) {
	cfg := Default()
	cfg.Scanner.ScanIntervalMinutes = 45
	if cfg.ScanInterval() != 45*time.Minute {
		t.Errorf("scan interval = %v", cfg.ScanInterval())
	}
}
