package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Scanner   ScannerConfig      `yaml:"scanner"`
	Exchanges ExchangesConfig    `yaml:"exchanges"`
	Reader    ReaderConfig       `yaml:"reader"`
	Fees      map[string]float64 `yaml:"fees"`
	Slippage  map[string]float64 `yaml:"slippage"`
	Output    OutputConfig       `yaml:"output"`
	Storage   StorageConfig      `yaml:"storage"`
	History   HistoryConfig      `yaml:"history"`
	Metrics   MetricsConfig      `yaml:"metrics"`
	Logging   LoggingConfig      `yaml:"logging"`
}

type ScannerConfig struct {
	Name                string   `yaml:"name"`
	Version             string   `yaml:"version"`
	Symbols             []string `yaml:"symbols"`
	MinProfitThreshold  float64  `yaml:"min_profit_threshold"`
	PositionSize        float64  `yaml:"position_size"`
	ScanIntervalMinutes int      `yaml:"scan_interval_minutes"`
	EnabledExchanges    []string `yaml:"enabled_exchanges"`
}

type ExchangesConfig struct {
	Binance ExchangeConfig `yaml:"binance"`
	Bybit   ExchangeConfig `yaml:"bybit"`
	Okx     ExchangeConfig `yaml:"okx"`
	Bitget  ExchangeConfig `yaml:"bitget"`
	Kucoin  ExchangeConfig `yaml:"kucoin"`
}

type ExchangeConfig struct {
	URL           string `yaml:"url"`
	MinIntervalMs int    `yaml:"min_interval_ms"`
}

type ReaderConfig struct {
	Timeout   time.Duration        `yaml:"timeout"`
	UserAgent string               `yaml:"user_agent"`
	Pool      ConnectionPoolConfig `yaml:"connection_pool"`
}

type ConnectionPoolConfig struct {
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxConnsPerHost int           `yaml:"max_conns_per_host"`
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

type OutputConfig struct {
	Dir     string        `yaml:"dir"`
	Parquet ParquetConfig `yaml:"parquet"`
}

type ParquetConfig struct {
	Enabled bool `yaml:"enabled"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type HistoryConfig struct {
	Sqlite SqliteConfig `yaml:"sqlite"`
}

type SqliteConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type MetricsConfig struct {
	Cloudwatch CloudwatchConfig `yaml:"cloudwatch"`
}

type CloudwatchConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Region    string `yaml:"region"`
	Namespace string `yaml:"namespace"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

// Default returns the built-in configuration used when no config file is
// present. Fee and slippage tables are expressed in percent of notional,
// matching the exchanges' published taker tiers.
func Default() *Config {
	return &Config{
		Scanner: ScannerConfig{
			Name:                "funding-rate-bot",
			Version:             "1.0.0",
			Symbols:             []string{"BTC", "ETH", "SOL", "ADA", "MATIC", "DOT", "AVAX"},
			MinProfitThreshold:  0.005,
			PositionSize:        1000,
			ScanIntervalMinutes: 30,
			EnabledExchanges:    []string{"binance", "bybit", "okx", "bitget", "kucoin"},
		},
		Exchanges: ExchangesConfig{
			Binance: ExchangeConfig{URL: "https://fapi.binance.com", MinIntervalMs: 500},
			Bybit:   ExchangeConfig{URL: "https://api.bybit.com", MinIntervalMs: 500},
			Okx:     ExchangeConfig{URL: "https://www.okx.com", MinIntervalMs: 100},
			Bitget:  ExchangeConfig{URL: "https://api.bitget.com", MinIntervalMs: 100},
			Kucoin:  ExchangeConfig{URL: "https://api-futures.kucoin.com", MinIntervalMs: 200},
		},
		Reader: ReaderConfig{
			Timeout:   10 * time.Second,
			UserAgent: "funding-rate-bot/1.0 (+https://github.com/MarcR1993/funding-rate-arbitrage-bot)",
			Pool: ConnectionPoolConfig{
				MaxIdleConns:    10,
				MaxConnsPerHost: 5,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		Fees: map[string]float64{
			"Binance": 0.08,
			"Bybit":   0.08,
			"OKX":     0.09,
			"Bitget":  0.10,
			"KuCoin":  0.09,
		},
		Slippage: map[string]float64{
			"BTC": 0.01, "ETH": 0.02, "SOL": 0.03, "ADA": 0.04,
			"MATIC": 0.04, "DOT": 0.03, "AVAX": 0.03,
		},
		Output: OutputConfig{Dir: "data"},
		History: HistoryConfig{
			Sqlite: SqliteConfig{Path: "data/history.db"},
		},
		Metrics: MetricsConfig{
			Cloudwatch: CloudwatchConfig{Namespace: "FundingRateBot"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// Load reads the configuration file at path, layering it over the built-in
// defaults. A missing file is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override S3 settings from environment variables if available
	if cfg.Storage.S3.Enabled {
		if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
			cfg.Storage.S3.AccessKeyID = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
			cfg.Storage.S3.SecretAccessKey = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_REGION"); v != "" {
			cfg.Storage.S3.Region = strings.TrimSpace(v)
		}
		if v := os.Getenv("S3_BUCKET"); v != "" {
			cfg.Storage.S3.Bucket = strings.TrimSpace(v)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Scanner.Name == "" {
		return fmt.Errorf("scanner.name is required")
	}

	if len(cfg.Scanner.Symbols) == 0 {
		return fmt.Errorf("scanner.symbols must not be empty")
	}

	if len(cfg.Scanner.EnabledExchanges) == 0 {
		return fmt.Errorf("scanner.enabled_exchanges must not be empty")
	}

	if cfg.Scanner.MinProfitThreshold < 0 {
		return fmt.Errorf("scanner.min_profit_threshold must not be negative")
	}

	if cfg.Scanner.PositionSize <= 0 {
		return fmt.Errorf("scanner.position_size must be greater than 0")
	}

	if cfg.Scanner.ScanIntervalMinutes <= 0 {
		return fmt.Errorf("scanner.scan_interval_minutes must be greater than 0")
	}

	if cfg.Reader.Timeout <= 0 {
		return fmt.Errorf("reader.timeout must be greater than 0")
	}

	if cfg.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}

	if cfg.Storage.S3.Enabled {
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required when S3 is enabled")
		}
		if cfg.Storage.S3.Region == "" {
			return fmt.Errorf("storage.s3.region is required when S3 is enabled")
		}
	}

	if cfg.History.Sqlite.Enabled && cfg.History.Sqlite.Path == "" {
		return fmt.Errorf("history.sqlite.path is required when history is enabled")
	}

	return nil
}

// ExchangeFee returns the taker fee for an exchange as a fraction of
// notional. Unknown exchanges fall back to 0.1%.
func (c *Config) ExchangeFee(exchange string) float64 {
	if pct, ok := c.Fees[exchange]; ok {
		return pct / 100
	}
	return 0.1 / 100
}

// SymbolSlippage returns the per-leg slippage estimate for a symbol as a
// fraction of notional. Unknown symbols fall back to 0.05%.
func (c *Config) SymbolSlippage(symbol string) float64 {
	if pct, ok := c.Slippage[symbol]; ok {
		return pct / 100
	}
	return 0.05 / 100
}

// ExchangeEnabled reports whether an exchange key appears in the enabled set.
func (c *Config) ExchangeEnabled(key string) bool {
	for _, e := range c.Scanner.EnabledExchanges {
		if strings.EqualFold(e, key) {
			return true
		}
	}
	return false
}

// ScanInterval returns the configured scan interval as a duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scanner.ScanIntervalMinutes) * time.Minute
}
