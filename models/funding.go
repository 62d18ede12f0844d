package models

import "time"

// FundingRate is one normalized funding-rate observation for a single
// instrument on a single exchange. Instances are never mutated after
// construction; each poll cycle produces a fresh set.
type FundingRate struct {
	Exchange        string     `json:"exchange"`
	Symbol          string     `json:"symbol"`
	Rate            float64    `json:"rate"`
	ObservedAt      time.Time  `json:"observed_at"`
	NextFundingTime *time.Time `json:"next_funding_time,omitempty"`
	MarkPrice       *float64   `json:"mark_price,omitempty"`
}

// Opportunity is a cross-exchange funding-rate spread for one symbol.
// The leg with the numerically larger rate is labeled long, so
// LongRate >= ShortRate always holds. Recomputed every scan; carries
// no identity across scans.
type Opportunity struct {
	Symbol          string     `json:"symbol"`
	LongExchange    string     `json:"long_exchange"`
	ShortExchange   string     `json:"short_exchange"`
	LongRate        float64    `json:"long_rate"`
	ShortRate       float64    `json:"short_rate"`
	RateDifference  float64    `json:"rate_difference"`
	GrossProfit8h   float64    `json:"gross_profit_8h"`
	EstimatedFees   float64    `json:"estimated_fees"`
	NetProfit8h     float64    `json:"net_profit_8h"`
	NextFundingTime *time.Time `json:"next_funding_time,omitempty"`
}

// SnapshotRecord is the shape of one row in the per-scan JSON output file.
type SnapshotRecord struct {
	Timestamp          string  `json:"timestamp"`
	ScanID             string  `json:"scan_id"`
	Symbol             string  `json:"symbol"`
	LongExchange       string  `json:"long_exchange"`
	ShortExchange      string  `json:"short_exchange"`
	LongRate           float64 `json:"long_rate"`
	ShortRate          float64 `json:"short_rate"`
	RateDifference     float64 `json:"rate_difference"`
	NetProfit8hPct     float64 `json:"net_profit_8h_pct"`
	EstimatedProfitUSD float64 `json:"estimated_profit_usd"`
	NextFundingTime    *string `json:"next_funding_time"`
}
