// Package exchange contains one adapter per supported derivatives venue.
// Every adapter polls its venue's public market-data REST API, maps the
// exchange-specific payload into models.FundingRate and swallows per-item
// failures so a broken symbol or endpoint never aborts a scan.
package exchange

import (
	"context"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

// Adapter fetches current funding rates for a set of canonical symbols.
// Implementations log and skip anything they cannot fetch or parse; the
// returned slice may be empty but FetchRates never fails the caller.
type Adapter interface {
	Name() string
	FetchRates(ctx context.Context, symbols []string) []models.FundingRate
}

// canonical returns the canonical symbol for an exchange instrument
// identifier, using the adapter's static mapping. The second return is
// false when the instrument is not part of the mapping.
func canonical(mapping map[string]string, instrument string) (string, bool) {
	for base, inst := range mapping {
		if inst == instrument {
			return base, true
		}
	}
	return "", false
}

// requested reports whether a canonical symbol is in the requested set.
func requested(symbols []string, symbol string) bool {
	for _, s := range symbols {
		if s == symbol {
			return true
		}
	}
	return false
}
