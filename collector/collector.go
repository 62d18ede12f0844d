// Package collector orchestrates the exchange adapters and runs the
// pairwise funding-rate spread search over the normalized records.
package collector

import (
	"context"
	"sort"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/config"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/exchange"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/logger"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

// minSpread is the noise floor: pairs whose rate difference does not
// exceed one basis point are not treated as a real spread.
const minSpread = 0.0001

// fixedBuffer is the flat safety margin added on top of fees and
// slippage for every hedged pair.
const fixedBuffer = 0.002

// Collector holds the enabled adapters and an immutable fee/slippage
// model captured from configuration at construction time.
type Collector struct {
	adapters []exchange.Adapter
	fees     map[string]float64
	slippage map[string]float64
	log      *logger.Log
}

// New builds a Collector. Fee and slippage tables are converted from
// percent to fractions once, here; the collector never reads config again.
func New(cfg *config.Config, adapters []exchange.Adapter) *Collector {
	fees := make(map[string]float64, len(cfg.Fees))
	for exchangeName := range cfg.Fees {
		fees[exchangeName] = cfg.ExchangeFee(exchangeName)
	}
	slippage := make(map[string]float64, len(cfg.Slippage))
	for symbol := range cfg.Slippage {
		slippage[symbol] = cfg.SymbolSlippage(symbol)
	}

	return &Collector{
		adapters: adapters,
		fees:     fees,
		slippage: slippage,
		log:      logger.GetLogger(),
	}
}

// Adapters exposes the enabled adapters, in polling order.
func (c *Collector) Adapters() []exchange.Adapter {
	return c.adapters
}

// CollectAll polls every adapter in turn and concatenates the results.
// A failing adapter contributes nothing but never stops the others.
func (c *Collector) CollectAll(ctx context.Context, symbols []string) []models.FundingRate {
	log := c.log.WithComponent("collector")
	log.WithFields(logger.Fields{"symbols": symbols}).Info("collecting funding rates")

	var all []models.FundingRate
	for _, adapter := range c.adapters {
		if ctx.Err() != nil {
			break
		}
		rates := adapter.FetchRates(ctx, symbols)
		all = append(all, rates...)
		log.WithFields(logger.Fields{"exchange": adapter.Name(), "records": len(rates)}).Info("exchange collected")
	}

	log.WithFields(logger.Fields{"total": len(all)}).Info("collection finished")
	return all
}

// FindOpportunities enumerates all unordered pairs of same-symbol records,
// labels the higher-rate leg long, and keeps pairs whose spread survives
// the fee model. The result is ordered by net profit descending; ties keep
// pair enumeration order.
func (c *Collector) FindOpportunities(records []models.FundingRate) []models.Opportunity {
	groups := make(map[string][]models.FundingRate)
	var symbols []string
	for _, record := range records {
		if _, seen := groups[record.Symbol]; !seen {
			symbols = append(symbols, record.Symbol)
		}
		groups[record.Symbol] = append(groups[record.Symbol], record)
	}

	var opportunities []models.Opportunity
	for _, symbol := range symbols {
		rates := groups[symbol]
		if len(rates) < 2 {
			continue
		}

		for i := 0; i < len(rates); i++ {
			for j := i + 1; j < len(rates); j++ {
				long, short := rates[i], rates[j]
				if short.Rate > long.Rate {
					long, short = short, long
				}

				rateDiff := long.Rate - short.Rate
				if rateDiff <= minSpread {
					continue
				}

				opportunity := c.price(long, short, symbol)
				if opportunity.NetProfit8h > 0 {
					opportunities = append(opportunities, opportunity)
				}
			}
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].NetProfit8h > opportunities[j].NetProfit8h
	})
	return opportunities
}

// price applies the fee model to one long/short pair.
func (c *Collector) price(long, short models.FundingRate, symbol string) models.Opportunity {
	rateDiff := long.Rate - short.Rate

	longFee := c.exchangeFee(long.Exchange)
	shortFee := c.exchangeFee(short.Exchange)
	slippage := c.symbolSlippage(symbol)

	totalFees := longFee + shortFee + 2*slippage + fixedBuffer

	nextFunding := long.NextFundingTime
	if nextFunding == nil {
		nextFunding = short.NextFundingTime
	}

	return models.Opportunity{
		Symbol:          symbol,
		LongExchange:    long.Exchange,
		ShortExchange:   short.Exchange,
		LongRate:        long.Rate,
		ShortRate:       short.Rate,
		RateDifference:  rateDiff,
		GrossProfit8h:   rateDiff,
		EstimatedFees:   totalFees,
		NetProfit8h:     rateDiff - totalFees,
		NextFundingTime: nextFunding,
	}
}

func (c *Collector) exchangeFee(exchange string) float64 {
	if fee, ok := c.fees[exchange]; ok {
		return fee
	}
	return 0.1 / 100
}

func (c *Collector) symbolSlippage(symbol string) float64 {
	if s, ok := c.slippage[symbol]; ok {
		return s
	}
	return 0.05 / 100
}
