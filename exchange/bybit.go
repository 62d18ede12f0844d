package exchange

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	bybit "github.com/bybit-exchange/bybit.go.api"
	"golang.org/x/time/rate"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/config"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/logger"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

var bybitSymbols = map[string]string{
	"BTC": "BTCUSDT", "ETH": "ETHUSDT", "SOL": "SOLUSDT",
	"ADA": "ADAUSDT", "MATIC": "MATICUSDT", "DOT": "DOTUSDT", "AVAX": "AVAXUSDT",
}

// Bybit polls the v5 linear tickers endpoint, which exposes the current
// funding rate and next funding time per contract.
type Bybit struct {
	client  *bybit.Client
	limiter *rate.Limiter
	log     *logger.Log
}

func NewBybit(cfg *config.Config) *Bybit {
	var opts []bybit.ClientOption
	if cfg.Exchanges.Bybit.URL != "" {
		opts = append(opts, bybit.WithBaseURL(cfg.Exchanges.Bybit.URL))
	}
	client := bybit.NewBybitHttpClient("", "", opts...)
	client.HTTPClient = newHTTPClient(cfg)

	return &Bybit{
		client:  client,
		limiter: newLimiter(cfg.Exchanges.Bybit.MinIntervalMs),
		log:     logger.GetLogger(),
	}
}

func (b *Bybit) Name() string { return "Bybit" }

// FetchRates queries the ticker for each requested symbol. One bad symbol
// is skipped without affecting the rest.
func (b *Bybit) FetchRates(ctx context.Context, symbols []string) []models.FundingRate {
	log := b.log.WithComponent("bybit_adapter")

	rates := make([]models.FundingRate, 0, len(symbols))
	for _, symbol := range symbols {
		instrument, ok := bybitSymbols[symbol]
		if !ok {
			continue
		}

		if err := b.limiter.Wait(ctx); err != nil {
			log.WithError(err).Warn("rate limiter wait failed")
			return rates
		}

		params := map[string]interface{}{"category": "linear", "symbol": instrument}
		resp, err := b.client.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx)
		if err != nil {
			log.WithError(err).WithFields(logger.Fields{"symbol": symbol}).Warn("failed to fetch ticker")
			continue
		}

		payload, err := json.Marshal(resp.Result)
		if err != nil {
			log.WithError(err).WithFields(logger.Fields{"symbol": symbol}).Warn("failed to marshal ticker result")
			continue
		}
		var result models.BybitTickersResult
		if err := json.Unmarshal(payload, &result); err != nil {
			log.WithError(err).WithFields(logger.Fields{"symbol": symbol}).Warn("failed to decode ticker result")
			continue
		}

		for _, ticker := range result.List {
			if ticker.Symbol != instrument {
				continue
			}

			fundingRate, err := strconv.ParseFloat(ticker.FundingRate, 64)
			if err != nil {
				log.WithError(err).WithFields(logger.Fields{"symbol": symbol}).Warn("unparsable funding rate, skipping")
				continue
			}

			record := models.FundingRate{
				Exchange:   "Bybit",
				Symbol:     symbol,
				Rate:       fundingRate,
				ObservedAt: time.Now().UTC(),
			}
			if ms, err := strconv.ParseInt(ticker.NextFundingTime, 10, 64); err == nil && ms > 0 {
				next := time.UnixMilli(ms).UTC()
				record.NextFundingTime = &next
			}
			if mark, err := strconv.ParseFloat(ticker.MarkPrice, 64); err == nil && mark > 0 {
				record.MarkPrice = &mark
			}

			rates = append(rates, record)
		}
	}

	log.WithFields(logger.Fields{"records": len(rates)}).Debug("bybit funding rates collected")
	return rates
}
