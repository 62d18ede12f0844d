package exchange

import (
	"context"
	"strconv"
	"time"

	futures "github.com/adshao/go-binance/v2/futures"
	"golang.org/x/time/rate"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/config"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/logger"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

var binanceSymbols = map[string]string{
	"BTC": "BTCUSDT", "ETH": "ETHUSDT", "SOL": "SOLUSDT",
	"ADA": "ADAUSDT", "MATIC": "MATICUSDT", "DOT": "DOTUSDT", "AVAX": "AVAXUSDT",
}

// Binance polls the futures premium index, which carries the last funding
// rate for every USDT perpetual in a single call.
type Binance struct {
	client  *futures.Client
	limiter *rate.Limiter
	log     *logger.Log
}

func NewBinance(cfg *config.Config) *Binance {
	client := futures.NewClient("", "")
	client.HTTPClient = newHTTPClient(cfg)
	if cfg.Exchanges.Binance.URL != "" {
		client.SetApiEndpoint(cfg.Exchanges.Binance.URL)
	}

	return &Binance{
		client:  client,
		limiter: newLimiter(cfg.Exchanges.Binance.MinIntervalMs),
		log:     logger.GetLogger(),
	}
}

func (b *Binance) Name() string { return "Binance" }

// FetchRates issues one premium-index request and keeps the rows whose
// instrument maps back to a requested canonical symbol.
func (b *Binance) FetchRates(ctx context.Context, symbols []string) []models.FundingRate {
	log := b.log.WithComponent("binance_adapter")

	if err := b.limiter.Wait(ctx); err != nil {
		log.WithError(err).Warn("rate limiter wait failed")
		return nil
	}

	premiums, err := b.client.NewPremiumIndexService().Do(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to fetch premium index")
		return nil
	}

	rates := make([]models.FundingRate, 0, len(symbols))
	for _, item := range premiums {
		base, ok := canonical(binanceSymbols, item.Symbol)
		if !ok || !requested(symbols, base) {
			continue
		}

		fundingRate, err := strconv.ParseFloat(item.LastFundingRate, 64)
		if err != nil {
			log.WithError(err).WithFields(logger.Fields{"symbol": item.Symbol}).Warn("unparsable funding rate, skipping")
			continue
		}

		record := models.FundingRate{
			Exchange:   "Binance",
			Symbol:     base,
			Rate:       fundingRate,
			ObservedAt: time.Now().UTC(),
		}
		if item.NextFundingTime > 0 {
			next := time.UnixMilli(item.NextFundingTime).UTC()
			record.NextFundingTime = &next
		}
		if mark, err := strconv.ParseFloat(item.MarkPrice, 64); err == nil && mark > 0 {
			record.MarkPrice = &mark
		}

		rates = append(rates, record)
	}

	log.WithFields(logger.Fields{"records": len(rates)}).Debug("binance funding rates collected")
	return rates
}
