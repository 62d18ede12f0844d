package exchange

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/config"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/logger"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

var bitgetSymbols = map[string]string{
	"BTC": "BTCUSDT_UMCBL", "ETH": "ETHUSDT_UMCBL", "SOL": "SOLUSDT_UMCBL",
	"ADA": "ADAUSDT_UMCBL", "MATIC": "MATICUSDT_UMCBL", "DOT": "DOTUSDT_UMCBL", "AVAX": "AVAXUSDT_UMCBL",
}

// Bitget lists the UMCBL contracts once per scan, then fetches the ticker
// for each matching contract since the funding rate only appears there.
type Bitget struct {
	client *restClient
	log    *logger.Log
}

func NewBitget(cfg *config.Config) *Bitget {
	return &Bitget{
		client: newRestClient(cfg, cfg.Exchanges.Bitget),
		log:    logger.GetLogger(),
	}
}

func (b *Bitget) Name() string { return "Bitget" }

func (b *Bitget) FetchRates(ctx context.Context, symbols []string) []models.FundingRate {
	log := b.log.WithComponent("bitget_adapter")

	var contracts models.BitgetContractsResp
	params := url.Values{"productType": {"umcbl"}}
	if err := b.client.getJSON(ctx, "/api/mix/v1/market/contracts", params, &contracts); err != nil {
		log.WithError(err).Warn("failed to fetch contracts")
		return nil
	}

	rates := make([]models.FundingRate, 0, len(symbols))
	for _, contract := range contracts.Data {
		base, ok := canonical(bitgetSymbols, contract.Symbol)
		if !ok || !requested(symbols, base) {
			continue
		}

		var ticker models.BitgetTickerResp
		tickerParams := url.Values{"symbol": {contract.Symbol}}
		if err := b.client.getJSON(ctx, "/api/mix/v1/market/ticker", tickerParams, &ticker); err != nil {
			log.WithError(err).WithFields(logger.Fields{"symbol": base}).Warn("failed to fetch ticker")
			continue
		}

		fundingRate, err := strconv.ParseFloat(ticker.Data.FundingRate, 64)
		if err != nil {
			log.WithError(err).WithFields(logger.Fields{"symbol": base}).Warn("unparsable funding rate, skipping")
			continue
		}

		record := models.FundingRate{
			Exchange:   "Bitget",
			Symbol:     base,
			Rate:       fundingRate,
			ObservedAt: time.Now().UTC(),
		}
		if mark, err := strconv.ParseFloat(ticker.Data.MarkPrice, 64); err == nil && mark > 0 {
			record.MarkPrice = &mark
		}

		rates = append(rates, record)
	}

	log.WithFields(logger.Fields{"records": len(rates)}).Debug("bitget funding rates collected")
	return rates
}
