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

var okxSymbols = map[string]string{
	"BTC": "BTC-USDT-SWAP", "ETH": "ETH-USDT-SWAP", "SOL": "SOL-USDT-SWAP",
	"ADA": "ADA-USDT-SWAP", "MATIC": "MATIC-USDT-SWAP", "DOT": "DOT-USDT-SWAP", "AVAX": "AVAX-USDT-SWAP",
}

// OKX polls the public funding-rate endpoint, one instrument per request.
type OKX struct {
	client *restClient
	log    *logger.Log
}

func NewOKX(cfg *config.Config) *OKX {
	return &OKX{
		client: newRestClient(cfg, cfg.Exchanges.Okx),
		log:    logger.GetLogger(),
	}
}

func (o *OKX) Name() string { return "OKX" }

func (o *OKX) FetchRates(ctx context.Context, symbols []string) []models.FundingRate {
	log := o.log.WithComponent("okx_adapter")

	rates := make([]models.FundingRate, 0, len(symbols))
	for _, symbol := range symbols {
		instrument, ok := okxSymbols[symbol]
		if !ok {
			continue
		}

		params := url.Values{"instId": {instrument}}
		var resp models.OkxFundingRateResp
		if err := o.client.getJSON(ctx, "/api/v5/public/funding-rate", params, &resp); err != nil {
			log.WithError(err).WithFields(logger.Fields{"symbol": symbol}).Warn("failed to fetch funding rate")
			continue
		}
		if resp.Code != "0" || len(resp.Data) == 0 {
			log.WithFields(logger.Fields{"symbol": symbol, "code": resp.Code, "msg": resp.Msg}).Warn("empty funding rate response, skipping")
			continue
		}

		item := resp.Data[0]
		fundingRate, err := strconv.ParseFloat(item.FundingRate, 64)
		if err != nil {
			log.WithError(err).WithFields(logger.Fields{"symbol": symbol}).Warn("unparsable funding rate, skipping")
			continue
		}

		record := models.FundingRate{
			Exchange:   "OKX",
			Symbol:     symbol,
			Rate:       fundingRate,
			ObservedAt: time.Now().UTC(),
		}
		if ms, err := strconv.ParseInt(item.NextFundingTime, 10, 64); err == nil && ms > 0 {
			next := time.UnixMilli(ms).UTC()
			record.NextFundingTime = &next
		}

		rates = append(rates, record)
	}

	log.WithFields(logger.Fields{"records": len(rates)}).Debug("okx funding rates collected")
	return rates
}
