package exchange

import (
	"context"
	"time"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/config"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/logger"
	"github.com/MarcR1993/funding-rate-arbitrage-bot/models"
)

var kucoinSymbols = map[string]string{
	"BTC": "XBTUSDTM", "ETH": "ETHUSDTM", "SOL": "SOLUSDTM",
	"ADA": "ADAUSDTM", "MATIC": "MATICUSDTM", "DOT": "DOTUSDTM", "AVAX": "AVAXUSDTM",
}

const kucoinOK = "200000"

// KuCoin polls the current funding rate per contract, then refines the
// value with the contract detail which also carries the mark price.
type KuCoin struct {
	client *restClient
	log    *logger.Log
}

func NewKuCoin(cfg *config.Config) *KuCoin {
	return &KuCoin{
		client: newRestClient(cfg, cfg.Exchanges.Kucoin),
		log:    logger.GetLogger(),
	}
}

func (k *KuCoin) Name() string { return "KuCoin" }

func (k *KuCoin) FetchRates(ctx context.Context, symbols []string) []models.FundingRate {
	log := k.log.WithComponent("kucoin_adapter")

	rates := make([]models.FundingRate, 0, len(symbols))
	for _, symbol := range symbols {
		instrument, ok := kucoinSymbols[symbol]
		if !ok {
			continue
		}

		var funding models.KucoinFundingRateResp
		if err := k.client.getJSON(ctx, "/api/v1/funding-rate/"+instrument+"/current", nil, &funding); err != nil {
			log.WithError(err).WithFields(logger.Fields{"symbol": symbol}).Warn("failed to fetch funding rate")
			continue
		}
		if funding.Code != kucoinOK {
			log.WithFields(logger.Fields{"symbol": symbol, "code": funding.Code}).Warn("unexpected funding rate response, skipping")
			continue
		}

		record := models.FundingRate{
			Exchange:   "KuCoin",
			Symbol:     symbol,
			Rate:       funding.Data.Value,
			ObservedAt: time.Now().UTC(),
		}

		// The contract detail carries a fresher fundingFeeRate plus the
		// mark price; failures here degrade the record, not the scan.
		var contract models.KucoinContractResp
		if err := k.client.getJSON(ctx, "/api/v1/contracts/"+instrument, nil, &contract); err != nil {
			log.WithError(err).WithFields(logger.Fields{"symbol": symbol}).Warn("failed to fetch contract detail")
		} else if contract.Code == kucoinOK {
			if contract.Data.FundingFeeRate != nil {
				record.Rate = *contract.Data.FundingFeeRate
			}
			if contract.Data.MarkPrice != nil && *contract.Data.MarkPrice > 0 {
				record.MarkPrice = contract.Data.MarkPrice
			}
		}

		rates = append(rates, record)
	}

	log.WithFields(logger.Fields{"records": len(rates)}).Debug("kucoin funding rates collected")
	return rates
}
