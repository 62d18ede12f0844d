package models

/////////////////////////////////////////////////////////////////////////////
///////////////////////////////// BINANCE ///////////////////////////////////
/////////////////////////////////////////////////////////////////////////////

// Binance premium-index rows are decoded through the go-binance futures
// client (futures.PremiumIndex); no local mirror is needed.

/////////////////////////////////////////////////////////////////////////////
///////////////////////////////// BYBIT /////////////////////////////////////
/////////////////////////////////////////////////////////////////////////////

// BybitTickersResult mirrors the result object of /v5/market/tickers for
// the linear category. Numeric fields arrive as strings.
type BybitTickersResult struct {
	Category string        `json:"category"`
	List     []BybitTicker `json:"list"`
}

// BybitTicker is a single linear-contract ticker entry.
type BybitTicker struct {
	Symbol          string `json:"symbol"`
	MarkPrice       string `json:"markPrice"`
	FundingRate     string `json:"fundingRate"`
	NextFundingTime string `json:"nextFundingTime"`
}

/////////////////////////////////////////////////////////////////////////////
////////////////////////////////// OKX //////////////////////////////////////
/////////////////////////////////////////////////////////////////////////////

// OkxFundingRateResp mirrors /api/v5/public/funding-rate.
type OkxFundingRateResp struct {
	Code string               `json:"code"`
	Msg  string               `json:"msg"`
	Data []OkxFundingRateItem `json:"data"`
}

// OkxFundingRateItem carries the current funding rate for one SWAP instrument.
type OkxFundingRateItem struct {
	InstID          string `json:"instId"`
	FundingRate     string `json:"fundingRate"`
	NextFundingTime string `json:"nextFundingTime"`
	FundingTime     string `json:"fundingTime"`
}

/////////////////////////////////////////////////////////////////////////////
///////////////////////////////// BITGET ////////////////////////////////////
/////////////////////////////////////////////////////////////////////////////

// BitgetContractsResp mirrors /api/mix/v1/market/contracts.
type BitgetContractsResp struct {
	Code string           `json:"code"`
	Msg  string           `json:"msg"`
	Data []BitgetContract `json:"data"`
}

// BitgetContract identifies one UMCBL perpetual contract.
type BitgetContract struct {
	Symbol     string `json:"symbol"`
	BaseCoin   string `json:"baseCoin"`
	QuoteCoin  string `json:"quoteCoin"`
	SymbolType string `json:"symbolType"`
}

// BitgetTickerResp mirrors /api/mix/v1/market/ticker.
type BitgetTickerResp struct {
	Code string       `json:"code"`
	Msg  string       `json:"msg"`
	Data BitgetTicker `json:"data"`
}

// BitgetTicker is the market ticker for one contract, including the
// current funding rate.
type BitgetTicker struct {
	Symbol      string `json:"symbol"`
	Last        string `json:"last"`
	MarkPrice   string `json:"markPrice"`
	FundingRate string `json:"fundingRate"`
}

/////////////////////////////////////////////////////////////////////////////
///////////////////////////////// KUCOIN ////////////////////////////////////
/////////////////////////////////////////////////////////////////////////////

// KucoinFundingRateResp mirrors /api/v1/funding-rate/<symbol>/current.
type KucoinFundingRateResp struct {
	Code string                `json:"code"`
	Data KucoinFundingRateItem `json:"data"`
}

// KucoinFundingRateItem carries the current funding rate for one contract.
type KucoinFundingRateItem struct {
	Symbol         string  `json:"symbol"`
	Value          float64 `json:"value"`
	PredictedValue float64 `json:"predictedValue"`
	TimePoint      int64   `json:"timePoint"`
}

// KucoinContractResp mirrors /api/v1/contracts/<symbol>.
type KucoinContractResp struct {
	Code string             `json:"code"`
	Data KucoinContractItem `json:"data"`
}

// KucoinContractItem is the subset of the contract detail used for
// normalization. KuCoin reports fundingFeeRate and markPrice as numbers.
type KucoinContractItem struct {
	Symbol         string   `json:"symbol"`
	FundingFeeRate *float64 `json:"fundingFeeRate"`
	MarkPrice      *float64 `json:"markPrice"`
}
