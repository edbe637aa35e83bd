package types

import (
	"cointrack-api/pkg/market"
	"cointrack-api/pkg/orderbook"
)

type ListCoinsReq struct {
	Currency string `form:"currency,optional"`
}

// CoinView is a coin snapshot decorated with the formatted strings
// clients render directly.
type CoinView struct {
	market.CoinSnapshot
	PriceDisplay     string `json:"price_display"`
	MarketCapDisplay string `json:"market_cap_display"`
	Change24hDisplay string `json:"change_24h_display"`
}

type ListCoinsResp struct {
	Coins           []CoinView `json:"coins"`
	Currency        string     `json:"currency"`
	UsingCachedData bool       `json:"using_cached_data"`
}

type MarketStatsReq struct {
	Currency string `form:"currency,optional"`
}

type MarketStatsResp struct {
	Stats            *market.MarketSnapshot `json:"stats"`
	MarketCapDisplay string                 `json:"market_cap_display"`
	VolumeDisplay    string                 `json:"volume_display"`
	Change24hDisplay string                 `json:"change_24h_display"`
	UsingCachedData  bool                   `json:"using_cached_data"`
}

type CoinDetailReq struct {
	ID       string `path:"id"`
	Currency string `form:"currency,optional"`
}

type CoinDetailResp struct {
	Coin            *CoinView `json:"coin"`
	UsingCachedData bool      `json:"using_cached_data"`
}

type PriceHistoryReq struct {
	ID       string `path:"id"`
	Currency string `form:"currency,optional"`
}

type OrderBookReq struct {
	ID       string `path:"id"`
	Currency string `form:"currency,optional"`
}

type OrderBookResp struct {
	Symbol   string          `json:"symbol"`
	Book     *orderbook.Book `json:"book"`
	Currency string          `json:"currency"`
}

type PreferencesResp struct {
	Theme    string `json:"theme"`
	Currency string `json:"currency"`
}

type UpdatePreferencesReq struct {
	Theme    string `json:"theme,optional"`
	Currency string `json:"currency,optional"`
}
