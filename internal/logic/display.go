package logic

import (
	"cointrack-api/internal/types"
	"cointrack-api/pkg/currency"
	"cointrack-api/pkg/market"
)

// displayCurrency maps a snapshot's lowercase denomination onto a
// formatting code, falling back to USD for anything unexpected.
func displayCurrency(vs string) currency.Code {
	code, err := currency.Parse(vs)
	if err != nil {
		return currency.USD
	}
	return code
}

// coinView decorates a snapshot with the formatted strings clients
// render: symbol-prefixed price, abbreviated market cap, signed 24h
// change.
func coinView(coin market.CoinSnapshot) types.CoinView {
	code := displayCurrency(coin.Currency)
	return types.CoinView{
		CoinSnapshot:     coin,
		PriceDisplay:     currency.FormatMoney(coin.CurrentPrice, code),
		MarketCapDisplay: currency.Abbreviate(coin.MarketCap, code),
		Change24hDisplay: currency.FormatPercent(coin.PriceChange24h),
	}
}

func coinViews(coins []market.CoinSnapshot) []types.CoinView {
	views := make([]types.CoinView, 0, len(coins))
	for _, coin := range coins {
		views = append(views, coinView(coin))
	}
	return views
}

// statsResp decorates the global stats with their display strings.
func statsResp(stats *market.MarketSnapshot, cached bool) *types.MarketStatsResp {
	resp := &types.MarketStatsResp{Stats: stats, UsingCachedData: cached}
	if stats == nil {
		return resp
	}
	code := displayCurrency(stats.Currency)
	resp.MarketCapDisplay = currency.Abbreviate(stats.TotalMarketCap, code)
	resp.VolumeDisplay = currency.Abbreviate(stats.TotalVolume, code)
	resp.Change24hDisplay = currency.FormatPercent(stats.MarketCapChange24h)
	return resp
}
