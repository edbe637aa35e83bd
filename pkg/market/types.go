package market

// CoinSnapshot is one coin as shown in listings and detail views. All
// monetary fields are denominated in Currency; a snapshot never mixes
// denominations.
type CoinSnapshot struct {
	ID                  string   `json:"id"`
	Symbol              string   `json:"symbol"`
	Name                string   `json:"name"`
	Image               string   `json:"image"`
	CurrentPrice        float64  `json:"current_price"`
	MarketCap           float64  `json:"market_cap"`
	MarketCapRank       int      `json:"market_cap_rank"`
	TotalVolume         float64  `json:"total_volume"`
	PriceChange1h       float64  `json:"price_change_percentage_1h"`
	PriceChange24h      float64  `json:"price_change_percentage_24h"`
	PriceChange7d       float64  `json:"price_change_percentage_7d"`
	CirculatingSupply   float64  `json:"circulating_supply"`
	TotalSupply         *float64 `json:"total_supply"`
	ATH                 float64  `json:"ath"`
	ATHChangePercentage float64  `json:"ath_change_percentage"`
	Currency            string   `json:"currency"`
}

// MarketSnapshot aggregates global market statistics.
type MarketSnapshot struct {
	TotalMarketCap     float64 `json:"total_market_cap"`
	TotalVolume        float64 `json:"total_volume"`
	BTCDominance       float64 `json:"btc_dominance"`
	ETHDominance       float64 `json:"eth_dominance"`
	MarketCapChange24h float64 `json:"market_cap_change_percentage_24h"`
	Currency           string  `json:"currency"`
}

// PriceHistory holds close prices over three fixed windows, oldest
// first. Points carry no timestamps; spacing is whatever the upstream
// series used. The three window keys are always present.
type PriceHistory struct {
	Day      []float64 `json:"1d"`
	Week     []float64 `json:"7d"`
	Month    []float64 `json:"30d"`
	Currency string    `json:"currency"`
}

// EmptyHistory returns the renderable zero shape: three empty windows,
// never nil slices.
func EmptyHistory(currency string) *PriceHistory {
	return &PriceHistory{
		Day:      []float64{},
		Week:     []float64{},
		Month:    []float64{},
		Currency: currency,
	}
}
