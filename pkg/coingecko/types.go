package coingecko

// MarketCoin mirrors one row of the /coins/markets listing. Monetary
// fields are denominated in the vs_currency of the request.
type MarketCoin struct {
	ID                  string   `json:"id"`
	Symbol              string   `json:"symbol"`
	Name                string   `json:"name"`
	Image               string   `json:"image"`
	CurrentPrice        float64  `json:"current_price"`
	MarketCap           float64  `json:"market_cap"`
	MarketCapRank       int      `json:"market_cap_rank"`
	TotalVolume         float64  `json:"total_volume"`
	PriceChange24h      float64  `json:"price_change_percentage_24h"`
	PriceChange1h       float64  `json:"price_change_percentage_1h_in_currency"`
	PriceChange7d       float64  `json:"price_change_percentage_7d_in_currency"`
	CirculatingSupply   float64  `json:"circulating_supply"`
	TotalSupply         *float64 `json:"total_supply"`
	ATH                 float64  `json:"ath"`
	ATHChangePercentage float64  `json:"ath_change_percentage"`
}

// GlobalData is the payload of /global. Aggregates are keyed by
// currency code (lowercase).
type GlobalData struct {
	TotalMarketCap        map[string]float64 `json:"total_market_cap"`
	TotalVolume           map[string]float64 `json:"total_volume"`
	MarketCapPercentage   map[string]float64 `json:"market_cap_percentage"`
	MarketCapChange24hUSD float64            `json:"market_cap_change_percentage_24h_usd"`
}

type globalEnvelope struct {
	Data GlobalData `json:"data"`
}

// CoinResponse mirrors /coins/{id}. Only the fields this service reads
// are declared.
type CoinResponse struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Image  struct {
		Large string `json:"large"`
	} `json:"image"`
	MarketData CoinMarketData `json:"market_data"`
}

// CoinMarketData holds the per-currency keyed figures of a coin detail
// response. Maps are keyed by currency code (lowercase).
type CoinMarketData struct {
	CurrentPrice            map[string]float64 `json:"current_price"`
	MarketCap               map[string]float64 `json:"market_cap"`
	MarketCapRank           int                `json:"market_cap_rank"`
	TotalVolume             map[string]float64 `json:"total_volume"`
	PriceChange24h          float64            `json:"price_change_percentage_24h"`
	PriceChange1hInCurrency map[string]float64 `json:"price_change_percentage_1h_in_currency"`
	PriceChange7dInCurrency map[string]float64 `json:"price_change_percentage_7d_in_currency"`
	CirculatingSupply       float64            `json:"circulating_supply"`
	TotalSupply             *float64           `json:"total_supply"`
	ATH                     map[string]float64 `json:"ath"`
	ATHChangePercentage     map[string]float64 `json:"ath_change_percentage"`
}

// MarketChart is the payload of /coins/{id}/market_chart/range.
// Each point is a [timestamp_ms, value] pair in chronological order.
type MarketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// HistoryResponse is the payload of /coins/{id}/history: a single
// point-in-time snapshot with per-currency keyed prices.
type HistoryResponse struct {
	MarketData *struct {
		CurrentPrice map[string]float64 `json:"current_price"`
	} `json:"market_data"`
}

// ValueFor selects the value for the requested currency from a
// currency-keyed map, substituting the USD value when the requested
// currency is absent. Missing both yields zero, never an error.
func ValueFor(values map[string]float64, currency string) float64 {
	if len(values) == 0 {
		return 0
	}
	if v, ok := values[currency]; ok {
		return v
	}
	return values["usd"]
}
