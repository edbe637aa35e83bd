package coingecko

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListMarketsQueryAndHeader(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	var gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotKey = r.Header.Get("x-cg-demo-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":65000.5,"market_cap_rank":1,
			 "price_change_percentage_1h_in_currency":0.4,"price_change_percentage_24h":-1.2,
			 "price_change_percentage_7d_in_currency":3.1,"total_supply":21000000}
		]`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithAPIKey("demo-key"))
	coins, err := client.ListMarkets(context.Background(), MarketsParams{
		Currency:    "eur",
		Order:       "market_cap_desc",
		PerPage:     50,
		Page:        1,
		PriceChange: "1h,24h,7d",
	})
	require.NoError(t, err)
	require.Len(t, coins, 1)

	require.Equal(t, "/coins/markets", gotPath)
	require.Equal(t, "eur", gotQuery["vs_currency"][0])
	require.Equal(t, "market_cap_desc", gotQuery["order"][0])
	require.Equal(t, "50", gotQuery["per_page"][0])
	require.Equal(t, "false", gotQuery["sparkline"][0])
	require.Equal(t, "1h,24h,7d", gotQuery["price_change_percentage"][0])
	require.Equal(t, "demo-key", gotKey)

	coin := coins[0]
	require.Equal(t, "bitcoin", coin.ID)
	require.InDelta(t, 65000.5, coin.CurrentPrice, 0.001)
	require.InDelta(t, 0.4, coin.PriceChange1h, 0.001)
	require.NotNil(t, coin.TotalSupply)
	require.InDelta(t, 21000000, *coin.TotalSupply, 0.001)
}

func TestGlobalUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/global", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{
			"total_market_cap":{"usd":2500000000000,"eur":2300000000000},
			"total_volume":{"usd":98000000000},
			"market_cap_percentage":{"btc":52.1,"eth":17.3},
			"market_cap_change_percentage_24h_usd":-0.8
		}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	global, err := client.Global(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 2.5e12, global.TotalMarketCap["usd"], 1)
	require.InDelta(t, 52.1, global.MarketCapPercentage["btc"], 0.001)
	require.InDelta(t, -0.8, global.MarketCapChange24hUSD, 0.001)
}

func TestMarketChartRangeParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/coins/bitcoin/market_chart/range", r.URL.Path)
		require.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		require.Equal(t, "1000", r.URL.Query().Get("from"))
		require.Equal(t, "2000", r.URL.Query().Get("to"))
		_, _ = w.Write([]byte(`{"prices":[[1000000,64000],[2000000,65000]]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	chart, err := client.MarketChartRange(context.Background(), "bitcoin", "usd", 1000, 2000)
	require.NoError(t, err)
	require.Len(t, chart.Prices, 2)
	require.InDelta(t, 65000, chart.Prices[1][1], 0.001)
}

func TestStatusErrorClassification(t *testing.T) {
	for _, tt := range []struct {
		code        int
		rateLimited bool
		authShaped  bool
	}{
		{http.StatusTooManyRequests, true, false},
		{http.StatusUnauthorized, false, true},
		{http.StatusForbidden, false, true},
		{http.StatusInternalServerError, false, false},
	} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.code)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		}))

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.Global(context.Background())
		server.Close()

		require.Error(t, err)
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		require.Equal(t, tt.code, statusErr.Code)

		// Classification must survive wrapping.
		wrapped := fmt.Errorf("market: global stats: %w", err)
		require.Equal(t, tt.rateLimited, IsRateLimited(wrapped), "code %d", tt.code)
		require.Equal(t, tt.authShaped, IsAuthShaped(wrapped), "code %d", tt.code)
	}
}

func TestValueForUSDFallback(t *testing.T) {
	values := map[string]float64{"usd": 100, "eur": 92}
	require.InDelta(t, 92, ValueFor(values, "eur"), 0.001)
	require.InDelta(t, 100, ValueFor(values, "jpy"), 0.001)
	require.InDelta(t, 0, ValueFor(nil, "usd"), 0.001)
}
