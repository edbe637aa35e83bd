package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"cointrack-api/internal/config"
	"cointrack-api/internal/svc"
	"cointrack-api/pkg/coingecko"
	"cointrack-api/pkg/confkit"
	"cointrack-api/pkg/orderbook"
)

func newWarmServiceContext(t *testing.T) *svc.ServiceContext {
	t.Helper()

	gecko := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/coins/markets":
			_, _ = w.Write([]byte(`[
				{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":60000},
				{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3000},
				{"id":"solana","symbol":"sol","name":"Solana","current_price":150}
			]`))
		case strings.HasSuffix(r.URL.Path, "/market_chart/range"):
			_, _ = w.Write([]byte(`{"prices":[[1000000,59000],[2000000,60000]]}`))
		default:
			_, _ = w.Write([]byte(`{"id":"bitcoin","symbol":"btc","name":"Bitcoin",
				"market_data":{"current_price":{"usd":60000},"market_cap":{"usd":1}}}`))
		}
	}))
	t.Cleanup(gecko.Close)

	venue := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"coin":"BTC","time":1730000000000,
			"levels":[
				[{"px":"60000","sz":"1.5","n":2}],
				[{"px":"60001","sz":"0.7","n":1}]
			]}`))
	}))
	t.Cleanup(venue.Close)

	mr := miniredis.RunT(t)
	cfg := config.Config{
		Env:     "test",
		Redis:   redis.RedisConf{Host: mr.Addr(), Type: "node"},
		Refresh: config.RefreshConf{Interval: 60, BookInterval: 10},
		Prefs:   config.PrefsConf{Theme: "dark", Currency: "USD"},
		CoinGecko: confkit.Section[coingecko.Config]{
			Value: &coingecko.Config{BaseURL: gecko.URL},
		},
		Hyperliquid: confkit.Section[orderbook.Config]{
			Value: &orderbook.Config{
				BaseURL: venue.URL,
				// Unroutable: each session's stream fails fast and the
				// poll fallback carries the book.
				WSURL: "ws://127.0.0.1:1/ws",
			},
		},
	}
	return svc.NewServiceContext(cfg)
}

func TestOpenBookSessionsWarmsSharedCache(t *testing.T) {
	serviceCtx := newWarmServiceContext(t)
	ctx := context.Background()

	sessions := openBookSessions(ctx, serviceCtx)
	require.Len(t, sessions, len(warmedCoins))
	defer func() {
		for _, session := range sessions {
			session.Close()
		}
	}()

	for i, session := range sessions {
		state := session.State()
		require.NotNil(t, state.Book, "session %s", warmedCoins[i])
		require.Len(t, state.Book.Bids, 1, "session %s", warmedCoins[i])
		require.NotNil(t, state.History, "session %s", warmedCoins[i])
	}

	// The sessions populated the cache the API serves from.
	for _, id := range warmedCoins {
		book := serviceCtx.Books.OrderBook(ctx, id)
		require.Len(t, book.Bids, 1, "coin %s", id)
		require.InDelta(t, 60000, book.Bids[0].Price, 0.001)
	}
}
