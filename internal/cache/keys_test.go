package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeysAreNamespacedAndCurrencyScoped(t *testing.T) {
	require.Equal(t, "cointrack:coins:list:usd", CoinListKey("USD"))
	require.Equal(t, "cointrack:coins:list:eur", CoinListKey(" eur "))
	require.Equal(t, "cointrack:market:stats:jpy", MarketStatsKey("jpy"))
	require.Equal(t, "cointrack:coins:detail:bitcoin:usd", CoinDetailKey("bitcoin", "usd"))
	require.Equal(t, "cointrack:coins:history:ethereum:gbp", PriceHistoryKey("ethereum", "GBP"))

	// Listings for two currencies never share a key.
	require.NotEqual(t, CoinListKey("usd"), CoinListKey("eur"))
}

func TestOrderBookKeyHasNoCurrencyPart(t *testing.T) {
	require.Equal(t, "cointrack:book:bitcoin", OrderBookKey("bitcoin"))
}

func TestStaticKeys(t *testing.T) {
	require.Equal(t, "cointrack:symbols:map", SymbolMapKey())
	require.Equal(t, "cointrack:prefs:theme", ThemePrefKey())
	require.Equal(t, "cointrack:prefs:currency", CurrencyPrefKey())
}

func TestNewTTLSet(t *testing.T) {
	ttl := NewTTLSet(TTLSeconds{
		CoinList:  300,
		Stats:     300,
		Detail:    600,
		History:   900,
		OrderBook: 30,
		SymbolMap: 86400,
	})
	require.Equal(t, 5*time.Minute, ttl.CoinList)
	require.Equal(t, 10*time.Minute, ttl.Detail)
	require.Equal(t, 30*time.Second, ttl.OrderBook)
	require.Equal(t, 24*time.Hour, ttl.SymbolMap)
}

func TestNewTTLSetDefaults(t *testing.T) {
	ttl := NewTTLSet(TTLSeconds{})
	require.Equal(t, 5*time.Minute, ttl.CoinList)
	require.Equal(t, 15*time.Minute, ttl.History)
	require.Equal(t, 24*time.Hour, ttl.SymbolMap)
}
