package cache

import (
	"strings"
	"time"
)

// Namespace is the key prefix for everything this service stores.
const Namespace = "cointrack"

// TTLSet normalises the per-kind cache TTLs from config into durations.
// Every cached entity kind has a fixed TTL; an entry older than its
// kind's TTL is a silent miss.
type TTLSet struct {
	CoinList  time.Duration
	Stats     time.Duration
	Detail    time.Duration
	History   time.Duration
	OrderBook time.Duration
	SymbolMap time.Duration
}

// TTLSeconds is the seconds-valued input for NewTTLSet, mirroring the
// per-kind TTL fields the config layer exposes.
type TTLSeconds struct {
	CoinList  int
	Stats     int
	Detail    int
	History   int
	OrderBook int
	SymbolMap int
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg TTLSeconds) TTLSet {
	return TTLSet{
		CoinList:  durationOrDefault(cfg.CoinList, 5*time.Minute),
		Stats:     durationOrDefault(cfg.Stats, 5*time.Minute),
		Detail:    durationOrDefault(cfg.Detail, 10*time.Minute),
		History:   durationOrDefault(cfg.History, 15*time.Minute),
		OrderBook: durationOrDefault(cfg.OrderBook, 30*time.Second),
		SymbolMap: durationOrDefault(cfg.SymbolMap, 24*time.Hour),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

func currencyPart(currency string) string {
	return strings.ToLower(strings.TrimSpace(currency))
}

// --- Market Data Keys -------------------------------------------------------

// CoinListKey holds the top-coin listing payload. Keys are scoped by the
// denomination currency so a currency switch can never serve a listing
// denominated in the previous currency.
func CoinListKey(currency string) string {
	return formatKey("coins", "list", currencyPart(currency))
}

// MarketStatsKey holds the aggregate global stats payload.
func MarketStatsKey(currency string) string {
	return formatKey("market", "stats", currencyPart(currency))
}

// CoinDetailKey holds a single coin's detail snapshot.
func CoinDetailKey(id, currency string) string {
	return formatKey("coins", "detail", id, currencyPart(currency))
}

// PriceHistoryKey holds the three-window price history for a coin.
func PriceHistoryKey(id, currency string) string {
	return formatKey("coins", "history", id, currencyPart(currency))
}

// --- Order Book Keys --------------------------------------------------------

// OrderBookKey holds the depth-limited level-2 book for a coin. Book
// prices are always venue-denominated (USD), so the key carries no
// currency part.
func OrderBookKey(id string) string {
	return formatKey("book", id)
}

// SymbolMapKey holds the market-data-id to venue-symbol table.
func SymbolMapKey() string {
	return formatKey("symbols", "map")
}

// --- Preference Keys --------------------------------------------------------

func ThemePrefKey() string {
	return formatKey("prefs", "theme")
}

func CurrencyPrefKey() string {
	return formatKey("prefs", "currency")
}
