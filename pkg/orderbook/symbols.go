package orderbook

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/internal/cache"
	"cointrack-api/pkg/cachestore"
	"cointrack-api/pkg/coingecko"
)

// defaultVenueSymbol is served for identifiers the mapping does not
// cover, so a detail view always has some book to show.
const defaultVenueSymbol = "BTC"

const mappingPageSize = 100

// fallbackSymbols covers the well-known assets when the mapping cannot
// be fetched at all.
var fallbackSymbols = map[string]string{
	"bitcoin":       "BTC",
	"ethereum":      "ETH",
	"solana":        "SOL",
	"arbitrum":      "ARB",
	"avalanche-2":   "AVAX",
	"binancecoin":   "BNB",
	"cardano":       "ADA",
	"dogecoin":      "DOGE",
	"polkadot":      "DOT",
	"ripple":        "XRP",
	"usd-coin":      "USDC",
	"tether":        "USDT",
	"matic-network": "MATIC",
	"chainlink":     "LINK",
	"litecoin":      "LTC",
}

// SymbolMap translates market-data coin identifiers into venue trading
// symbols. The table is refreshed from the top-100 listing at most once
// per TTL window, held in memory with the persistent cache underneath,
// and never fails outright: the static fallback table is the floor.
type SymbolMap struct {
	cg    *coingecko.Client
	store *cachestore.Store
	ttl   time.Duration

	mu    sync.RWMutex
	table map[string]string
}

// NewSymbolMap constructs a symbol mapping over the supplied clients.
func NewSymbolMap(cg *coingecko.Client, store *cachestore.Store, ttl time.Duration) *SymbolMap {
	return &SymbolMap{cg: cg, store: store, ttl: ttl}
}

// Resolve returns the venue symbol for a market-data identifier,
// defaulting to BTC for unknown identifiers.
func (m *SymbolMap) Resolve(ctx context.Context, id string) string {
	table := m.mapping(ctx)
	if symbol, ok := table[id]; ok {
		return symbol
	}
	return defaultVenueSymbol
}

// Mapping returns the current identifier-to-symbol table.
func (m *SymbolMap) Mapping(ctx context.Context) map[string]string {
	table := m.mapping(ctx)
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

func (m *SymbolMap) mapping(ctx context.Context) map[string]string {
	m.mu.RLock()
	table := m.table
	m.mu.RUnlock()
	if len(table) > 0 {
		return table
	}

	// Memory is cold: consult the persistent cache before the network.
	var cached map[string]string
	if m.store.Load(ctx, cache.SymbolMapKey(), m.ttl, &cached) && len(cached) > 0 {
		m.storeTable(cached)
		return cached
	}

	fetched, err := m.fetch(ctx)
	if err != nil {
		logx.WithContext(ctx).Errorf("orderbook: refresh symbol mapping: %v", err)
		m.storeTable(fallbackSymbols)
		return fallbackSymbols
	}
	m.store.Save(ctx, cache.SymbolMapKey(), fetched)
	m.storeTable(fetched)
	return fetched
}

func (m *SymbolMap) fetch(ctx context.Context) (map[string]string, error) {
	coins, err := m.cg.ListMarkets(ctx, coingecko.MarketsParams{
		Currency: "usd",
		Order:    "market_cap_desc",
		PerPage:  mappingPageSize,
		Page:     1,
	})
	if err != nil {
		return nil, err
	}

	table := make(map[string]string, len(coins))
	for _, coin := range coins {
		if coin.ID == "" || coin.Symbol == "" {
			continue
		}
		table[coin.ID] = strings.ToUpper(coin.Symbol)
	}
	return table, nil
}

func (m *SymbolMap) storeTable(table map[string]string) {
	m.mu.Lock()
	m.table = table
	m.mu.Unlock()
}
