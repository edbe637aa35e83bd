package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/internal/cache"
	"cointrack-api/pkg/cachestore"
	"cointrack-api/pkg/coingecko"
)

const (
	listingPageSize      = 50
	historyWindow        = 30 * 24 * time.Hour
	defaultFallbackDelay = 5 * time.Second
)

// Service fetches market data from CoinGecko with a cache-aside layer
// on the persistent store. Operations are stateless aside from cache
// reads and writes; every successful fetch replaces its cache entry
// wholesale.
type Service struct {
	client        *coingecko.Client
	store         *cachestore.Store
	ttl           cache.TTLSet
	fallbackDelay time.Duration
	now           func() time.Time
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithFallbackDelay adjusts the pause before the degraded history call.
func WithFallbackDelay(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d >= 0 {
			s.fallbackDelay = d
		}
	}
}

// WithClock overrides the service clock. Test hook.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a market data service.
func NewService(client *coingecko.Client, store *cachestore.Store, ttl cache.TTLSet, opts ...ServiceOption) *Service {
	svc := &Service{
		client:        client,
		store:         store,
		ttl:           ttl,
		fallbackDelay: defaultFallbackDelay,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func normalizeCurrency(currency string) string {
	vs := strings.ToLower(strings.TrimSpace(currency))
	if vs == "" {
		return "usd"
	}
	return vs
}

// ListCoins returns the top coins by market cap, denominated in
// currency. The second return reports whether the result was served
// from cache after a rate-limited upstream. Any other failure, or a
// rate limit with a cold cache, propagates.
func (s *Service) ListCoins(ctx context.Context, currency string) ([]CoinSnapshot, bool, error) {
	vs := normalizeCurrency(currency)

	coins, err := s.client.ListMarkets(ctx, coingecko.MarketsParams{
		Currency:    vs,
		Order:       "market_cap_desc",
		PerPage:     listingPageSize,
		Page:        1,
		PriceChange: "1h,24h,7d",
	})
	if err == nil {
		snaps := make([]CoinSnapshot, 0, len(coins))
		for _, coin := range coins {
			snaps = append(snaps, listingSnapshot(coin, vs))
		}
		s.store.Save(ctx, cache.CoinListKey(vs), snaps)
		return snaps, false, nil
	}

	if coingecko.IsRateLimited(err) {
		var cached []CoinSnapshot
		if s.store.Load(ctx, cache.CoinListKey(vs), s.ttl.CoinList, &cached) {
			logx.WithContext(ctx).Infof("market: rate limited, serving cached listing currency=%s", vs)
			return cached, true, nil
		}
	}
	return nil, false, fmt.Errorf("market: list coins: %w", err)
}

// Stats returns aggregate global statistics denominated in currency.
// Same cache-on-rate-limit semantics as ListCoins.
func (s *Service) Stats(ctx context.Context, currency string) (*MarketSnapshot, bool, error) {
	vs := normalizeCurrency(currency)

	global, err := s.client.Global(ctx)
	if err == nil {
		snap := &MarketSnapshot{
			TotalMarketCap:     coingecko.ValueFor(global.TotalMarketCap, vs),
			TotalVolume:        coingecko.ValueFor(global.TotalVolume, vs),
			BTCDominance:       global.MarketCapPercentage["btc"],
			ETHDominance:       global.MarketCapPercentage["eth"],
			MarketCapChange24h: global.MarketCapChange24hUSD,
			Currency:           vs,
		}
		s.store.Save(ctx, cache.MarketStatsKey(vs), snap)
		return snap, false, nil
	}

	if coingecko.IsRateLimited(err) {
		var cached MarketSnapshot
		if s.store.Load(ctx, cache.MarketStatsKey(vs), s.ttl.Stats, &cached) {
			logx.WithContext(ctx).Infof("market: rate limited, serving cached stats currency=%s", vs)
			return &cached, true, nil
		}
	}
	return nil, false, fmt.Errorf("market: global stats: %w", err)
}

// Detail returns a single coin snapshot denominated in currency,
// extracting currency-keyed fields with a USD fallback. Same
// cache-on-rate-limit semantics as ListCoins.
func (s *Service) Detail(ctx context.Context, id, currency string) (*CoinSnapshot, bool, error) {
	vs := normalizeCurrency(currency)

	coin, err := s.client.Coin(ctx, id)
	if err == nil {
		snap := detailSnapshot(coin, vs)
		s.store.Save(ctx, cache.CoinDetailKey(id, vs), snap)
		return snap, false, nil
	}

	if coingecko.IsRateLimited(err) {
		var cached CoinSnapshot
		if s.store.Load(ctx, cache.CoinDetailKey(id, vs), s.ttl.Detail, &cached) {
			logx.WithContext(ctx).Infof("market: rate limited, serving cached detail id=%s", id)
			return &cached, true, nil
		}
	}
	return nil, false, fmt.Errorf("market: coin detail %s: %w", id, err)
}

// History returns the three-window price history for a coin. Unlike the
// other operations it consults the cache before the network: the series
// is the most expensive call and the least volatile. It never fails:
// the fallback chain ends in an explicitly empty shape.
func (s *Service) History(ctx context.Context, id, currency string) *PriceHistory {
	vs := normalizeCurrency(currency)
	key := cache.PriceHistoryKey(id, vs)

	var cached PriceHistory
	if s.store.Load(ctx, key, s.ttl.History, &cached) {
		return &cached
	}

	now := s.now()
	chart, err := s.client.MarketChartRange(ctx, id, vs, now.Add(-historyWindow).Unix(), now.Unix())
	if err == nil {
		hist := partitionChart(chart.Prices, now, vs)
		s.store.Save(ctx, key, hist)
		return hist
	}
	logx.WithContext(ctx).Errorf("market: price history %s: %v", id, err)

	// The free tier answers ranged chart calls with 401/429 when
	// throttled; the single-date history endpoint is rationed
	// separately, so one degraded attempt is worth it.
	if coingecko.IsAuthShaped(err) || coingecko.IsRateLimited(err) {
		if hist := s.degradedHistory(ctx, id, vs); hist != nil {
			s.store.Save(ctx, key, hist)
			return hist
		}
	}

	// Re-check the cache: a concurrent fetch may have repopulated it.
	if s.store.Load(ctx, key, s.ttl.History, &cached) {
		return &cached
	}
	return EmptyHistory(vs)
}

// degradedHistory fetches yesterday's single price point and spreads it
// across all three windows so charts keep a renderable series.
func (s *Service) degradedHistory(ctx context.Context, id, vs string) *PriceHistory {
	if s.fallbackDelay > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.fallbackDelay):
		}
	}

	yesterday := s.now().AddDate(0, 0, -1)
	date := fmt.Sprintf("%d-%d-%d", yesterday.Day(), int(yesterday.Month()), yesterday.Year())
	hist, err := s.client.History(ctx, id, date)
	if err != nil || hist.MarketData == nil {
		logx.WithContext(ctx).Errorf("market: degraded history %s: %v", id, err)
		return nil
	}

	price := coingecko.ValueFor(hist.MarketData.CurrentPrice, vs)
	return &PriceHistory{
		Day:      []float64{price},
		Week:     []float64{price},
		Month:    []float64{price},
		Currency: vs,
	}
}

// partitionChart splits one 30-day series into the three window views
// by point timestamp.
func partitionChart(points [][2]float64, now time.Time, vs string) *PriceHistory {
	dayCutoff := float64(now.Add(-24*time.Hour).UnixMilli())
	weekCutoff := float64(now.Add(-7*24*time.Hour).UnixMilli())

	hist := EmptyHistory(vs)
	for _, point := range points {
		ts, price := point[0], point[1]
		hist.Month = append(hist.Month, price)
		if ts >= weekCutoff {
			hist.Week = append(hist.Week, price)
		}
		if ts >= dayCutoff {
			hist.Day = append(hist.Day, price)
		}
	}
	return hist
}

func listingSnapshot(coin coingecko.MarketCoin, vs string) CoinSnapshot {
	return CoinSnapshot{
		ID:                  coin.ID,
		Symbol:              coin.Symbol,
		Name:                coin.Name,
		Image:               coin.Image,
		CurrentPrice:        coin.CurrentPrice,
		MarketCap:           coin.MarketCap,
		MarketCapRank:       coin.MarketCapRank,
		TotalVolume:         coin.TotalVolume,
		PriceChange1h:       coin.PriceChange1h,
		PriceChange24h:      coin.PriceChange24h,
		PriceChange7d:       coin.PriceChange7d,
		CirculatingSupply:   coin.CirculatingSupply,
		TotalSupply:         coin.TotalSupply,
		ATH:                 coin.ATH,
		ATHChangePercentage: coin.ATHChangePercentage,
		Currency:            vs,
	}
}

func detailSnapshot(coin *coingecko.CoinResponse, vs string) *CoinSnapshot {
	md := coin.MarketData
	return &CoinSnapshot{
		ID:                  coin.ID,
		Symbol:              coin.Symbol,
		Name:                coin.Name,
		Image:               coin.Image.Large,
		CurrentPrice:        coingecko.ValueFor(md.CurrentPrice, vs),
		MarketCap:           coingecko.ValueFor(md.MarketCap, vs),
		MarketCapRank:       md.MarketCapRank,
		TotalVolume:         coingecko.ValueFor(md.TotalVolume, vs),
		PriceChange1h:       coingecko.ValueFor(md.PriceChange1hInCurrency, vs),
		PriceChange24h:      md.PriceChange24h,
		PriceChange7d:       coingecko.ValueFor(md.PriceChange7dInCurrency, vs),
		CirculatingSupply:   md.CirculatingSupply,
		TotalSupply:         md.TotalSupply,
		ATH:                 coingecko.ValueFor(md.ATH, vs),
		ATHChangePercentage: coingecko.ValueFor(md.ATHChangePercentage, vs),
		Currency:            vs,
	}
}
