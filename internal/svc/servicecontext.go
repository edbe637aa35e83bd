package svc

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/stores/redis"

	"cointrack-api/internal/cache"
	"cointrack-api/internal/config"
	"cointrack-api/internal/prefs"
	"cointrack-api/pkg/cachestore"
	"cointrack-api/pkg/coingecko"
	"cointrack-api/pkg/market"
	"cointrack-api/pkg/orderbook"
	"cointrack-api/pkg/tracker"
)

type ServiceContext struct {
	Config config.Config

	Store   *cachestore.Store
	TTL     cache.TTLSet
	Markets *market.Service
	Books   *orderbook.Service
	Tracker *tracker.Tracker
	Prefs   *prefs.Manager
}

func NewServiceContext(c config.Config) *ServiceContext {
	var rdb *redis.Redis
	if c.Redis.Host != "" {
		rdb = redis.MustNewRedis(c.Redis)
	}
	store := cachestore.New(rdb)
	ttl := cache.NewTTLSet(cache.TTLSeconds{
		CoinList:  c.TTL.CoinList,
		Stats:     c.TTL.Stats,
		Detail:    c.TTL.Detail,
		History:   c.TTL.History,
		OrderBook: c.TTL.OrderBook,
		SymbolMap: c.TTL.SymbolMap,
	})

	cgClient := coingecko.NewClient()
	if c.CoinGecko.Value != nil {
		cgClient = c.CoinGecko.Value.BuildClient()
	}

	hlClient := orderbook.NewClient()
	bookOpts := []orderbook.ServiceOption{}
	if c.Hyperliquid.Value != nil {
		hlClient = c.Hyperliquid.Value.BuildClient()
		bookOpts = append(bookOpts, orderbook.WithStreamURL(c.Hyperliquid.Value.StreamURL()))
	}

	markets := market.NewService(cgClient, store, ttl)
	symbols := orderbook.NewSymbolMap(cgClient, store, ttl.SymbolMap)
	books := orderbook.NewService(hlClient, symbols, store, ttl, bookOpts...)

	prefsMgr := prefs.NewManager(rdb, c.Prefs)

	trk := tracker.New(markets, prefsMgr.Currency(context.Background()), time.Duration(c.Refresh.Interval)*time.Second)

	return &ServiceContext{
		Config:  c,
		Store:   store,
		TTL:     ttl,
		Markets: markets,
		Books:   books,
		Tracker: trk,
		Prefs:   prefsMgr,
	}
}
