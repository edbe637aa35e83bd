package orderbook

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/internal/cache"
	"cointrack-api/pkg/cachestore"
)

// BookDepth is the fixed per-side depth limit.
const BookDepth = 10

// Service fetches depth-limited order books with a cache-aside layer.
// Book prices are venue-denominated (USD); currency conversion happens
// at the edge via ConvertBook.
type Service struct {
	client  *Client
	symbols *SymbolMap
	store   *cachestore.Store
	ttl     cache.TTLSet
	wsURL   string
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithStreamURL overrides the WebSocket endpoint derived from the
// client's base URL.
func WithStreamURL(u string) ServiceOption {
	return func(s *Service) {
		if u != "" {
			s.wsURL = u
		}
	}
}

// NewService constructs an order book service.
func NewService(client *Client, symbols *SymbolMap, store *cachestore.Store, ttl cache.TTLSet, opts ...ServiceOption) *Service {
	svc := &Service{client: client, symbols: symbols, store: store, ttl: ttl}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// OrderBook returns the book for a market-data coin identifier. The
// chain is cache, venue, cache again, empty shape; it never returns nil
// and never fails, so renderers have no absent-vs-empty distinction to
// handle.
func (s *Service) OrderBook(ctx context.Context, id string) *Book {
	key := cache.OrderBookKey(id)

	var cached Book
	if s.store.Load(ctx, key, s.ttl.OrderBook, &cached) {
		return &cached
	}

	symbol := s.symbols.Resolve(ctx, id)
	resp, err := s.client.L2Book(ctx, symbol)
	if err == nil {
		book := bookFromSides(resp.Levels[0], resp.Levels[1], BookDepth)
		s.store.Save(ctx, key, book)
		return book
	}
	logx.WithContext(ctx).Errorf("orderbook: fetch l2 book id=%s symbol=%s: %v", id, symbol, err)

	if s.store.Load(ctx, key, s.ttl.OrderBook, &cached) {
		return &cached
	}
	return EmptyBook()
}

// StoreBook replaces the cached book for id. Push updates from the
// stream land here so poll consumers see the freshest state.
func (s *Service) StoreBook(ctx context.Context, id string, book *Book) {
	if book == nil {
		return
	}
	s.store.Save(ctx, cache.OrderBookKey(id), book)
}

// ResolveSymbol exposes the venue symbol for a coin identifier.
func (s *Service) ResolveSymbol(ctx context.Context, id string) string {
	return s.symbols.Resolve(ctx, id)
}

// StreamURL returns the venue's WebSocket endpoint.
func (s *Service) StreamURL() string {
	if s.wsURL != "" {
		return s.wsURL
	}
	return s.client.WSURL()
}
