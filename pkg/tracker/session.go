package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/pkg/market"
	"cointrack-api/pkg/orderbook"
)

const defaultBookPollInterval = 10 * time.Second

// DetailSource supplies per-coin data for a detail session.
type DetailSource interface {
	Detail(ctx context.Context, id, currency string) (*market.CoinSnapshot, bool, error)
	History(ctx context.Context, id, currency string) *market.PriceHistory
}

// BookSource supplies order book data and the streaming endpoint.
type BookSource interface {
	OrderBook(ctx context.Context, id string) *orderbook.Book
	StoreBook(ctx context.Context, id string, book *orderbook.Book)
	ResolveSymbol(ctx context.Context, id string) string
	StreamURL() string
}

// DetailState is a detail session's view of one coin.
type DetailState struct {
	Coin        *market.CoinSnapshot  `json:"coin"`
	History     *market.PriceHistory  `json:"price_history"`
	Book        *orderbook.Book       `json:"order_book"`
	ErrMsg      string                `json:"error,omitempty"`
	UsingCached bool                  `json:"using_cached_data"`
	StreamState orderbook.StreamState `json:"-"`
}

// DetailSession bundles the per-view resources of a coin detail screen:
// the detail and history fetch, the order book stream, and the interval
// poll that backs the stream up. Sessions are short-lived; Close tears
// both background resources down.
type DetailSession struct {
	id       string
	currency string
	markets  DetailSource
	books    BookSource
	tracker  *Tracker
	poll     time.Duration

	mu    sync.RWMutex
	state DetailState

	stream   *orderbook.Stream
	stopOnce sync.Once
	stopCh   chan struct{}
}

// SessionOption customises a DetailSession.
type SessionOption func(*DetailSession)

// WithBookPollInterval adjusts the order book poll cadence.
func WithBookPollInterval(d time.Duration) SessionOption {
	return func(s *DetailSession) {
		if d > 0 {
			s.poll = d
		}
	}
}

// WithListing lets the session resolve the coin from an already-loaded
// listing before calling the detail endpoint.
func WithListing(t *Tracker) SessionOption {
	return func(s *DetailSession) {
		s.tracker = t
	}
}

// NewDetailSession constructs a session for one coin.
func NewDetailSession(id, activeCurrency string, markets DetailSource, books BookSource, opts ...SessionOption) *DetailSession {
	s := &DetailSession{
		id:       id,
		currency: activeCurrency,
		markets:  markets,
		books:    books,
		poll:     defaultBookPollInterval,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the initial data, opens the stream, and starts the poll
// fallback. A stream failure is not an error: the poll covers it.
func (s *DetailSession) Open(ctx context.Context) {
	s.loadData(ctx)

	symbol := s.books.ResolveSymbol(ctx, s.id)
	s.stream = orderbook.NewStream(s.books.StreamURL(), symbol, s.applyBook)
	if err := s.stream.Open(ctx); err != nil {
		logx.WithContext(ctx).Errorf("tracker: detail stream %s: %v", s.id, err)
	}
	s.syncStreamState()

	go s.pollLoop()
}

func (s *DetailSession) loadData(ctx context.Context) {
	var coin *market.CoinSnapshot
	var usingCached bool
	var errMsg string

	// The listing usually has the coin already; only fall through to
	// the detail endpoint when it does not.
	if s.tracker != nil {
		if listed, ok := s.tracker.Coin(s.id); ok {
			coin = &listed
		}
	}
	if coin == nil {
		fetched, cached, err := s.markets.Detail(ctx, s.id, s.currency)
		if err != nil {
			logx.WithContext(ctx).Errorf("tracker: detail %s: %v", s.id, err)
			errMsg = "failed to fetch cryptocurrency details"
		} else {
			coin = fetched
			usingCached = cached
		}
	}

	history := s.markets.History(ctx, s.id, s.currency)
	book := s.books.OrderBook(ctx, s.id)

	s.mu.Lock()
	s.state.Coin = coin
	s.state.History = history
	s.state.Book = book
	s.state.UsingCached = usingCached
	if coin == nil {
		s.state.ErrMsg = errMsg
	} else {
		s.state.ErrMsg = ""
	}
	s.mu.Unlock()
}

// applyBook handles a push update: it replaces the in-memory book and
// refreshes the cache entry so poll consumers see the same state.
func (s *DetailSession) applyBook(book *orderbook.Book) {
	s.mu.Lock()
	s.state.Book = book
	s.mu.Unlock()
	s.books.StoreBook(context.Background(), s.id, book)
}

func (s *DetailSession) pollLoop() {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.syncStreamState()
			// The poll is the fallback path; skip it while the
			// stream is delivering pushes.
			if s.stream != nil && s.stream.State() == orderbook.StreamSubscribed {
				continue
			}
			book := s.books.OrderBook(context.Background(), s.id)
			s.mu.Lock()
			s.state.Book = book
			s.mu.Unlock()
		}
	}
}

func (s *DetailSession) syncStreamState() {
	if s.stream == nil {
		return
	}
	state := s.stream.State()
	s.mu.Lock()
	s.state.StreamState = state
	s.mu.Unlock()
}

// State returns a copy of the session state.
func (s *DetailSession) State() DetailState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Close tears down the poll loop and the stream. Safe to call more
// than once.
func (s *DetailSession) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		if s.stream != nil {
			s.stream.Close()
		}
	})
}
