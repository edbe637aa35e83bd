package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cointrack-api/pkg/currency"
	"cointrack-api/pkg/market"
	"cointrack-api/pkg/orderbook"
)

type fakeDetail struct {
	mu      sync.Mutex
	coin    *market.CoinSnapshot
	cached  bool
	err     error
	history *market.PriceHistory

	detailCalls int
}

func (f *fakeDetail) Detail(ctx context.Context, id, currency string) (*market.CoinSnapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls++
	return f.coin, f.cached, f.err
}

func (f *fakeDetail) History(ctx context.Context, id, currency string) *market.PriceHistory {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.history != nil {
		return f.history
	}
	return market.EmptyHistory(currency)
}

type fakeBooks struct {
	mu     sync.Mutex
	book   *orderbook.Book
	stored map[string]*orderbook.Book
	wsURL  string
}

func (f *fakeBooks) OrderBook(ctx context.Context, id string) *orderbook.Book {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.book != nil {
		return f.book
	}
	return orderbook.EmptyBook()
}

func (f *fakeBooks) StoreBook(ctx context.Context, id string, book *orderbook.Book) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored == nil {
		f.stored = make(map[string]*orderbook.Book)
	}
	f.stored[id] = book
}

func (f *fakeBooks) ResolveSymbol(ctx context.Context, id string) string { return "BTC" }

func (f *fakeBooks) StreamURL() string {
	if f.wsURL != "" {
		return f.wsURL
	}
	// Unroutable: the stream lands in Failed and the poll takes over.
	return "ws://127.0.0.1:1/ws"
}

func TestSessionLoadsFromListingFirst(t *testing.T) {
	source := &fakeMarket{coins: testCoins()}
	trk := New(source, currency.USD, time.Hour)
	trk.Refresh(context.Background())

	details := &fakeDetail{}
	books := &fakeBooks{book: &orderbook.Book{
		Bids: []orderbook.Entry{{Price: 60000, Amount: 1}},
		Asks: []orderbook.Entry{},
	}}

	session := NewDetailSession("bitcoin", "usd", details, books, WithListing(trk))
	session.Open(context.Background())
	defer session.Close()

	state := session.State()
	require.NotNil(t, state.Coin)
	require.Equal(t, "bitcoin", state.Coin.ID)
	require.NotNil(t, state.History)
	require.Len(t, state.Book.Bids, 1)
	require.Empty(t, state.ErrMsg)

	// The listing satisfied the lookup; no detail call was spent.
	details.mu.Lock()
	require.Zero(t, details.detailCalls)
	details.mu.Unlock()
}

func TestSessionFallsBackToDetailEndpoint(t *testing.T) {
	details := &fakeDetail{coin: &market.CoinSnapshot{ID: "dogecoin", Symbol: "doge"}, cached: true}
	books := &fakeBooks{}

	session := NewDetailSession("dogecoin", "usd", details, books)
	session.Open(context.Background())
	defer session.Close()

	state := session.State()
	require.NotNil(t, state.Coin)
	require.Equal(t, "dogecoin", state.Coin.ID)
	require.True(t, state.UsingCached)
}

func TestSessionDetailFailureStillRendersHistoryAndBook(t *testing.T) {
	details := &fakeDetail{err: errors.New("down")}
	books := &fakeBooks{}

	session := NewDetailSession("bitcoin", "usd", details, books)
	session.Open(context.Background())
	defer session.Close()

	state := session.State()
	require.Nil(t, state.Coin)
	require.Equal(t, "failed to fetch cryptocurrency details", state.ErrMsg)
	require.NotNil(t, state.History)
	require.NotNil(t, state.Book)
}

func TestSessionPollRefreshesBookWhileStreamDown(t *testing.T) {
	details := &fakeDetail{}
	books := &fakeBooks{}

	session := NewDetailSession("bitcoin", "usd", details, books,
		WithBookPollInterval(10*time.Millisecond))
	session.Open(context.Background())
	defer session.Close()

	require.Equal(t, orderbook.StreamFailed, session.State().StreamState)

	books.mu.Lock()
	books.book = &orderbook.Book{
		Bids: []orderbook.Entry{{Price: 61000, Amount: 2}},
		Asks: []orderbook.Entry{},
	}
	books.mu.Unlock()

	require.Eventually(t, func() bool {
		state := session.State()
		return len(state.Book.Bids) == 1 && state.Book.Bids[0].Price == 61000
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionApplyBookPersistsPush(t *testing.T) {
	details := &fakeDetail{}
	books := &fakeBooks{}

	session := NewDetailSession("bitcoin", "usd", details, books)
	pushed := &orderbook.Book{
		Bids: []orderbook.Entry{{Price: 62000, Amount: 0.4}},
		Asks: []orderbook.Entry{},
	}
	session.applyBook(pushed)

	require.Equal(t, pushed, session.State().Book)
	books.mu.Lock()
	require.Equal(t, pushed, books.stored["bitcoin"])
	books.mu.Unlock()
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	session := NewDetailSession("bitcoin", "usd", &fakeDetail{}, &fakeBooks{})
	session.Open(context.Background())
	session.Close()
	session.Close()
}
