package orderbook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"cointrack-api/internal/cache"
	"cointrack-api/pkg/cachestore"
	"cointrack-api/pkg/coingecko"
)

var bookTestTTL = cache.TTLSet{
	CoinList:  5 * time.Minute,
	Stats:     5 * time.Minute,
	Detail:    10 * time.Minute,
	History:   15 * time.Minute,
	OrderBook: 30 * time.Second,
	SymbolMap: 24 * time.Hour,
}

const l2BookBody = `{
	"coin":"BTC","time":1730000000000,
	"levels":[
		[{"px":"60000","sz":"1.5","n":2},{"px":"59999","sz":"3","n":1}],
		[{"px":"60001","sz":"0.7","n":1}]
	]}`

// newBookFixture wires a Service against scriptable venue and listing
// doubles. failVenue flips the venue to hard errors.
func newBookFixture(t *testing.T, failVenue *atomic.Bool) (*Service, *cachestore.Store) {
	t.Helper()

	venue := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failVenue != nil && failVenue.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(l2BookBody))
	}))
	t.Cleanup(venue.Close)

	listing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"bitcoin","symbol":"btc"}]`))
	}))
	t.Cleanup(listing.Close)

	mr := miniredis.RunT(t)
	store := cachestore.New(redis.New(mr.Addr()))
	cg := coingecko.NewClient(coingecko.WithBaseURL(listing.URL))
	symbols := NewSymbolMap(cg, store, bookTestTTL.SymbolMap)
	client := NewClient(WithBaseURL(venue.URL))
	return NewService(client, symbols, store, bookTestTTL), store
}

func TestOrderBookFetchAndNormalize(t *testing.T) {
	svc, _ := newBookFixture(t, nil)

	book := svc.OrderBook(context.Background(), "bitcoin")
	require.Len(t, book.Bids, 2)
	require.Len(t, book.Asks, 1)
	require.InDelta(t, 60000, book.Bids[0].Price, 0.001)
	require.InDelta(t, 1.5, book.Bids[0].Amount, 0.001)
	require.InDelta(t, 60001, book.Asks[0].Price, 0.001)
}

func TestOrderBookServedFromCache(t *testing.T) {
	var fail atomic.Bool
	svc, _ := newBookFixture(t, &fail)
	ctx := context.Background()

	first := svc.OrderBook(ctx, "bitcoin")
	require.NotEmpty(t, first.Bids)

	// Venue goes down; the cached book still serves.
	fail.Store(true)
	second := svc.OrderBook(ctx, "bitcoin")
	require.Equal(t, first, second)
}

func TestOrderBookEmptyShapeWhenAllElseFails(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	svc, _ := newBookFixture(t, &fail)

	book := svc.OrderBook(context.Background(), "bitcoin")
	require.NotNil(t, book)
	require.NotNil(t, book.Bids)
	require.NotNil(t, book.Asks)
	require.Empty(t, book.Bids)
	require.Empty(t, book.Asks)
}

func TestStoreBookFeedsSubsequentReads(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	svc, _ := newBookFixture(t, &fail)
	ctx := context.Background()

	pushed := &Book{
		Bids: []Entry{{Price: 61000, Amount: 1}},
		Asks: []Entry{{Price: 61001, Amount: 2}},
	}
	svc.StoreBook(ctx, "bitcoin", pushed)

	got := svc.OrderBook(ctx, "bitcoin")
	require.Equal(t, pushed, got)
}
