package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/pkg/currency"
	"cointrack-api/pkg/market"
)

const defaultRefreshInterval = 60 * time.Second

// MarketSource supplies the two listing feeds the tracker refreshes.
// The cached flag reports a stale result served after a rate limit.
type MarketSource interface {
	ListCoins(ctx context.Context, currency string) ([]market.CoinSnapshot, bool, error)
	Stats(ctx context.Context, currency string) (*market.MarketSnapshot, bool, error)
}

// State is the tracker's view of the market, as exposed to consumers.
// ErrMsg is set only when a refresh produced neither live nor cached
// data for both feeds; UsingCached is set when either feed was served
// from cache.
type State struct {
	Coins       []market.CoinSnapshot  `json:"coins"`
	Stats       *market.MarketSnapshot `json:"stats"`
	Currency    string                 `json:"currency"`
	Loading     bool                   `json:"loading"`
	ErrMsg      string                 `json:"error,omitempty"`
	UsingCached bool                   `json:"using_cached_data"`
	RefreshedAt time.Time              `json:"refreshed_at"`
}

// Tracker owns the in-memory market state and refreshes it on a fixed
// interval, immediately on start, and immediately on currency change.
type Tracker struct {
	source   MarketSource
	interval time.Duration

	mu    sync.RWMutex
	state State

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New constructs a tracker. A non-positive interval falls back to 60s.
func New(source MarketSource, activeCurrency currency.Code, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if activeCurrency == "" {
		activeCurrency = currency.USD
	}
	return &Tracker{
		source:   source,
		interval: interval,
		state:    State{Currency: activeCurrency.Lower(), Loading: true},
		stopCh:   make(chan struct{}),
	}
}

// Start runs the first refresh and launches the interval loop. The loop
// runs until Stop.
func (t *Tracker) Start(ctx context.Context) {
	t.Refresh(ctx)
	go t.loop()
}

func (t *Tracker) loop() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.Refresh(context.Background())
		}
	}
}

// Stop tears the interval loop down. Safe to call more than once.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
	})
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Coin looks a coin up in the current listing.
func (t *Tracker) Coin(id string) (market.CoinSnapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, coin := range t.state.Coins {
		if coin.ID == id {
			return coin, true
		}
	}
	return market.CoinSnapshot{}, false
}

// SetCurrency switches the active denomination and refreshes
// immediately. Invalid codes are rejected without touching state.
func (t *Tracker) SetCurrency(ctx context.Context, code string) error {
	parsed, err := currency.Parse(code)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.state.Currency = parsed.Lower()
	t.mu.Unlock()
	t.Refresh(ctx)
	return nil
}

// Refresh runs the two listing calls concurrently and independently: a
// failure in one never blocks or fails the other. Results are applied
// as they arrived even if the active currency changed mid-flight; the
// next refresh overwrites them.
func (t *Tracker) Refresh(ctx context.Context) {
	t.mu.Lock()
	t.state.Loading = true
	active := t.state.Currency
	t.mu.Unlock()

	var (
		coins       []market.CoinSnapshot
		coinsCached bool
		coinsErr    error

		stats       *market.MarketSnapshot
		statsCached bool
		statsErr    error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		coins, coinsCached, coinsErr = t.source.ListCoins(ctx, active)
		if coinsErr != nil {
			logx.WithContext(ctx).Errorf("tracker: refresh listing: %v", coinsErr)
		}
	}()
	go func() {
		defer wg.Done()
		stats, statsCached, statsErr = t.source.Stats(ctx, active)
		if statsErr != nil {
			logx.WithContext(ctx).Errorf("tracker: refresh stats: %v", statsErr)
		}
	}()
	wg.Wait()

	t.mu.Lock()
	defer t.mu.Unlock()
	if coinsErr == nil {
		t.state.Coins = coins
	}
	if statsErr == nil {
		t.state.Stats = stats
	}
	if coinsErr != nil && statsErr != nil {
		t.state.ErrMsg = "failed to fetch cryptocurrency data"
	} else {
		t.state.ErrMsg = ""
	}
	t.state.UsingCached = coinsCached || statsCached
	t.state.Loading = false
	t.state.RefreshedAt = time.Now()
}
