package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cointrack-api/internal/cli"
	"cointrack-api/internal/config"
	"cointrack-api/internal/svc"
	"cointrack-api/pkg/tracker"
)

const (
	marketInterval  = 2 * time.Minute // listing and stats warm interval
	bookInterval    = 30 * time.Second
	apiTimeout      = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// warmedCoins are the coins whose order books stay warm between client
// visits.
var warmedCoins = []string{"bitcoin", "ethereum", "solana"}

func main() {
	configPath := flag.String("f", "etc/cointrack.yaml", "the config file")
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting cache warmer...")

	appCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[main] Failed to load app config: %v", err)
	}

	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}
	log.Printf("  - Warmed Coins: %v", warmedCoins)
	log.Printf("  - Warm Intervals: market=%s, book=%s", marketInterval, bookInterval)

	serviceCtx := svc.NewServiceContext(*appCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		runMarketWarmer(ctx, serviceCtx)
	}()

	sessions := openBookSessions(ctx, serviceCtx)

	log.Println("[main] Cache warmer started. Press Ctrl+C to stop.")

	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping tasks...")

	for _, session := range sessions {
		session.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[main] All tasks stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("[main] Shutdown timeout exceeded, forcing exit")
	}

	log.Println("[main] Cache warmer stopped")
}

// runMarketWarmer keeps the listing and stats entries fresh so the API
// can serve cache on a rate-limited upstream.
func runMarketWarmer(ctx context.Context, serviceCtx *svc.ServiceContext) {
	ticker := time.NewTicker(marketInterval)
	defer ticker.Stop()

	warmMarket(ctx, serviceCtx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			warmMarket(ctx, serviceCtx)
		}
	}
}

func warmMarket(ctx context.Context, serviceCtx *svc.ServiceContext) {
	callCtx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	vs := serviceCtx.Prefs.Currency(callCtx).Lower()
	if coins, cached, err := serviceCtx.Markets.ListCoins(callCtx, vs); err != nil {
		log.Printf("[market] Listing warm failed: %v", err)
	} else {
		log.Printf("[market] Listing warm: %d coins (cached=%v)", len(coins), cached)
	}
	if _, cached, err := serviceCtx.Markets.Stats(callCtx, vs); err != nil {
		log.Printf("[market] Stats warm failed: %v", err)
	} else {
		log.Printf("[market] Stats warm ok (cached=%v)", cached)
	}
}

// openBookSessions opens one detail session per warmed coin. Each
// session loads the detail, history, and book entries once, then keeps
// the book fresh: stream pushes land in the shared cache the API
// serves, and the interval poll covers a dead stream.
func openBookSessions(ctx context.Context, serviceCtx *svc.ServiceContext) []*tracker.DetailSession {
	vs := serviceCtx.Prefs.Currency(ctx).Lower()

	sessions := make([]*tracker.DetailSession, 0, len(warmedCoins))
	for _, id := range warmedCoins {
		session := tracker.NewDetailSession(id, vs, serviceCtx.Markets, serviceCtx.Books,
			tracker.WithBookPollInterval(bookInterval),
			tracker.WithListing(serviceCtx.Tracker))
		session.Open(ctx)
		sessions = append(sessions, session)

		state := session.State()
		log.Printf("[book] Session open for %s: stream %s, %d bids / %d asks",
			id, state.StreamState, len(state.Book.Bids), len(state.Book.Asks))
	}
	return sessions
}
