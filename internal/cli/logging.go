package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"cointrack-api/internal/config"
	"cointrack-api/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Redis: %s", presence(strings.TrimSpace(cfg.Redis.Host) != "")),
		fmt.Sprintf("TTL (list/stats/detail): %ds / %ds / %ds", cfg.TTL.CoinList, cfg.TTL.Stats, cfg.TTL.Detail),
		fmt.Sprintf("TTL (history/book/symbols): %ds / %ds / %ds", cfg.TTL.History, cfg.TTL.OrderBook, cfg.TTL.SymbolMap),
		fmt.Sprintf("Refresh interval: %ds (book poll %ds)", cfg.Refresh.Interval, cfg.Refresh.BookInterval),
		fmt.Sprintf("Default preferences: %s / %s", cfg.Prefs.Theme, cfg.Prefs.Currency),
		sectionLine("CoinGecko config", cfg.CoinGecko),
		sectionLine("Hyperliquid config", cfg.Hyperliquid),
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: not configured", name)
	}
}
