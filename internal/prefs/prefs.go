package prefs

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"cointrack-api/internal/cache"
	"cointrack-api/internal/config"
	"cointrack-api/pkg/currency"
)

// Themes the client can render.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Manager persists the user's theme and active currency under the
// preference keys. Reads degrade to the configured defaults; writes
// are user-visible operations and propagate their errors.
type Manager struct {
	rdb      *redis.Redis
	defaults config.PrefsConf
}

// NewManager constructs a preference manager.
func NewManager(rdb *redis.Redis, defaults config.PrefsConf) *Manager {
	if defaults.Theme == "" {
		defaults.Theme = ThemeDark
	}
	if defaults.Currency == "" {
		defaults.Currency = string(currency.USD)
	}
	return &Manager{rdb: rdb, defaults: defaults}
}

// Theme returns the stored theme, or the default when unset or
// unreadable.
func (m *Manager) Theme(ctx context.Context) string {
	if m.rdb == nil {
		return m.defaults.Theme
	}
	stored, err := m.rdb.GetCtx(ctx, cache.ThemePrefKey())
	if err != nil {
		logx.WithContext(ctx).Errorf("prefs: read theme: %v", err)
		return m.defaults.Theme
	}
	if !validTheme(stored) {
		return m.defaults.Theme
	}
	return stored
}

// SetTheme validates and persists the theme.
func (m *Manager) SetTheme(ctx context.Context, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !validTheme(theme) {
		return fmt.Errorf("prefs: unsupported theme %q", theme)
	}
	if m.rdb == nil {
		return fmt.Errorf("prefs: no preference store configured")
	}
	return m.rdb.SetCtx(ctx, cache.ThemePrefKey(), theme)
}

// Currency returns the stored active currency, or the default when
// unset or unreadable.
func (m *Manager) Currency(ctx context.Context) currency.Code {
	fallback, parseErr := currency.Parse(m.defaults.Currency)
	if parseErr != nil {
		fallback = currency.USD
	}
	if m.rdb == nil {
		return fallback
	}
	stored, err := m.rdb.GetCtx(ctx, cache.CurrencyPrefKey())
	if err != nil {
		logx.WithContext(ctx).Errorf("prefs: read currency: %v", err)
		return fallback
	}
	code, err := currency.Parse(stored)
	if err != nil {
		return fallback
	}
	return code
}

// SetCurrency validates and persists the active currency.
func (m *Manager) SetCurrency(ctx context.Context, code string) (currency.Code, error) {
	parsed, err := currency.Parse(code)
	if err != nil {
		return "", err
	}
	if m.rdb == nil {
		return "", fmt.Errorf("prefs: no preference store configured")
	}
	if err := m.rdb.SetCtx(ctx, cache.CurrencyPrefKey(), string(parsed)); err != nil {
		return "", err
	}
	return parsed, nil
}

func validTheme(theme string) bool {
	switch theme {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}
