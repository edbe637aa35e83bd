package prefs

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"cointrack-api/internal/config"
	"cointrack-api/pkg/currency"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewManager(redis.New(mr.Addr()), config.PrefsConf{Theme: "dark", Currency: "USD"})
}

func TestThemeRoundTrip(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	require.Equal(t, ThemeDark, mgr.Theme(ctx))

	require.NoError(t, mgr.SetTheme(ctx, "Light"))
	require.Equal(t, ThemeLight, mgr.Theme(ctx))
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	mgr := newTestManager(t)
	require.Error(t, mgr.SetTheme(context.Background(), "neon"))
}

func TestCurrencyRoundTrip(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	require.Equal(t, currency.USD, mgr.Currency(ctx))

	code, err := mgr.SetCurrency(ctx, "eur")
	require.NoError(t, err)
	require.Equal(t, currency.EUR, code)
	require.Equal(t, currency.EUR, mgr.Currency(ctx))
}

func TestSetCurrencyRejectsUnsupported(t *testing.T) {
	mgr := newTestManager(t)
	_, err := mgr.SetCurrency(context.Background(), "chf")
	require.Error(t, err)
}

func TestReadsDegradeWithoutStore(t *testing.T) {
	mgr := NewManager(nil, config.PrefsConf{})
	ctx := context.Background()

	require.Equal(t, ThemeDark, mgr.Theme(ctx))
	require.Equal(t, currency.USD, mgr.Currency(ctx))

	// Writes are user actions and must fail loudly.
	require.Error(t, mgr.SetTheme(ctx, ThemeLight))
	_, err := mgr.SetCurrency(ctx, "eur")
	require.Error(t, err)
}
