package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"

	"cointrack-api/pkg/coingecko"
	"cointrack-api/pkg/confkit"
	"cointrack-api/pkg/orderbook"
)

// CacheTTL fixes the per-kind cache lifetimes, in seconds.
type CacheTTL struct {
	CoinList  int `json:",default=300"`
	Stats     int `json:",default=300"`
	Detail    int `json:",default=600"`
	History   int `json:",default=900"`
	OrderBook int `json:",default=30"`
	SymbolMap int `json:",default=86400"`
}

// RefreshConf controls the background refresh cadences, in seconds.
type RefreshConf struct {
	Interval     int `json:",default=60"`
	BookInterval int `json:",default=10"`
}

// PrefsConf seeds the user preference defaults.
type PrefsConf struct {
	Theme    string `json:",default=dark"`
	Currency string `json:",default=USD"`
}

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod.
	Env     string          `json:",default=dev"`
	Redis   redis.RedisConf `json:",optional"`
	TTL     CacheTTL        `json:",optional"`
	Refresh RefreshConf     `json:",optional"`
	Prefs   PrefsConf       `json:",optional"`

	CoinGecko   confkit.Section[coingecko.Config] `json:",optional"`
	Hyperliquid confkit.Section[orderbook.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test"
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "dev"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	if err := c.validateTTL(); err != nil {
		return err
	}
	if c.Refresh.Interval <= 0 {
		return errors.New("config: refresh.interval must be positive")
	}
	if c.Refresh.BookInterval <= 0 {
		return errors.New("config: refresh.bookInterval must be positive")
	}
	return nil
}

func (c *Config) validateTTL() error {
	ttls := map[string]int{
		"coinList":  c.TTL.CoinList,
		"stats":     c.TTL.Stats,
		"detail":    c.TTL.Detail,
		"history":   c.TTL.History,
		"orderBook": c.TTL.OrderBook,
		"symbolMap": c.TTL.SymbolMap,
	}
	for name, ttl := range ttls {
		if ttl <= 0 {
			return fmt.Errorf("config: ttl.%s must be positive", name)
		}
	}
	return nil
}

func (c *Config) hydrateSections() error {
	base := c.baseDir

	if err := c.CoinGecko.Hydrate(base, coingecko.LoadConfig); err != nil {
		return fmt.Errorf("load coingecko config: %w", err)
	}
	if err := c.Hyperliquid.Hydrate(base, orderbook.LoadConfig); err != nil {
		return fmt.Errorf("load hyperliquid config: %w", err)
	}
	return nil
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
