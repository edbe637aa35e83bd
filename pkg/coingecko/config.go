package coingecko

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cointrack-api/pkg/confkit"
)

// Config describes the CoinGecko upstream for this service.
type Config struct {
	BaseURL string `yaml:"base_url"`
	// APIKey supports ${VAR} expansion so the key can live in .env.
	APIKey string `yaml:"api_key"`

	HTTPTimeoutRaw string        `yaml:"http_timeout"`
	HTTPTimeout    time.Duration `yaml:"-"`
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open coingecko config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	confkit.LoadDotenvOnce()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read coingecko config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal coingecko config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	c.BaseURL = strings.TrimSpace(os.ExpandEnv(c.BaseURL))
	c.APIKey = strings.TrimSpace(os.ExpandEnv(c.APIKey))
	c.HTTPTimeoutRaw = strings.TrimSpace(os.ExpandEnv(c.HTTPTimeoutRaw))

	if c.HTTPTimeoutRaw != "" {
		d, err := time.ParseDuration(c.HTTPTimeoutRaw)
		if err != nil {
			return fmt.Errorf("coingecko config: invalid http_timeout %q: %w", c.HTTPTimeoutRaw, err)
		}
		if d <= 0 {
			return fmt.Errorf("coingecko config: http_timeout must be positive, got %s", d)
		}
		c.HTTPTimeout = d
	}
	return nil
}

// BuildClient constructs a Client from the configuration.
func (c *Config) BuildClient() *Client {
	opts := []Option{}
	if c.BaseURL != "" {
		opts = append(opts, WithBaseURL(c.BaseURL))
	}
	if c.APIKey != "" {
		opts = append(opts, WithAPIKey(c.APIKey))
	}
	if c.HTTPTimeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: c.HTTPTimeout}))
	}
	return NewClient(opts...)
}
