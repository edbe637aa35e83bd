package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL     = "https://api.coingecko.com/api/v3"
	defaultHTTPTimeout = 10 * time.Second

	// The demo-tier key travels in a custom header, not a query param.
	apiKeyHeader = "x-cg-demo-api-key"
)

// Client wraps access to the CoinGecko REST API.
//
// Calls are deliberately not retried here: the periodic refresh loop is
// the retry mechanism, and the caching layer above absorbs failures.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a new Client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithAPIKey sets the demo API key sent on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient constructs a CoinGecko API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// get issues a GET request against path and decodes the response into result.
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("coingecko: build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("coingecko: %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("coingecko: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("coingecko: decode %s: %w", path, err)
		}
	}
	return nil
}

// MarketsParams carries query parameters for the /coins/markets listing.
type MarketsParams struct {
	Currency    string // vs_currency, lowercased by the caller
	Order       string // e.g. "market_cap_desc"
	PerPage     int
	Page        int
	Sparkline   bool
	PriceChange string // comma-separated windows, e.g. "1h,24h,7d"
}

// ListMarkets fetches a page of coins ordered per params.
func (c *Client) ListMarkets(ctx context.Context, p MarketsParams) ([]MarketCoin, error) {
	query := url.Values{}
	query.Set("vs_currency", p.Currency)
	if p.Order != "" {
		query.Set("order", p.Order)
	}
	if p.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	query.Set("sparkline", strconv.FormatBool(p.Sparkline))
	if p.PriceChange != "" {
		query.Set("price_change_percentage", p.PriceChange)
	}

	var coins []MarketCoin
	if err := c.get(ctx, "/coins/markets", query, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// Global fetches the aggregate market statistics object.
func (c *Client) Global(ctx context.Context) (*GlobalData, error) {
	var envelope globalEnvelope
	if err := c.get(ctx, "/global", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Coin fetches full detail for a single coin id.
func (c *Client) Coin(ctx context.Context, id string) (*CoinResponse, error) {
	var coin CoinResponse
	if err := c.get(ctx, "/coins/"+url.PathEscape(id), nil, &coin); err != nil {
		return nil, err
	}
	return &coin, nil
}

// MarketChartRange fetches a ranged price time-series for a coin.
// from and to are unix seconds.
func (c *Client) MarketChartRange(ctx context.Context, id, currency string, from, to int64) (*MarketChart, error) {
	query := url.Values{}
	query.Set("vs_currency", currency)
	query.Set("from", strconv.FormatInt(from, 10))
	query.Set("to", strconv.FormatInt(to, 10))

	var chart MarketChart
	if err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart/range", query, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}

// History fetches a single point-in-time snapshot for a coin.
// date uses CoinGecko's dd-mm-yyyy form.
func (c *Client) History(ctx context.Context, id, date string) (*HistoryResponse, error) {
	query := url.Values{}
	query.Set("date", date)

	var hist HistoryResponse
	if err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/history", query, &hist); err != nil {
		return nil, err
	}
	return &hist, nil
}
