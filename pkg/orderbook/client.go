package orderbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.hyperliquid.xyz"
	defaultHTTPTimeout = 10 * time.Second
)

// Client wraps access to the Hyperliquid info endpoint. The endpoint is
// a single POST route dispatched on the request body's type field.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a new Client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimSuffix(u, "/")
		}
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

// NewClient constructs a Hyperliquid info client.
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

// WSURL derives the streaming endpoint from the configured base URL.
func (c *Client) WSURL() string {
	u := strings.TrimPrefix(c.baseURL, "https://")
	u = strings.TrimPrefix(u, "http://")
	return "wss://" + u + "/ws"
}

// doInfo posts an InfoRequest and decodes the response into result.
func (c *Client) doInfo(ctx context.Context, req InfoRequest, result interface{}) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("hyperliquid: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/info", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("hyperliquid: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("hyperliquid: %s: %w", req.Type, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("hyperliquid: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("hyperliquid: http status %d: %s", resp.StatusCode, string(body))
	}
	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("hyperliquid: decode %s: %w", req.Type, err)
		}
	}
	return nil
}

// L2Book fetches the level-2 order book for a venue symbol.
func (c *Client) L2Book(ctx context.Context, symbol string) (*L2BookResponse, error) {
	var book L2BookResponse
	if err := c.doInfo(ctx, InfoRequest{Type: "l2Book", Coin: symbol}, &book); err != nil {
		return nil, err
	}
	if len(book.Levels) != 2 {
		return nil, fmt.Errorf("hyperliquid: unexpected l2Book shape: %d sides", len(book.Levels))
	}
	return &book, nil
}
