package orderbook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestL2BookRequestShape(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/info", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{
			"coin":"BTC","time":1730000000000,
			"levels":[
				[{"px":"60000.5","sz":"1.25","n":3},{"px":"60000.0","sz":"0.5","n":1}],
				[{"px":"60001.0","sz":"2.0","n":4}]
			]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	book, err := client.L2Book(context.Background(), "BTC")
	require.NoError(t, err)

	var req InfoRequest
	require.NoError(t, json.Unmarshal(gotBody, &req))
	require.Equal(t, "l2Book", req.Type)
	require.Equal(t, "BTC", req.Coin)

	require.Len(t, book.Levels, 2)
	require.InDelta(t, 60000.5, book.Levels[0][0].Px, 0.001)
	require.InDelta(t, 1.25, book.Levels[0][0].Sz, 0.001)
	require.Equal(t, 3, book.Levels[0][0].N)
}

func TestL2BookRejectsMalformedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"coin":"BTC","levels":[[]]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.L2Book(context.Background(), "BTC")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected l2Book shape")
}

func TestWSURLDerivation(t *testing.T) {
	require.Equal(t, "wss://api.hyperliquid.xyz/ws", NewClient().WSURL())
	require.Equal(t, "wss://example.com/ws", NewClient(WithBaseURL("https://example.com/")).WSURL())
}
