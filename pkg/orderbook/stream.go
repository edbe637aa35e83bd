package orderbook

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zeromicro/go-zero/core/logx"
)

// StreamState tracks the streaming connection lifecycle. There is no
// retry transition: a stream that fails stays Failed for its lifetime,
// and the interval poll is the resilience mechanism.
type StreamState int32

const (
	StreamDisconnected StreamState = iota
	StreamConnecting
	StreamSubscribed
	StreamFailed
)

func (s StreamState) String() string {
	switch s {
	case StreamDisconnected:
		return "disconnected"
	case StreamConnecting:
		return "connecting"
	case StreamSubscribed:
		return "subscribed"
	case StreamFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const streamHandshakeTimeout = 10 * time.Second

// Stream is a single-subscription l2Book WebSocket connection. Each
// well-formed push replaces the consumer's book state via onBook.
type Stream struct {
	url    string
	symbol string
	onBook func(*Book)

	mu    sync.Mutex
	state StreamState
	conn  *websocket.Conn
}

// NewStream prepares a stream for one venue symbol. onBook receives
// every depth-limited push update; it must not block.
func NewStream(url, symbol string, onBook func(*Book)) *Stream {
	return &Stream{
		url:    url,
		symbol: symbol,
		onBook: onBook,
		state:  StreamDisconnected,
	}
}

// Open dials the endpoint, subscribes, and starts the read loop. It is
// a single attempt: on any failure the stream lands in Failed and the
// caller's poll fallback carries on.
func (s *Stream) Open(ctx context.Context) error {
	s.setState(StreamConnecting)

	dialer := websocket.Dialer{HandshakeTimeout: streamHandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		s.setState(StreamFailed)
		return err
	}

	sub := subscribeMessage{
		Method:       "subscribe",
		Subscription: subscription{Type: "l2Book", Coin: s.symbol},
	}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		s.setState(StreamFailed)
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.state = StreamSubscribed
	s.mu.Unlock()

	go s.readLoop(conn)
	return nil
}

func (s *Stream) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			// A close we initiated is a clean disconnect; anything
			// else parks the stream in Failed.
			s.mu.Lock()
			if s.state == StreamSubscribed {
				s.state = StreamFailed
				logx.Errorf("orderbook: stream %s: %v", s.symbol, err)
			}
			s.mu.Unlock()
			return
		}

		var msg streamMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logx.Errorf("orderbook: stream %s: malformed message: %v", s.symbol, err)
			continue
		}
		if msg.Channel != "l2Book" || len(msg.Data.Levels) != 2 {
			continue
		}
		if s.onBook != nil {
			s.onBook(bookFromSides(msg.Data.Levels[0], msg.Data.Levels[1], BookDepth))
		}
	}
}

// Close tears the connection down and marks the stream Disconnected.
// Safe to call in any state, including before Open.
func (s *Stream) Close() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.state = StreamDisconnected
	s.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

// State reports the current connection state.
func (s *Stream) State() StreamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Stream) setState(state StreamState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
