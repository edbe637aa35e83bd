package cachestore

import (
	"context"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// maxRetention bounds how long an entry survives server-side. Freshness
// is judged at load time against the caller's TTL, so retention only
// needs to outlast the longest TTL in use (the 24h symbol map).
const maxRetention = 48 * time.Hour

// envelope wraps every cached payload with its capture time.
type envelope struct {
	Payload    []byte `msgpack:"p"`
	CapturedAt int64  `msgpack:"t"` // unix milliseconds
}

// Store is a timestamped key-value cache over Redis.
//
// An entry is valid iff now - captured_at <= ttl, checked on load; a
// single key may be read with different TTLs by different callers.
// Save failures are logged and swallowed: a failed cache write must
// never fail the fetch that produced the payload. Load failures of any
// kind are ordinary misses.
type Store struct {
	rdb *redis.Redis
	now func() time.Time
}

// New constructs a Store over the supplied Redis client.
func New(rdb *redis.Redis) *Store {
	return &Store{rdb: rdb, now: time.Now}
}

// WithClock overrides the store's clock. Test hook.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

// Save durably stores payload under key, stamped with the current time.
func (s *Store) Save(ctx context.Context, key string, payload interface{}) {
	if s.rdb == nil {
		return
	}
	raw, err := msgpack.Marshal(payload)
	if err != nil {
		logx.WithContext(ctx).Errorf("cachestore: encode %s: %v", key, err)
		return
	}
	env := envelope{Payload: raw, CapturedAt: s.now().UnixMilli()}
	blob, err := msgpack.Marshal(&env)
	if err != nil {
		logx.WithContext(ctx).Errorf("cachestore: encode envelope %s: %v", key, err)
		return
	}
	if err := s.rdb.SetexCtx(ctx, key, string(blob), int(maxRetention/time.Second)); err != nil {
		logx.WithContext(ctx).Errorf("cachestore: save %s: %v", key, err)
	}
}

// Load decodes the entry under key into out when the entry exists and
// is no older than ttl. It reports whether out was populated; expiry
// and read errors are both silent misses.
func (s *Store) Load(ctx context.Context, key string, ttl time.Duration, out interface{}) bool {
	if s.rdb == nil {
		return false
	}
	blob, err := s.rdb.GetCtx(ctx, key)
	if err != nil {
		logx.WithContext(ctx).Errorf("cachestore: load %s: %v", key, err)
		return false
	}
	if blob == "" {
		return false
	}

	var env envelope
	if err := msgpack.Unmarshal([]byte(blob), &env); err != nil {
		logx.WithContext(ctx).Errorf("cachestore: decode envelope %s: %v", key, err)
		return false
	}
	capturedAt := time.UnixMilli(env.CapturedAt)
	if s.now().Sub(capturedAt) > ttl {
		return false
	}
	if err := msgpack.Unmarshal(env.Payload, out); err != nil {
		logx.WithContext(ctx).Errorf("cachestore: decode %s: %v", key, err)
		return false
	}
	return true
}
