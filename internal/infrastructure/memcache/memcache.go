// Package memcache provides the in-process TTL memoizer fronting upstream
// reads. One Store is constructed per process and injected into the catalog
// service; it is never a package-level singleton.
package memcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/afishaclub/afisha/internal/core/ports"
)

// DefaultTTL is how long a memoized value stays fresh.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value    any
	storedAt time.Time
}

// Store memoizes fetch results per key for a fixed TTL. Entries are
// overwritten in place on refresh and never evicted: keys are low-cardinality
// (one per distinct query actually issued), so unbounded growth is accepted.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source; used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store. Non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrFetch implements ports.Memoizer. The fetch runs outside the lock, so
// concurrent misses for one key may fetch twice; last write wins.
func (s *Store) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && s.now().Sub(e.storedAt) < s.ttl {
		s.mu.Unlock()
		return e.value, nil
	}
	s.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil {
		// No negative caching: a failed fetch leaves the entry untouched.
		return nil, err
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, storedAt: s.now()}
	s.mu.Unlock()
	return value, nil
}

// Len reports the number of cached keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// GetOrFetch is the typed wrapper around Memoizer.GetOrFetch.
func GetOrFetch[T any](ctx context.Context, m ports.Memoizer, key string, fetch func(context.Context) (T, error)) (T, error) {
	v, err := m.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected cached type for key %q", key)
	}
	return typed, nil
}
