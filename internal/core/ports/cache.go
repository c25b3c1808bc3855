package ports

import "context"

// Memoizer is a per-key, time-boxed get-or-fetch cache sitting in front of
// network calls. A hit within the TTL returns the stored value without
// invoking fetch; otherwise fetch runs and its result overwrites the entry.
// Fetch errors propagate and leave the cache unchanged. Concurrent calls for
// one key are not deduplicated: duplicate upstream calls under race are an
// accepted simplification.
type Memoizer interface {
	GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error)
}
