package ports

import "errors"

var (
	// ErrNotFound is returned by the single-event read path when the upstream
	// reports the id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable covers network failures and 5xx responses from
	// the upstream API. List read paths convert it to empty or fallback
	// values; only the single-event path lets it reach a handler.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
