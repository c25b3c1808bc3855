package ports

import (
	"context"

	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/internal/core/domain/event"
)

// EventsClient is the upstream events API boundary.
type EventsClient interface {
	// Locations fetches the full city directory, ordered by name.
	Locations(ctx context.Context) ([]city.City, error)
	// Events fetches one page of the events listing.
	Events(ctx context.Context, params event.Params) (*event.Response, error)
	// Event fetches a single event by id. Returns ErrNotFound for upstream 404.
	Event(ctx context.Context, id int) (*event.Event, error)
}

// CatalogService is the memoized read layer over the upstream API.
type CatalogService interface {
	// FetchLocations returns the city directory. The error is surfaced so the
	// caller decides between failing (API proxy) and falling back (directory).
	FetchLocations(ctx context.Context) ([]city.City, error)
	// FetchEvents returns one events page, degrading to an empty response
	// when the upstream is unavailable.
	FetchEvents(ctx context.Context, params event.Params) (*event.Response, error)
	// FetchEvent returns a single event, surfacing ErrNotFound and
	// ErrUpstreamUnavailable distinctly.
	FetchEvent(ctx context.Context, id int) (*event.Event, error)
}
