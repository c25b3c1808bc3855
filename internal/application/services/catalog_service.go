package services

import (
	"context"

	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/internal/core/domain/event"
	"github.com/afishaclub/afisha/internal/core/ports"
	"github.com/afishaclub/afisha/internal/infrastructure/memcache"
	"github.com/sirupsen/logrus"
)

const locationsCacheKey = "locations"

// CatalogService is the memoized read layer over the upstream events API.
// All reads funnel through the injected memoizer; the service itself holds
// no state beyond its collaborators.
type CatalogService struct {
	client ports.EventsClient
	cache  ports.Memoizer
	logger *logrus.Logger
}

func NewCatalogService(client ports.EventsClient, cache ports.Memoizer, logger *logrus.Logger) ports.CatalogService {
	return &CatalogService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// FetchLocations returns the city directory under the fixed "locations" key.
// Upstream failures are surfaced so the caller picks its own recovery: the
// API proxy answers 500, the directory store substitutes the fallback list.
func (s *CatalogService) FetchLocations(ctx context.Context) ([]city.City, error) {
	return memcache.GetOrFetch(ctx, s.cache, locationsCacheKey, func(ctx context.Context) ([]city.City, error) {
		cities, err := s.client.Locations(ctx)
		if err != nil {
			return nil, err
		}
		if cities == nil {
			cities = []city.City{}
		}
		return cities, nil
	})
}

// FetchEvents returns one events page, keyed by the serialized parameter set.
// An unavailable upstream degrades to an empty response; the degraded value
// is not cached, so the next call retries.
func (s *CatalogService) FetchEvents(ctx context.Context, params event.Params) (*event.Response, error) {
	resp, err := memcache.GetOrFetch(ctx, s.cache, params.CacheKey(), func(ctx context.Context) (*event.Response, error) {
		return s.client.Events(ctx, params)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"location": params.Location, "page": params.Page}).WithError(err).Warn("events fetch degraded to empty page")
		}
		return event.EmptyResponse(), nil
	}
	return resp, nil
}

// FetchEvent returns a single event. Unlike the list paths it re-signals
// ErrNotFound and ErrUpstreamUnavailable distinctly, so the boundary can
// render 404 versus a generic failure.
func (s *CatalogService) FetchEvent(ctx context.Context, id int) (*event.Event, error) {
	return memcache.GetOrFetch(ctx, s.cache, event.EventCacheKey(id), func(ctx context.Context) (*event.Event, error) {
		return s.client.Event(ctx, id)
	})
}
