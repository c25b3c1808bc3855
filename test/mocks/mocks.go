package mocks

import (
	"context"
	"fmt"

	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/internal/core/domain/event"
	"github.com/afishaclub/afisha/internal/core/domain/favorites"
)

// EventsClientMock is a lightweight mock for ports.EventsClient
type EventsClientMock struct {
	LocationsFn func(ctx context.Context) ([]city.City, error)
	EventsFn    func(ctx context.Context, params event.Params) (*event.Response, error)
	EventFn     func(ctx context.Context, id int) (*event.Event, error)

	LocationsCalls int
	EventsCalls    int
	EventCalls     int
}

func (m *EventsClientMock) Locations(ctx context.Context) ([]city.City, error) {
	m.LocationsCalls++
	if m.LocationsFn != nil {
		return m.LocationsFn(ctx)
	}
	return nil, fmt.Errorf("no locations")
}

func (m *EventsClientMock) Events(ctx context.Context, params event.Params) (*event.Response, error) {
	m.EventsCalls++
	if m.EventsFn != nil {
		return m.EventsFn(ctx, params)
	}
	return nil, fmt.Errorf("no events")
}

func (m *EventsClientMock) Event(ctx context.Context, id int) (*event.Event, error) {
	m.EventCalls++
	if m.EventFn != nil {
		return m.EventFn(ctx, id)
	}
	return nil, fmt.Errorf("no event")
}

// CatalogServiceMock is a lightweight mock for ports.CatalogService
type CatalogServiceMock struct {
	FetchLocationsFn func(ctx context.Context) ([]city.City, error)
	FetchEventsFn    func(ctx context.Context, params event.Params) (*event.Response, error)
	FetchEventFn     func(ctx context.Context, id int) (*event.Event, error)

	FetchLocationsCalls int
}

func (m *CatalogServiceMock) FetchLocations(ctx context.Context) ([]city.City, error) {
	m.FetchLocationsCalls++
	if m.FetchLocationsFn != nil {
		return m.FetchLocationsFn(ctx)
	}
	return nil, fmt.Errorf("no locations")
}

func (m *CatalogServiceMock) FetchEvents(ctx context.Context, params event.Params) (*event.Response, error) {
	if m.FetchEventsFn != nil {
		return m.FetchEventsFn(ctx, params)
	}
	return event.EmptyResponse(), nil
}

func (m *CatalogServiceMock) FetchEvent(ctx context.Context, id int) (*event.Event, error) {
	if m.FetchEventFn != nil {
		return m.FetchEventFn(ctx, id)
	}
	return nil, fmt.Errorf("no event")
}

// FavoritesRepositoryMock keeps lists in memory and records saves.
type FavoritesRepositoryMock struct {
	LoadFn func(ctx context.Context, visitorID string) (favorites.List, error)
	SaveFn func(ctx context.Context, visitorID string, list favorites.List) error

	Saved     map[string]favorites.List
	SaveCalls int
}

func (m *FavoritesRepositoryMock) Load(ctx context.Context, visitorID string) (favorites.List, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx, visitorID)
	}
	if m.Saved != nil {
		if list, ok := m.Saved[visitorID]; ok {
			return list, nil
		}
	}
	return favorites.List{}, nil
}

func (m *FavoritesRepositoryMock) Save(ctx context.Context, visitorID string, list favorites.List) error {
	m.SaveCalls++
	if m.SaveFn != nil {
		return m.SaveFn(ctx, visitorID, list)
	}
	if m.Saved == nil {
		m.Saved = make(map[string]favorites.List)
	}
	m.Saved[visitorID] = list
	return nil
}
