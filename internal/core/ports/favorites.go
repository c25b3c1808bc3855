package ports

import (
	"context"

	"github.com/afishaclub/afisha/internal/core/domain/favorites"
)

// FavoritesRepository persists one favorites list per visitor. Loads are
// tolerant: a corrupt payload decodes to an empty list, never an error.
type FavoritesRepository interface {
	Load(ctx context.Context, visitorID string) (favorites.List, error)
	Save(ctx context.Context, visitorID string, list favorites.List) error
}

// FavoritesService manages a visitor's deduplicated favorites list.
type FavoritesService interface {
	List(ctx context.Context, visitorID string) (favorites.List, error)
	Add(ctx context.Context, visitorID string, eventID int, citySlug string) error
	Remove(ctx context.Context, visitorID string, eventID int) error
	Has(ctx context.Context, visitorID string, eventID int) (bool, error)
	// Toggle removes the event when present, adds it otherwise. It reports
	// whether the event is favorited after the call.
	Toggle(ctx context.Context, visitorID string, eventID int, citySlug string) (bool, error)
	Count(ctx context.Context, visitorID string) (int, error)
}
