package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/afishaclub/afisha/internal/core/domain/favorites"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const favoritesKeyPrefix = "kudago-favorites"

// FavoritesRedisRepository stores one favorites list per visitor as a single
// JSON blob. Every save rewrites the whole list: last full write wins.
type FavoritesRedisRepository struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *logrus.Logger
}

// NewFavoritesRedisRepository creates a new Redis favorites repository. The
// TTL should match the visitor cookie lifetime.
func NewFavoritesRedisRepository(client redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *FavoritesRedisRepository {
	return &FavoritesRedisRepository{client: client, ttl: ttl, logger: logger}
}

func favoritesKey(visitorID string) string {
	return fmt.Sprintf("%s:%s", favoritesKeyPrefix, visitorID)
}

// Load reads the visitor's persisted list. A missing key yields an empty
// list; a corrupt payload is discarded with a warning, never an error.
func (r *FavoritesRedisRepository) Load(ctx context.Context, visitorID string) (favorites.List, error) {
	data, err := r.client.Get(ctx, favoritesKey(visitorID)).Bytes()
	if err == redis.Nil {
		return favorites.List{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites from Redis: %w", err)
	}
	list, err := favorites.ParseList(data)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"visitor": visitorID}).WithError(err).Warn("discarding corrupt favorites payload")
		}
		return favorites.List{}, nil
	}
	return list, nil
}

// Save persists the full list for the visitor.
func (r *FavoritesRedisRepository) Save(ctx context.Context, visitorID string, list favorites.List) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	if err := r.client.Set(ctx, favoritesKey(visitorID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store favorites in Redis: %w", err)
	}
	return nil
}
