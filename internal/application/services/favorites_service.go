package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/afishaclub/afisha/internal/core/domain/favorites"
	"github.com/afishaclub/afisha/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// FavoritesService manages per-visitor favorites lists. Each list is
// rehydrated once from the repository on first use, mutated in memory, and
// written back whole after every mutation.
type FavoritesService struct {
	repo   ports.FavoritesRepository
	logger *logrus.Logger

	mu    sync.Mutex
	lists map[string]favorites.List
}

func NewFavoritesService(repo ports.FavoritesRepository, logger *logrus.Logger) ports.FavoritesService {
	return &FavoritesService{
		repo:   repo,
		logger: logger,
		lists:  make(map[string]favorites.List),
	}
}

// hydrate returns the visitor's list, loading it from the repository the
// first time the visitor is seen. Callers must hold s.mu.
func (s *FavoritesService) hydrate(ctx context.Context, visitorID string) (favorites.List, error) {
	if list, ok := s.lists[visitorID]; ok {
		return list, nil
	}
	list, err := s.repo.Load(ctx, visitorID)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate favorites: %w", err)
	}
	if list == nil {
		list = favorites.List{}
	}
	s.lists[visitorID] = list
	return list, nil
}

func (s *FavoritesService) persist(ctx context.Context, visitorID string, list favorites.List) {
	s.lists[visitorID] = list
	// Fire-and-forget: a failed write keeps the in-memory state authoritative
	// until the next successful save.
	if err := s.repo.Save(ctx, visitorID, list); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"visitor": visitorID}).WithError(err).Warn("failed to persist favorites")
	}
}

// List returns the visitor's favorites in insertion order.
func (s *FavoritesService) List(ctx context.Context, visitorID string) (favorites.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrate(ctx, visitorID)
}

// Add appends the event unless it is already favorited in either entry shape.
func (s *FavoritesService) Add(ctx context.Context, visitorID string, eventID int, citySlug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.hydrate(ctx, visitorID)
	if err != nil {
		return err
	}
	list, changed := list.Add(eventID, citySlug)
	if changed {
		s.persist(ctx, visitorID, list)
	}
	return nil
}

// Remove drops the event; a no-op when absent.
func (s *FavoritesService) Remove(ctx context.Context, visitorID string, eventID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.hydrate(ctx, visitorID)
	if err != nil {
		return err
	}
	list, changed := list.Remove(eventID)
	if changed {
		s.persist(ctx, visitorID, list)
	}
	return nil
}

// Has reports whether the event is favorited, shape-agnostic.
func (s *FavoritesService) Has(ctx context.Context, visitorID string, eventID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.hydrate(ctx, visitorID)
	if err != nil {
		return false, err
	}
	return list.Has(eventID), nil
}

// Toggle removes the event when present, adds it otherwise, and reports
// whether the event is favorited afterwards.
func (s *FavoritesService) Toggle(ctx context.Context, visitorID string, eventID int, citySlug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.hydrate(ctx, visitorID)
	if err != nil {
		return false, err
	}
	if list.Has(eventID) {
		list, _ = list.Remove(eventID)
		s.persist(ctx, visitorID, list)
		return false, nil
	}
	list, _ = list.Add(eventID, citySlug)
	s.persist(ctx, visitorID, list)
	return true, nil
}

// Count is derived from the list length on every read.
func (s *FavoritesService) Count(ctx context.Context, visitorID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.hydrate(ctx, visitorID)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}
