package services

import (
	"context"
	"sync"

	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/internal/core/ports"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// CityService holds the city directory for the process lifetime. The
// directory is populated once (upstream or fallback) and immutable after.
type CityService struct {
	catalog ports.CatalogService
	logger  *logrus.Logger

	mu     sync.RWMutex
	cities []city.City
	sf     singleflight.Group
}

func NewCityService(catalog ports.CatalogService, logger *logrus.Logger) ports.CityService {
	return &CityService{
		catalog: catalog,
		logger:  logger,
	}
}

// LoadCities populates the directory on first call; later calls are no-ops.
// Concurrent first loads share a single upstream fetch. The directory is
// never empty after this returns: a failed or empty upstream read substitutes
// the built-in fallback list.
func (s *CityService) LoadCities(ctx context.Context) error {
	if s.loaded() {
		return nil
	}

	_, err, _ := s.sf.Do(locationsCacheKey, func() (any, error) {
		if s.loaded() {
			return nil, nil
		}

		cities, err := s.catalog.FetchLocations(ctx)
		valid := validCities(cities)
		if err != nil || len(valid) == 0 {
			if s.logger != nil {
				s.logger.WithError(err).Warn("city directory unavailable, using fallback list")
			}
			valid = city.Fallback()
		}

		s.mu.Lock()
		s.cities = valid
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// validCities filters out entries missing a name or slug and assigns a
// synthetic sequential id to any entry missing one.
func validCities(cities []city.City) []city.City {
	valid := make([]city.City, 0, len(cities))
	for i, c := range cities {
		if c.Name == "" || c.Slug == "" {
			continue
		}
		if c.ID == 0 {
			c.ID = i + 1
		}
		valid = append(valid, c)
	}
	return valid
}

func (s *CityService) loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cities) > 0
}

// Cities returns the loaded directory; empty before the first LoadCities.
func (s *CityService) Cities() []city.City {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cities
}

// GetCityBySlug is an exact-match lookup; nil when the slug is unknown.
func (s *CityService) GetCityBySlug(slug string) *city.City {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.cities {
		if s.cities[i].Slug == slug {
			c := s.cities[i]
			return &c
		}
	}
	return nil
}

// GetCityByID is an exact-match lookup; nil when the id is unknown.
func (s *CityService) GetCityByID(id int) *city.City {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.cities {
		if s.cities[i].ID == id {
			c := s.cities[i]
			return &c
		}
	}
	return nil
}
