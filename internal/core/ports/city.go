package ports

import (
	"context"

	"github.com/afishaclub/afisha/internal/core/domain/city"
)

// CityService holds the resolved city directory for the process lifetime.
type CityService interface {
	// LoadCities populates the directory on first call and is a no-op
	// afterwards. The directory is never empty after it returns.
	LoadCities(ctx context.Context) error
	// Cities returns the loaded directory (empty before the first LoadCities).
	Cities() []city.City
	// GetCityBySlug is an exact-match lookup; nil when absent.
	GetCityBySlug(slug string) *city.City
	// GetCityByID is an exact-match lookup; nil when absent.
	GetCityByID(id int) *city.City
}
