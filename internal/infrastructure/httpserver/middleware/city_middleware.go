package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/internal/core/ports"
	"github.com/afishaclub/afisha/internal/infrastructure/httpserver/helpers"
)

// favoritesPathPrefix marks the routes that are city-agnostic and skip
// resolution entirely.
const favoritesPathPrefix = "/favorites"

type CityMiddleware struct {
	cityService ports.CityService
	logger      *logrus.Logger
}

func NewCityMiddleware(cityService ports.CityService, logger *logrus.Logger) *CityMiddleware {
	return &CityMiddleware{cityService: cityService, logger: logger}
}

// ResolveCity forces every page request to carry a valid city slug and keeps
// the selection cookie in sync with the URL. A missing or unknown slug
// redirects to a fallback city; a valid slug proceeds, overwriting a stale
// cookie. Resolving the same URL twice with the resulting cookie produces no
// further redirect or cookie write.
func (m *CityMiddleware) ResolveCity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, favoritesPathPrefix) {
				return next(c)
			}

			if err := m.cityService.LoadCities(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "city directory unavailable")
			}

			cities := m.cityService.Cities()
			allowed := make(map[string]struct{}, len(cities))
			for _, ct := range cities {
				allowed[ct.Slug] = struct{}{}
			}

			// Decode failure is treated the same as an absent cookie.
			cookieSlug := ""
			if persisted, err := helpers.ReadSelectedCity(c); err == nil && persisted != nil {
				cookieSlug = persisted.Slug
			}

			urlSlug := c.Param("city")
			if urlSlug == "" {
				return m.redirect(c, fallbackSlug(cookieSlug, allowed, cities))
			}
			if _, ok := allowed[urlSlug]; !ok {
				return m.redirect(c, fallbackSlug(cookieSlug, allowed, cities))
			}

			if cookieSlug != urlSlug {
				if ct := m.cityService.GetCityBySlug(urlSlug); ct != nil {
					helpers.WriteSelectedCity(c, *ct)
				} else {
					helpers.WriteSelectedCity(c, city.Placeholder(urlSlug))
				}
			}
			return next(c)
		}
	}
}

// fallbackSlug picks a slug that is guaranteed to resolve: the persisted one
// when still valid, then the default city, then the first directory entry.
func fallbackSlug(cookieSlug string, allowed map[string]struct{}, cities []city.City) string {
	if cookieSlug != "" {
		if _, ok := allowed[cookieSlug]; ok {
			return cookieSlug
		}
	}
	if _, ok := allowed[city.DefaultSlug]; ok {
		return city.DefaultSlug
	}
	if len(cities) > 0 && cities[0].Slug != "" {
		return cities[0].Slug
	}
	return city.DefaultSlug
}

func (m *CityMiddleware) redirect(c echo.Context, slug string) error {
	target := "/" + slug + "/"
	if q := c.Request().URL.RawQuery; q != "" {
		target += "?" + q
	}
	if m.logger != nil {
		m.logger.WithFields(logrus.Fields{"from": c.Request().URL.Path, "to": target}).Debug("redirecting to resolved city")
	}
	return c.Redirect(http.StatusFound, target)
}
