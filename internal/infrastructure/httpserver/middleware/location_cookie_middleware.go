package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/internal/infrastructure/httpserver/helpers"
)

type LocationCookieMiddleware struct{}

func NewLocationCookieMiddleware() *LocationCookieMiddleware {
	return &LocationCookieMiddleware{}
}

// CaptureLocation writes the selected-city cookie from a ?location=<slug>
// query parameter on any request. Only the slug is persisted (as a minimal
// placeholder record); the directory resolves the full city later. The cookie
// shape and attributes are identical to the ones the resolver writes.
func (m *LocationCookieMiddleware) CaptureLocation() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if loc := c.QueryParam("location"); loc != "" {
				helpers.WriteSelectedCity(c, city.Placeholder(loc))
			}
			return next(c)
		}
	}
}
