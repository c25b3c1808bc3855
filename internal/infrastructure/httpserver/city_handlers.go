package httpserver

import (
	"errors"
	"net/http"

	"github.com/afishaclub/afisha/internal/infrastructure/httpserver/helpers"
	"github.com/labstack/echo/v4"
)

func (s *Server) listCities(c echo.Context) error {
	if err := s.citySvc.LoadCities(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load cities")
	}
	return c.JSON(http.StatusOK, s.citySvc.Cities())
}

// currentCity reads the persisted selection. A value is trusted only when it
// carries both an id and a name; an unparsable value is cleared rather than
// left to corrupt future requests.
func (s *Server) currentCity(c echo.Context) error {
	persisted, err := helpers.ReadSelectedCity(c)
	if err != nil {
		if errors.Is(err, helpers.ErrMalformedCookie) {
			helpers.ClearSelectedCity(c)
		}
		return c.JSON(http.StatusOK, nil)
	}
	if persisted == nil || persisted.ID == 0 || persisted.Name == "" {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, persisted)
}

type selectCityRequest struct {
	Slug string `json:"slug"`
}

// selectCity is the explicit user selection: it resolves the slug against the
// directory and mirrors the choice into the cookie synchronously.
func (s *Server) selectCity(c echo.Context) error {
	var req selectCityRequest
	if err := c.Bind(&req); err != nil || req.Slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := s.citySvc.LoadCities(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load cities")
	}
	ct := s.citySvc.GetCityBySlug(req.Slug)
	if ct == nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown city")
	}
	helpers.WriteSelectedCity(c, *ct)
	return c.JSON(http.StatusOK, ct)
}

func (s *Server) clearCity(c echo.Context) error {
	helpers.ClearSelectedCity(c)
	return c.NoContent(http.StatusNoContent)
}
