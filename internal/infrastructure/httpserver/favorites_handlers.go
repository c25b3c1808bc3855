package httpserver

import (
	"net/http"
	"strconv"

	"github.com/afishaclub/afisha/internal/infrastructure/httpserver/helpers"
	"github.com/labstack/echo/v4"
)

func (s *Server) listFavorites(c echo.Context) error {
	visitorID := helpers.VisitorID(c)
	list, err := s.favoritesSvc.List(c.Request().Context(), visitorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load favorites")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"favorites": list,
		"count":     len(list),
	})
}

type toggleFavoriteRequest struct {
	City string `json:"city"`
}

func (s *Server) toggleFavorite(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event ID")
	}
	var req toggleFavoriteRequest
	// The body is optional: toggling off an entry needs no city.
	_ = c.Bind(&req)

	visitorID := helpers.VisitorID(c)
	favorited, err := s.favoritesSvc.Toggle(c.Request().Context(), visitorID, id, req.City)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle favorite")
	}
	count, err := s.favoritesSvc.Count(c.Request().Context(), visitorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count favorites")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":        id,
		"favorited": favorited,
		"count":     count,
	})
}

func (s *Server) removeFavorite(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event ID")
	}
	visitorID := helpers.VisitorID(c)
	if err := s.favoritesSvc.Remove(c.Request().Context(), visitorID, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove favorite")
	}
	return c.NoContent(http.StatusNoContent)
}
