package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/internal/core/domain/event"
	"github.com/afishaclub/afisha/internal/core/ports"
	"github.com/afishaclub/afisha/internal/infrastructure/httpserver/helpers"
	"github.com/labstack/echo/v4"
)

// eventView is the presentation shape page endpoints serve: the raw event
// plus the formatted fields the front end renders directly.
type eventView struct {
	Event     *event.Event `json:"event"`
	Image     string       `json:"image"`
	DateLabel string       `json:"date_label"`
	Price     string       `json:"price"`
	Favorited bool         `json:"favorited"`
}

// rootPage is only reachable when city resolution is bypassed; it mirrors the
// middleware's behavior and sends the visitor to the default city.
func (s *Server) rootPage(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/"+city.DefaultSlug+"/")
}

func (s *Server) cityPage(c echo.Context) error {
	slug := c.Param("city")
	ct := s.citySvc.GetCityBySlug(slug)
	if ct == nil {
		// Resolution lets unknown-but-valid slugs through only via the
		// placeholder path; render with the placeholder record.
		placeholder := city.Placeholder(slug)
		ct = &placeholder
	}

	resp, err := s.catalogSvc.FetchEvents(c.Request().Context(), event.Params{
		Location: slug,
		PageSize: s.kudagoConfig.DefaultPageSize,
		Page:     pageFromQuery(c),
	})
	if err != nil {
		resp = event.EmptyResponse()
	}

	loc := cityLocation(ct)
	visitorID := helpers.VisitorID(c)
	views := make([]eventView, len(resp.Results))
	for i := range resp.Results {
		ev := resp.Results[i]
		favorited, _ := s.favoritesSvc.Has(c.Request().Context(), visitorID, ev.ID)
		views[i] = eventView{
			Event:     &resp.Results[i],
			Image:     event.PrimaryImage(&ev),
			DateLabel: event.FormatDateRange(&ev, loc),
			Price:     event.FormatPrice(&ev),
			Favorited: favorited,
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"city":   ct,
		"count":  resp.Count,
		"events": views,
	})
}

func (s *Server) eventPage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event ID")
	}

	ev, err := s.catalogSvc.FetchEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch event")
	}

	ct := s.citySvc.GetCityBySlug(c.Param("city"))
	visitorID := helpers.VisitorID(c)
	favorited, _ := s.favoritesSvc.Has(c.Request().Context(), visitorID, ev.ID)

	return c.JSON(http.StatusOK, map[string]any{
		"city": ct,
		"event": eventView{
			Event:     ev,
			Image:     event.PrimaryImage(ev),
			DateLabel: event.FormatDateRange(ev, cityLocation(ct)),
			Price:     event.FormatPrice(ev),
			Favorited: favorited,
		},
	})
}

// favoritesPage is city-agnostic: the resolution middleware skips it.
func (s *Server) favoritesPage(c echo.Context) error {
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

func pageFromQuery(c echo.Context) int {
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		return v
	}
	return 0
}

// cityLocation resolves the city's IANA timezone for date formatting,
// defaulting to UTC when unknown.
func cityLocation(ct *city.City) *time.Location {
	if ct == nil || ct.Timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(ct.Timezone)
	if err != nil {
		return nil
	}
	return loc
}
