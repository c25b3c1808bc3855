package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/afishaclub/afisha/internal/core/domain/event"
	"github.com/afishaclub/afisha/internal/core/ports"
	"github.com/labstack/echo/v4"
)

func (s *Server) listLocations(c echo.Context) error {
	cities, err := s.catalogSvc.FetchLocations(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch locations")
	}
	return c.JSON(http.StatusOK, cities)
}

func (s *Server) listEvents(c echo.Context) error {
	params := eventParamsFromQuery(c)

	resp, err := s.catalogSvc.FetchEvents(c.Request().Context(), params)
	if err != nil {
		// FetchEvents degrades internally; this is a belt-and-braces path.
		return c.JSON(http.StatusOK, event.EmptyResponse())
	}

	if params.Location != "" {
		resp = withLocationSlug(resp, params.Location)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getEvent(c echo.Context) error {
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
	return c.JSON(http.StatusOK, ev)
}

// eventParamsFromQuery maps the request query onto upstream parameters.
// Pagination values arrive as strings and are coerced here.
func eventParamsFromQuery(c echo.Context) event.Params {
	params := event.Params{
		Location:    c.QueryParam("location"),
		ActualSince: c.QueryParam("actual_since"),
		ActualUntil: c.QueryParam("actual_until"),
		Categories:  c.QueryParam("categories"),
		Tags:        c.QueryParam("tags"),
		Search:      c.QueryParam("search"),
		TextFormat:  c.QueryParam("text_format"),
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		params.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
		params.PageSize = v
	}
	return params
}

// withLocationSlug stamps the requested location slug onto each result. The
// cached response is shared between requests, so results are copied rather
// than mutated in place.
func withLocationSlug(resp *event.Response, slug string) *event.Response {
	out := *resp
	out.Results = make([]event.Event, len(resp.Results))
	for i, ev := range resp.Results {
		ev.Location = &event.Location{Slug: slug}
		out.Results[i] = ev
	}
	return &out
}
