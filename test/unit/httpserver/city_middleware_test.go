package httpserver_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/afishaclub/afisha/internal/application/services"
	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/internal/infrastructure/httpserver/middleware"
	"github.com/afishaclub/afisha/test/mocks"
)

func newResolverApp(catalog *mocks.CatalogServiceMock) *echo.Echo {
	citySvc := services.NewCityService(catalog, logrus.New())
	m := middleware.NewCityMiddleware(citySvc, logrus.New())

	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	pages := e.Group("", m.ResolveCity())
	pages.GET("/", ok)
	pages.GET("/favorites", ok)
	pages.GET("/:city/", ok)
	return e
}

func directoryOf(cities ...city.City) *mocks.CatalogServiceMock {
	return &mocks.CatalogServiceMock{FetchLocationsFn: func(ctx context.Context) ([]city.City, error) {
		return cities, nil
	}}
}

func cityCookie(id int, name, slug string) *http.Cookie {
	value := url.QueryEscape(fmt.Sprintf(`{"id":%d,"name":%q,"slug":%q}`, id, name, slug))
	return &http.Cookie{Name: "selected-city", Value: value}
}

func selectedCityCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "selected-city" {
			return c
		}
	}
	return nil
}

func TestResolveCity_NoCityInURLRedirectsToDefault(t *testing.T) {
	e := newResolverApp(directoryOf(
		city.City{ID: 1, Name: "Москва", Slug: "msk"},
		city.City{ID: 2, Name: "Санкт-Петербург", Slug: "spb"},
	))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/msk/", rec.Header().Get("Location"))
}

func TestResolveCity_RedirectPreservesQueryString(t *testing.T) {
	e := newResolverApp(directoryOf(city.City{ID: 1, Name: "Москва", Slug: "msk"}))

	req := httptest.NewRequest(http.MethodGet, "/?page=2&search=jazz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/msk/?page=2&search=jazz", rec.Header().Get("Location"))
}

func TestResolveCity_InvalidCityWithValidCookieRedirectsToCookieCity(t *testing.T) {
	e := newResolverApp(directoryOf(
		city.City{ID: 1, Name: "Москва", Slug: "msk"},
		city.City{ID: 2, Name: "Санкт-Петербург", Slug: "spb"},
	))

	req := httptest.NewRequest(http.MethodGet, "/xyz/", nil)
	req.AddCookie(cityCookie(2, "Санкт-Петербург", "spb"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/spb/", rec.Header().Get("Location"))
}

func TestResolveCity_MalformedCookieFallsBackToDefault(t *testing.T) {
	e := newResolverApp(directoryOf(
		city.City{ID: 1, Name: "Москва", Slug: "msk"},
		city.City{ID: 2, Name: "Санкт-Петербург", Slug: "spb"},
	))

	req := httptest.NewRequest(http.MethodGet, "/xyz/", nil)
	req.AddCookie(&http.Cookie{Name: "selected-city", Value: "%7Bnot-json"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/msk/", rec.Header().Get("Location"))
}

func TestResolveCity_FallsBackToFirstEntryWithoutDefaultCity(t *testing.T) {
	e := newResolverApp(directoryOf(
		city.City{ID: 3, Name: "Екатеринбург", Slug: "ekb"},
		city.City{ID: 4, Name: "Казань", Slug: "kzn"},
	))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/ekb/", rec.Header().Get("Location"))
}

func TestResolveCity_ValidCityWritesCookieAndProceeds(t *testing.T) {
	e := newResolverApp(directoryOf(
		city.City{ID: 1, Name: "Москва", Slug: "msk"},
		city.City{ID: 2, Name: "Санкт-Петербург", Slug: "spb"},
	))

	req := httptest.NewRequest(http.MethodGet, "/spb/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := selectedCityCookie(rec)
	require.NotNil(t, cookie)

	decoded, err := url.QueryUnescape(cookie.Value)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":2,"name":"Санкт-Петербург","slug":"spb"}`, decoded)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, 365*24*60*60, cookie.MaxAge)
}

func TestResolveCity_SecondPassIsIdempotent(t *testing.T) {
	e := newResolverApp(directoryOf(
		city.City{ID: 1, Name: "Москва", Slug: "msk"},
		city.City{ID: 2, Name: "Санкт-Петербург", Slug: "spb"},
	))

	req := httptest.NewRequest(http.MethodGet, "/spb/?page=3", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	first := selectedCityCookie(rec)
	require.NotNil(t, first)

	// Replay the same URL with the cookie the first pass produced.
	req = httptest.NewRequest(http.MethodGet, "/spb/?page=3", nil)
	req.AddCookie(&http.Cookie{Name: first.Name, Value: first.Value})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, selectedCityCookie(rec))
}

func TestResolveCity_FavoritesPathBypassesResolution(t *testing.T) {
	catalog := directoryOf(city.City{ID: 1, Name: "Москва", Slug: "msk"})
	e := newResolverApp(catalog)

	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 0, catalog.FetchLocationsCalls)
}

func TestResolveCity_FallbackDirectoryStillConverges(t *testing.T) {
	catalog := &mocks.CatalogServiceMock{FetchLocationsFn: func(ctx context.Context) ([]city.City, error) {
		return nil, fmt.Errorf("upstream down")
	}}
	e := newResolverApp(catalog)

	req := httptest.NewRequest(http.MethodGet, "/xyz/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// The built-in fallback directory takes over, so resolution still lands
	// on a known slug.
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/msk/", rec.Header().Get("Location"))
}
