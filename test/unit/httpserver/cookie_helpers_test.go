package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/internal/infrastructure/httpserver/helpers"
)

func contextWithCookie(value string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SelectedCityCookie, Value: value})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestReadSelectedCity_PlainJSONObject(t *testing.T) {
	c, _ := contextWithCookie(url.QueryEscape(`{"id":2,"name":"Санкт-Петербург","slug":"spb"}`))

	ct, err := helpers.ReadSelectedCity(c)
	require.NoError(t, err)
	require.NotNil(t, ct)
	require.Equal(t, 2, ct.ID)
	require.Equal(t, "Санкт-Петербург", ct.Name)
	require.Equal(t, "spb", ct.Slug)
}

func TestReadSelectedCity_LegacyDoubleEncodedString(t *testing.T) {
	// Older clients serialized the JSON object twice, leaving a JSON string
	// whose content is itself a JSON object.
	c, _ := contextWithCookie(url.QueryEscape(`"{\"id\":1,\"name\":\"Москва\",\"slug\":\"msk\"}"`))

	ct, err := helpers.ReadSelectedCity(c)
	require.NoError(t, err)
	require.NotNil(t, ct)
	require.Equal(t, 1, ct.ID)
	require.Equal(t, "msk", ct.Slug)
}

func TestReadSelectedCity_ObjectObjectStringIsMalformed(t *testing.T) {
	c, _ := contextWithCookie(url.QueryEscape("[object Object]"))

	ct, err := helpers.ReadSelectedCity(c)
	require.ErrorIs(t, err, helpers.ErrMalformedCookie)
	require.Nil(t, ct)
}

func TestReadSelectedCity_GarbageIsMalformed(t *testing.T) {
	for _, value := range []string{"%7Bnope", "42", `{"id":3}`, `""`} {
		c, _ := contextWithCookie(value)
		ct, err := helpers.ReadSelectedCity(c)
		require.ErrorIs(t, err, helpers.ErrMalformedCookie, "value %q", value)
		require.Nil(t, ct)
	}
}

func TestReadSelectedCity_AbsentCookie(t *testing.T) {
	c, _ := contextWithCookie("")

	ct, err := helpers.ReadSelectedCity(c)
	require.NoError(t, err)
	require.Nil(t, ct)
}

func TestWriteThenReadSelectedCityRoundTrips(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	helpers.WriteSelectedCity(c, city.City{ID: 4, Name: "Казань", Slug: "kzn"})

	var written *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == helpers.SelectedCityCookie {
			written = ck
		}
	}
	require.NotNil(t, written)

	c2, _ := contextWithCookie(written.Value)
	ct, err := helpers.ReadSelectedCity(c2)
	require.NoError(t, err)
	require.Equal(t, &city.City{ID: 4, Name: "Казань", Slug: "kzn"}, ct)
}

func TestClearSelectedCityExpiresCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	helpers.ClearSelectedCity(c)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, helpers.SelectedCityCookie, cookies[0].Name)
	require.Less(t, cookies[0].MaxAge, 0)
}

func TestVisitorID_ReusesCookieValue(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: helpers.VisitorCookie, Value: "visitor-123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.Equal(t, "visitor-123", helpers.VisitorID(c))
	require.Empty(t, rec.Result().Cookies())
}

func TestVisitorID_MintsStableIDWithinRequest(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	first := helpers.VisitorID(c)
	require.NotEmpty(t, first)
	require.Equal(t, first, helpers.VisitorID(c))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, helpers.VisitorCookie, cookies[0].Name)
	require.Equal(t, first, cookies[0].Value)
}
