package helpers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/afishaclub/afisha/internal/core/domain/city"
)

const (
	// SelectedCityCookie persists the visitor's city as JSON {id,name,slug}.
	SelectedCityCookie = "selected-city"
	// VisitorCookie carries the anonymous id a favorites list is keyed by.
	VisitorCookie = "visitor-id"

	cookieMaxAge = 365 * 24 * 60 * 60
)

// ErrMalformedCookie flags a persisted cookie value that cannot be decoded.
// Callers recover by discarding the value; it is never surfaced to a client.
var ErrMalformedCookie = errors.New("malformed cookie value")

// cityCookiePayload is the persisted cookie shape. It deliberately carries
// only the three fields the front end needs, not the full directory record.
type cityCookiePayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ReadSelectedCity decodes the selected-city cookie tolerantly. The value may
// be a plain JSON object or a legacy string-encoded (double-serialized) JSON
// value. Absence yields (nil, nil); anything undecodable yields
// ErrMalformedCookie.
func ReadSelectedCity(c echo.Context) (*city.City, error) {
	cookie, err := c.Cookie(SelectedCityCookie)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	raw := cookie.Value
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		raw = unescaped
	}
	// A stringified object that was never serialized properly.
	if raw == "[object Object]" {
		return nil, ErrMalformedCookie
	}

	var payload cityCookiePayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil && payload.Slug != "" {
		return &city.City{ID: payload.ID, Name: payload.Name, Slug: payload.Slug}, nil
	}

	// Legacy format: the JSON object was serialized once more into a string.
	var inner string
	if err := json.Unmarshal([]byte(raw), &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &payload); err == nil && payload.Slug != "" {
			return &city.City{ID: payload.ID, Name: payload.Name, Slug: payload.Slug}, nil
		}
	}

	return nil, ErrMalformedCookie
}

// WriteSelectedCity persists the city selection: 1-year max age, path "/",
// lax same-site, identical attributes for every writer of this cookie.
func WriteSelectedCity(c echo.Context, ct city.City) {
	payload := cityCookiePayload{ID: ct.ID, Name: ct.Name, Slug: ct.Slug}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     SelectedCityCookie,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSelectedCity expires the selection cookie.
func ClearSelectedCity(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SelectedCityCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		SameSite: http.SameSiteLaxMode,
	})
}

const keyVisitorID = "visitor_id"

// VisitorID returns the visitor id from the request, minting and setting a
// fresh one when the cookie is absent or empty. The minted id is stashed on
// the request context so repeated calls within one request agree.
func VisitorID(c echo.Context) string {
	if v, ok := c.Get(keyVisitorID).(string); ok && v != "" {
		return v
	}
	if cookie, err := c.Cookie(VisitorCookie); err == nil && cookie.Value != "" {
		c.Set(keyVisitorID, cookie.Value)
		return cookie.Value
	}
	id := uuid.NewString()
	c.Set(keyVisitorID, id)
	c.SetCookie(&http.Cookie{
		Name:     VisitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
