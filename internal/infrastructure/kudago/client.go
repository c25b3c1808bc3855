// Package kudago implements the upstream events API client.
package kudago

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	config "github.com/afishaclub/afisha/configs"
	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/internal/core/domain/event"
	"github.com/afishaclub/afisha/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// Field lists the upstream is asked for, fixed for all callers.
const (
	eventFields    = "id,title,slug,description,body_text,short_title,age_restriction,price,is_free,images,site_url,publication_date,dates,place,categories,tags"
	locationFields = "id,name,slug,timezone,coords"

	listTextFormat   = "text"
	singleTextFormat = "html"
)

// Client talks to the public KudaGo REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// NewClient creates an upstream API client from config.
func NewClient(cfg *config.KudaGoConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Locations implements ports.EventsClient.
func (c *Client) Locations(ctx context.Context) ([]city.City, error) {
	q := url.Values{}
	q.Set("fields", locationFields)
	q.Set("order_by", "name")

	var cities []city.City
	if err := c.getJSON(ctx, "/locations/", q, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// Events implements ports.EventsClient.
func (c *Client) Events(ctx context.Context, params event.Params) (*event.Response, error) {
	q := url.Values{}
	q.Set("fields", eventFields)
	textFormat := params.TextFormat
	if textFormat == "" {
		textFormat = listTextFormat
	}
	q.Set("text_format", textFormat)
	if params.Location != "" {
		q.Set("location", params.Location)
	}
	if params.ActualSince != "" {
		q.Set("actual_since", params.ActualSince)
	}
	if params.ActualUntil != "" {
		q.Set("actual_until", params.ActualUntil)
	}
	// Pagination travels as strings regardless of how it was received.
	if params.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(params.PageSize))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Categories != "" {
		q.Set("categories", params.Categories)
	}
	if params.Tags != "" {
		q.Set("tags", params.Tags)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}

	var resp event.Response
	if err := c.getJSON(ctx, "/events/", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Event implements ports.EventsClient.
func (c *Client) Event(ctx context.Context, id int) (*event.Event, error) {
	q := url.Values{}
	q.Set("fields", eventFields)
	q.Set("text_format", singleTextFormat)

	var ev event.Event
	if err := c.getJSON(ctx, fmt.Sprintf("/events/%d/", id), q, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"path": path}).WithError(err).Warn("upstream request failed")
		}
		return fmt.Errorf("%w: %v", ports.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ports.ErrNotFound, path)
	case resp.StatusCode != http.StatusOK:
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"path": path, "status": resp.StatusCode}).Warn("upstream returned non-OK status")
		}
		return fmt.Errorf("%w: status %d", ports.ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ports.ErrUpstreamUnavailable, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode body: %v", ports.ErrUpstreamUnavailable, err)
	}
	return nil
}
