package event

import (
	"encoding/json"
	"fmt"
)

// Event is the upstream event aggregate. It is relayed read-only: this
// service never mutates events, only reformats them for display.
type Event struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	BodyText        string    `json:"body_text"`
	ShortTitle      string    `json:"short_title"`
	AgeRestriction  *string   `json:"age_restriction"`
	Price           string    `json:"price"`
	IsFree          bool      `json:"is_free"`
	Images          []Image   `json:"images"`
	SiteURL         string    `json:"site_url"`
	PublicationDate int64     `json:"publication_date"`
	Dates           []Date    `json:"dates"`
	Place           *Place    `json:"place"`
	Location        *Location `json:"location,omitempty"`
	Categories      []string  `json:"categories"`
	Tags            []string  `json:"tags"`
}

type Image struct {
	Image  string `json:"image"`
	Source struct {
		Name string `json:"name"`
		Link string `json:"link"`
	} `json:"source"`
}

// Date is one occurrence of an event, start and end as epoch seconds.
type Date struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

type Place struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	Address string  `json:"address"`
	Coords  *Coords `json:"coords,omitempty"`
}

type Location struct {
	Slug string `json:"slug"`
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Response is the paginated envelope the upstream wraps event lists in.
type Response struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Event `json:"results"`
}

// EmptyResponse is the degraded value served when the upstream list call fails.
func EmptyResponse() *Response {
	return &Response{Count: 0, Next: nil, Previous: nil, Results: []Event{}}
}

// Params are the query parameters accepted by the upstream events listing.
type Params struct {
	Location    string `json:"location,omitempty"`
	ActualSince string `json:"actual_since,omitempty"`
	ActualUntil string `json:"actual_until,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
	Page        int    `json:"page,omitempty"`
	Categories  string `json:"categories,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Search      string `json:"search,omitempty"`
	TextFormat  string `json:"text_format,omitempty"`
}

// CacheKey serializes the full parameter set into a memoizer key. Struct
// marshaling keeps the field order fixed, so equal parameter sets always map
// to the same key.
func (p Params) CacheKey() string {
	b, err := json.Marshal(p)
	if err != nil {
		return "events_"
	}
	return "events_" + string(b)
}

// EventCacheKey is the memoizer key for a single event lookup.
func EventCacheKey(id int) string {
	return fmt.Sprintf("event_%d", id)
}
