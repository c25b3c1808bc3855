package city

import "strings"

// City is one entry of the location directory served by the upstream API.
// The slug uniquely identifies a city within the directory.
type City struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Timezone string `json:"timezone,omitempty"`
	Coords   Coords `json:"coords,omitempty"`
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Placeholder builds a minimal city record for a slug the directory does not
// know yet. It carries the slug uppercased as a display name and a zero id.
func Placeholder(slug string) City {
	return City{ID: 0, Name: strings.ToUpper(slug), Slug: slug}
}

// DefaultSlug is the slug resolution falls back to when nothing better is known.
const DefaultSlug = "msk"

// Fallback returns the built-in directory used when the upstream location
// list is unavailable or empty. The caller owns the returned slice.
func Fallback() []City {
	return []City{
		{ID: 1, Name: "Москва", Slug: "msk", Timezone: "Europe/Moscow", Coords: Coords{Lat: 55.7558, Lon: 37.6176}},
		{ID: 2, Name: "Санкт-Петербург", Slug: "spb", Timezone: "Europe/Moscow", Coords: Coords{Lat: 59.9311, Lon: 30.3609}},
		{ID: 3, Name: "Екатеринбург", Slug: "ekb", Timezone: "Asia/Yekaterinburg", Coords: Coords{Lat: 56.8431, Lon: 60.6454}},
		{ID: 4, Name: "Казань", Slug: "kzn", Timezone: "Europe/Moscow", Coords: Coords{Lat: 55.8304, Lon: 49.0661}},
		{ID: 5, Name: "Нижний Новгород", Slug: "nnv", Timezone: "Europe/Moscow", Coords: Coords{Lat: 56.2965, Lon: 43.9361}},
	}
}
