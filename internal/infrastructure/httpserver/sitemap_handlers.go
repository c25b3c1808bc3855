package httpserver

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/afishaclub/afisha/internal/core/domain/event"
	"github.com/labstack/echo/v4"
)

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemap emits the URL set for every known city crossed with the events
// actual over the next week. An unreachable upstream degrades to a minimal
// static set instead of an error.
func (s *Server) sitemap(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now().UTC()
	nowStamp := now.Format(time.RFC3339)

	cities, err := s.catalogSvc.FetchLocations(ctx)
	if err != nil || len(cities) == 0 {
		return writeSitemap(c, staticSitemapURLs(nowStamp))
	}

	urls := []sitemapURL{
		{Loc: "/", LastMod: nowStamp, ChangeFreq: "daily", Priority: 1},
		{Loc: "/favorites", LastMod: nowStamp, ChangeFreq: "weekly", Priority: 0.7},
	}
	for _, ct := range cities {
		urls = append(urls,
			sitemapURL{Loc: "/" + ct.Slug + "/", LastMod: nowStamp, ChangeFreq: "daily", Priority: 1},
			sitemapURL{Loc: "/" + ct.Slug + "/events/", LastMod: nowStamp, ChangeFreq: "daily", Priority: 0.9},
			sitemapURL{Loc: "/" + ct.Slug + "/favorites/", LastMod: nowStamp, ChangeFreq: "weekly", Priority: 0.7},
		)
	}

	resp, err := s.catalogSvc.FetchEvents(ctx, event.Params{
		ActualSince: now.Format("2006-01-02"),
		ActualUntil: now.AddDate(0, 0, 7).Format("2006-01-02"),
		PageSize:    s.kudagoConfig.SitemapPageSize,
	})
	if err == nil {
		for _, ct := range cities {
			for _, ev := range resp.Results {
				urls = append(urls, sitemapURL{
					Loc:        fmt.Sprintf("/%s/events/%d", ct.Slug, ev.ID),
					LastMod:    time.Unix(ev.PublicationDate, 0).UTC().Format(time.RFC3339),
					ChangeFreq: "daily",
					Priority:   0.8,
				})
			}
		}
	}

	return writeSitemap(c, urls)
}

func staticSitemapURLs(stamp string) []sitemapURL {
	return []sitemapURL{
		{Loc: "/", LastMod: stamp, ChangeFreq: "daily", Priority: 1},
		{Loc: "/events", LastMod: stamp, ChangeFreq: "daily", Priority: 0.9},
		{Loc: "/favorites", LastMod: stamp, ChangeFreq: "weekly", Priority: 0.7},
	}
}

func writeSitemap(c echo.Context, urls []sitemapURL) error {
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	return c.XML(http.StatusOK, set)
}
