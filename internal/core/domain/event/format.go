package event

import (
	"fmt"
	"time"
)

// Display sentinels, matching what the front end renders.
const (
	PlaceholderImage = "/placeholder-event.svg"
	noDateLabel      = "Дата не указана"
	freeLabel        = "Бесплатно"
	noPriceLabel     = "Цена не указана"
)

// Russian month names in the genitive case used by date formatting.
var ruMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// PrimaryImage returns the URL of the event's first image, or the placeholder
// path when the event carries no images.
func PrimaryImage(ev *Event) string {
	if len(ev.Images) > 0 && ev.Images[0].Image != "" {
		return ev.Images[0].Image
	}
	return PlaceholderImage
}

// FormatDateRange renders the event's first occurrence as a ru-RU wall-clock
// string in loc (UTC when loc is nil). When start and end fall on the same
// calendar day the date is rendered once followed by both times; otherwise
// both full timestamps are rendered.
func FormatDateRange(ev *Event, loc *time.Location) string {
	if len(ev.Dates) == 0 {
		return noDateLabel
	}
	if loc == nil {
		loc = time.UTC
	}

	d := ev.Dates[0]
	start := time.Unix(d.Start, 0).In(loc)
	end := time.Unix(d.End, 0).In(loc)

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy == ey && sm == em && sd == ed {
		return fmt.Sprintf("%d %s %d г., %02d:%02d - %02d:%02d",
			sd, ruMonths[sm-1], sy, start.Hour(), start.Minute(), end.Hour(), end.Minute())
	}
	return fmt.Sprintf("%s - %s", formatStamp(start), formatStamp(end))
}

func formatStamp(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%d %s %d г., %02d:%02d", d, ruMonths[m-1], y, t.Hour(), t.Minute())
}

// FormatPrice renders the event's price line: the free label for free events,
// the raw upstream price string when present, a sentinel otherwise.
func FormatPrice(ev *Event) string {
	if ev.IsFree {
		return freeLabel
	}
	if ev.Price != "" {
		return ev.Price
	}
	return noPriceLabel
}
