package itinerary

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"tripsmith/internal/modules/geo"
)

// Markdown renders the itinerary as a human-readable document grouped by
// day, with per-stop details and map-link annotations.
func Markdown(it *Itinerary) string {
	var b strings.Builder

	city := "Trip"
	if it.Destination.City != nil && *it.Destination.City != "" {
		city = *it.Destination.City
	}
	if it.Destination.Country != nil && *it.Destination.Country != "" {
		fmt.Fprintf(&b, "# %s (%s)\n", city, *it.Destination.Country)
	} else {
		fmt.Fprintf(&b, "# %s\n", city)
	}
	fmt.Fprintf(&b, "**Dates:** %s → %s\n\n", orUnknown(it.DateRange.Start), orUnknown(it.DateRange.End))

	for _, day := range it.DailyPlan {
		if day.Theme != "" {
			fmt.Fprintf(&b, "## %s — %s\n", day.Date, day.Theme)
		} else {
			fmt.Fprintf(&b, "## %s\n", day.Date)
		}
		for _, item := range day.Items {
			fmt.Fprintf(&b, "- **%s** — *%s* — **%s**", item.Time, item.Type, item.Name)
			if item.HasCoords() {
				fmt.Fprintf(&b, " ([map](%s))", geo.OSMDeepLink(*item.Lat, *item.Lon, 15))
			}
			if item.Notes != "" {
				fmt.Fprintf(&b, ". %s", item.Notes)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(it.Summary.Warnings) > 0 {
		b.WriteString("**Warnings:**\n")
		for _, w := range it.Summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}

// ICS serializes the itinerary as a calendar-event series: one event per
// item, start derived from day date + item time, duration from duration_min.
// Items whose date/time cannot be parsed are skipped.
func ICS(it *Itinerary) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//tripsmith//itinerary//EN")

	for di, day := range it.DailyPlan {
		for ii, item := range day.Items {
			start, err := time.Parse("2006-01-02 15:04", day.Date+" "+item.Time)
			if err != nil {
				continue
			}
			duration := time.Duration(item.DurationMin) * time.Minute
			if item.DurationMin <= 0 {
				duration = time.Duration(defaultDurationMin) * time.Minute
			}

			event := cal.AddEvent(fmt.Sprintf("%s-%d-%d@tripsmith", day.Date, di, ii))
			event.SetSummary(item.Name)
			event.SetStartAt(start)
			event.SetEndAt(start.Add(duration))

			desc := item.Notes
			if item.HasCoords() {
				if desc != "" {
					desc += "\n"
				}
				desc += "Map: " + geo.OSMDeepLink(*item.Lat, *item.Lon, 15)
			}
			if desc != "" {
				event.SetDescription(desc)
			}
		}
	}

	return cal.Serialize()
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
