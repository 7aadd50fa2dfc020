package planner

import (
	"time"

	"tripsmith/internal/modules/itinerary"
)

const (
	fallbackDays    = 3
	fallbackCostGBP = 500
)

// FallbackPlan builds the deterministic itinerary substituted when all
// parsing and repair attempts fail. It is anchored on the best-known
// destination (possibly all-null) and always validates against the schema,
// so generation terminates with a structurally valid plan no matter what
// the model produced.
func FallbackPlan(dest itinerary.Destination, start, end string) *itinerary.Itinerary {
	anchor, err := time.Parse("2006-01-02", start)
	if err != nil {
		anchor = time.Now()
	}

	startISO := anchor.Format("2006-01-02")
	endISO := end
	if endISO == "" {
		endISO = anchor.AddDate(0, 0, fallbackDays).Format("2006-01-02")
	}

	days := make([]itinerary.DayPlan, 0, fallbackDays)
	for i := 0; i < fallbackDays; i++ {
		days = append(days, itinerary.DayPlan{
			Date:  anchor.AddDate(0, 0, i).Format("2006-01-02"),
			Theme: "Exploration",
			Items: []itinerary.Item{
				{
					Time:        "09:00",
					Name:        "Sightseeing",
					Type:        itinerary.TypeSight,
					DurationMin: 90,
					Notes:       "Discover local highlights",
				},
				{
					Time:        "14:00",
					Name:        "Local cuisine",
					Type:        itinerary.TypeFood,
					DurationMin: 90,
					Notes:       "Try authentic dishes",
				},
			},
		})
	}

	return &itinerary.Itinerary{
		Destination: dest,
		DateRange:   itinerary.DateRange{Start: startISO, End: endISO},
		DailyPlan:   days,
		Summary: itinerary.Summary{
			Pace:       itinerary.PaceModerate,
			EstCostGBP: fallbackCostGBP,
			Warnings:   []string{},
		},
	}
}
