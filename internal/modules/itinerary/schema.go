package itinerary

import (
	"encoding/json"
	"fmt"
)

// Declared defaults for optional item fields.
const (
	defaultTime        = "09:00"
	defaultType        = TypeSight
	defaultDurationMin = 90
)

// SchemaError reports a required field that is missing or of the wrong
// shape. It is the sole validation error condition.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("itinerary schema: %s %s", e.Field, e.Reason)
}

// rawItinerary mirrors Itinerary with pointer fields so that absent and
// present-but-empty top-level sections can be told apart.
type rawItinerary struct {
	Destination *Destination `json:"destination"`
	DateRange   *DateRange   `json:"date_range"`
	DailyPlan   []DayPlan    `json:"daily_plan"`
	Summary     *Summary     `json:"summary"`
}

// Parse decodes arbitrary JSON into a conformant Itinerary or fails.
// Malformed JSON surfaces as a wrapped unmarshal error; missing required
// fields surface as *SchemaError. Declared defaults are applied to optional
// item fields; everything else passes through unchanged.
func Parse(data []byte) (*Itinerary, error) {
	var raw rawItinerary
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("itinerary parse: %w", err)
	}

	if raw.Destination == nil {
		return nil, &SchemaError{Field: "destination", Reason: "is required"}
	}
	if raw.DateRange == nil {
		return nil, &SchemaError{Field: "date_range", Reason: "is required"}
	}
	if raw.DailyPlan == nil {
		return nil, &SchemaError{Field: "daily_plan", Reason: "is required"}
	}
	if raw.Summary == nil {
		return nil, &SchemaError{Field: "summary", Reason: "is required"}
	}

	it := &Itinerary{
		Destination: *raw.Destination,
		DateRange:   *raw.DateRange,
		DailyPlan:   raw.DailyPlan,
		Summary:     *raw.Summary,
	}

	for di := range it.DailyPlan {
		day := &it.DailyPlan[di]
		if day.Date == "" {
			return nil, &SchemaError{Field: fmt.Sprintf("daily_plan[%d].date", di), Reason: "is required"}
		}
		for ii := range day.Items {
			item := &day.Items[ii]
			if item.Name == "" {
				return nil, &SchemaError{Field: fmt.Sprintf("daily_plan[%d].items[%d].name", di, ii), Reason: "is required"}
			}
			if item.Time == "" {
				item.Time = defaultTime
			}
			if item.Type == "" {
				item.Type = defaultType
			}
			if item.DurationMin <= 0 {
				item.DurationMin = defaultDurationMin
			}
		}
	}

	if it.Summary.Pace == "" {
		it.Summary.Pace = PaceModerate
	}
	if it.Summary.Warnings == nil {
		it.Summary.Warnings = []string{}
	}

	return it, nil
}
