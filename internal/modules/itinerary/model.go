// README: Itinerary document model; the wire contract between the model
// output and every downstream consumer (pruning, export, presentation).
package itinerary

// Pacing descriptors accepted in Summary.Pace.
const (
	PaceRelaxed  = "relaxed"
	PaceModerate = "moderate"
	PacePacked   = "packed"
)

// Item types the model is asked to use. Not strictly enforced.
const (
	TypeSight    = "sight"
	TypeFood     = "food"
	TypeActivity = "activity"
	TypeTransfer = "transfer"
)

// Destination is the resolved trip destination. Fields are nullable: the
// model may be asked to choose a destination itself, and geocoding may fail.
type Destination struct {
	City    *string  `json:"city"`
	Country *string  `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// DateRange is the covered calendar window, ISO dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Item is a single stop within a day. Order within a day is meaningful.
type Item struct {
	Time        string   `json:"time"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	DurationMin int      `json:"duration_min"`
	Notes       string   `json:"notes,omitempty"`
	BookingURL  string   `json:"booking_url,omitempty"`
}

// DayPlan is one chronological day of the itinerary.
type DayPlan struct {
	Date  string `json:"date"`
	Theme string `json:"theme,omitempty"`
	Items []Item `json:"items"`
}

// Summary carries pacing, cost estimate and warnings for the whole trip.
type Summary struct {
	Pace       string   `json:"pace"`
	EstCostGBP float64  `json:"est_cost_gbp"`
	Warnings   []string `json:"warnings"`
}

// Itinerary is the validated day-by-day travel plan document.
type Itinerary struct {
	Destination Destination `json:"destination"`
	DateRange   DateRange   `json:"date_range"`
	DailyPlan   []DayPlan   `json:"daily_plan"`
	Summary     Summary     `json:"summary"`
}

// HasCoords reports whether the item carries a full coordinate.
func (it *Item) HasCoords() bool {
	return it.Lat != nil && it.Lon != nil
}
