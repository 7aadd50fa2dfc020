package itinerary

import (
	"strings"
	"testing"
)

func sampleItinerary() *Itinerary {
	city := "Lisbon"
	country := "Portugal"
	lat := 38.7223
	lon := -9.1393
	return &Itinerary{
		Destination: Destination{City: &city, Country: &country, Lat: &lat, Lon: &lon},
		DateRange:   DateRange{Start: "2024-05-01", End: "2024-05-02"},
		DailyPlan: []DayPlan{
			{
				Date:  "2024-05-01",
				Theme: "Old town",
				Items: []Item{
					{Time: "09:00", Name: "Alfama walk", Type: TypeActivity, Lat: &lat, Lon: &lon, DurationMin: 120, Notes: "wear good shoes"},
					{Time: "14:00", Name: "Local cuisine", Type: TypeFood, DurationMin: 90},
				},
			},
			{
				Date:  "2024-05-02",
				Items: []Item{{Time: "10:30", Name: "Tram 28", Type: TypeSight, DurationMin: 60}},
			},
		},
		Summary: Summary{Pace: PaceModerate, EstCostGBP: 400, Warnings: []string{"May is busy"}},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleItinerary())

	for _, want := range []string{
		"# Lisbon (Portugal)",
		"**Dates:** 2024-05-01 → 2024-05-02",
		"## 2024-05-01 — Old town",
		"## 2024-05-02",
		"**Alfama walk**",
		"openstreetmap.org",
		"wear good shoes",
		"May is busy",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_NilDestination(t *testing.T) {
	it := sampleItinerary()
	it.Destination = Destination{}
	md := Markdown(it)
	if !strings.Contains(md, "# Trip") {
		t.Errorf("expected placeholder title, got:\n%s", md)
	}
}

func TestICS(t *testing.T) {
	out := ICS(sampleItinerary())

	if count := strings.Count(out, "BEGIN:VEVENT"); count != 3 {
		t.Errorf("got %d events, want 3", count)
	}
	if !strings.Contains(out, "SUMMARY:Alfama walk") {
		t.Errorf("missing event summary:\n%s", out)
	}
	// 09:00 start + 120 min duration.
	if !strings.Contains(out, "DTSTART:20240501T090000") {
		t.Errorf("missing start time:\n%s", out)
	}
	if !strings.Contains(out, "DTEND:20240501T110000") {
		t.Errorf("missing end time derived from duration:\n%s", out)
	}
	if !strings.Contains(out, "openstreetmap.org") {
		t.Errorf("missing map link in description:\n%s", out)
	}
}

func TestICS_SkipsUnparseableTimes(t *testing.T) {
	it := sampleItinerary()
	it.DailyPlan[0].Items[0].Time = "morning"

	out := ICS(it)
	if count := strings.Count(out, "BEGIN:VEVENT"); count != 2 {
		t.Errorf("got %d events, want 2 (unparseable time skipped)", count)
	}
}
