package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDailyForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_date") != "2024-05-01" || q.Get("end_date") != "2024-05-03" {
			t.Errorf("unexpected date window: %s..%s", q.Get("start_date"), q.Get("end_date"))
		}
		if q.Get("latitude") == "" || q.Get("longitude") == "" {
			t.Error("missing coordinates")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"daily": {
				"time": ["2024-05-01", "2024-05-02", "2024-05-03"],
				"temperature_2m_max": [21.5, 22.0, 19.8],
				"temperature_2m_min": [13.1, 14.0, 12.5],
				"precipitation_probability_max": [10, 35, 80]
			}
		}`))
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL)
	fc, err := c.DailyForecast(context.Background(), 38.7223, -9.1393, "2024-05-01", "2024-05-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fc.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(fc.Days))
	}
	if fc.Days[0].Date != "2024-05-01" || fc.Days[0].TempMaxC != 21.5 {
		t.Errorf("unexpected first day: %+v", fc.Days[0])
	}
	if fc.Days[2].PrecipProb != 80 {
		t.Errorf("precip = %f, want 80", fc.Days[2].PrecipProb)
	}
}

func TestDailyForecast_DefaultWindow(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("start_date"); got != today {
			t.Errorf("start_date = %q, want today (%s)", got, today)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"daily": {"time": [], "temperature_2m_max": [], "temperature_2m_min": [], "precipitation_probability_max": []}}`))
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL)
	if _, err := c.DailyForecast(context.Background(), 1, 1, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDailyForecast_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL)
	if _, err := c.DailyForecast(context.Background(), 1, 1, "2024-05-01", "2024-05-02"); err == nil {
		t.Error("expected error on service failure")
	}
}
