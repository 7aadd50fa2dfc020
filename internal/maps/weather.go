package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ForecastDay is one day of the resolved forecast.
type ForecastDay struct {
	Date       string  `json:"date"`
	TempMaxC   float64 `json:"temp_max_c"`
	TempMinC   float64 `json:"temp_min_c"`
	PrecipProb float64 `json:"precip_prob"`
}

// Forecast is a daily forecast for a coordinate and date window. Advisory
// context only: it enriches the model prompt and nothing depends on it.
type Forecast struct {
	Days []ForecastDay `json:"days"`
}

// WeatherClient fetches daily forecasts from the Open-Meteo API. Keyless.
type WeatherClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewWeatherClient creates a client for the given Open-Meteo base URL
// (e.g. https://api.open-meteo.com).
func NewWeatherClient(baseURL string) *WeatherClient {
	return &WeatherClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type openMeteoResponse struct {
	Daily struct {
		Time              []string  `json:"time"`
		TemperatureMax    []float64 `json:"temperature_2m_max"`
		TemperatureMin    []float64 `json:"temperature_2m_min"`
		PrecipProbability []float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// DailyForecast returns the forecast for the coordinate over [start, end]
// (ISO dates). When either date is absent it defaults to a 3-day window
// starting today.
func (w *WeatherClient) DailyForecast(ctx context.Context, lat, lon float64, start, end string) (*Forecast, error) {
	if start == "" || end == "" {
		today := time.Now()
		start = today.Format("2006-01-02")
		end = today.AddDate(0, 0, 3).Format("2006-01-02")
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	params.Set("timezone", "auto")
	params.Set("start_date", start)
	params.Set("end_date", end)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	var parsed openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse weather payload: %w", err)
	}

	fc := &Forecast{}
	for i, date := range parsed.Daily.Time {
		day := ForecastDay{Date: date}
		if i < len(parsed.Daily.TemperatureMax) {
			day.TempMaxC = parsed.Daily.TemperatureMax[i]
		}
		if i < len(parsed.Daily.TemperatureMin) {
			day.TempMinC = parsed.Daily.TemperatureMin[i]
		}
		if i < len(parsed.Daily.PrecipProbability) {
			day.PrecipProb = parsed.Daily.PrecipProbability[i]
		}
		fc.Days = append(fc.Days, day)
	}
	return fc, nil
}
