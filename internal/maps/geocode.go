// Package maps wraps the external grounding collaborators: geocoding,
// weather forecasts and point-of-interest lookup. All collaborators are
// best-effort; the planner must keep working when any of them degrades.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const userAgent = "TripSmith/1.0 (trip planning assistant)"

// CityInfo is a resolved city centre.
type CityInfo struct {
	City    string
	Country string
	Lat     float64
	Lon     float64
}

// Geocoder resolves a free-text place query to a city centre. Network and
// service failures are masked: implementations report not-found (nil, nil)
// rather than surfacing an error to the pipeline.
type Geocoder interface {
	FindCityCenter(ctx context.Context, query string) (*CityInfo, error)
}

// NominatimGeocoder resolves place names against the OpenStreetMap Nominatim
// API. Keyless; used as the default geocoder.
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimGeocoder creates a geocoder for the given Nominatim base URL
// (e.g. https://nominatim.openstreetmap.org).
func NewNominatimGeocoder(baseURL string) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type nominatimHit struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// FindCityCenter returns the top Nominatim hit for the query, or nil when
// nothing was found or the service could not be reached.
func (g *NominatimGeocoder) FindCityCenter(ctx context.Context, query string) (*CityInfo, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("geocode: nominatim unreachable: %v", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("geocode: nominatim returned status %d", resp.StatusCode)
		return nil, nil
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		log.Printf("geocode: bad nominatim payload: %v", err)
		return nil, nil
	}
	if len(hits) == 0 {
		return nil, nil
	}

	hit := hits[0]
	lat, latErr := strconv.ParseFloat(hit.Lat, 64)
	lon, lonErr := strconv.ParseFloat(hit.Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, nil
	}

	return &CityInfo{
		City:    cityFromDisplayName(hit.DisplayName),
		Country: countryFromDisplayName(hit.DisplayName),
		Lat:     lat,
		Lon:     lon,
	}, nil
}

// Nominatim display names are comma-separated, most specific first,
// country last.
func cityFromDisplayName(name string) string {
	if i := strings.Index(name, ","); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return strings.TrimSpace(name)
}

func countryFromDisplayName(name string) string {
	parts := strings.Split(name, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[len(parts)-1])
}

func (c *CityInfo) String() string {
	if c == nil {
		return "<not found>"
	}
	return fmt.Sprintf("%s, %s (%.4f, %.4f)", c.City, c.Country, c.Lat, c.Lon)
}
