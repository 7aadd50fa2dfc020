package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// POI is a nearby point of interest, used only as prompt grounding.
type POI struct {
	Name     string
	Lat      float64
	Lon      float64
	Category string
}

// POIFinder resolves nearby points of interest for a coordinate. An empty
// result is not an error; the planner treats any failure as "no hints".
type POIFinder interface {
	FindNearby(ctx context.Context, lat, lon float64, radiusM, limit int) ([]POI, error)
}

// OverpassFinder queries the OpenStreetMap Overpass API for tourist sights,
// food spots and parks around a coordinate. Keyless; used as the default
// POI source.
type OverpassFinder struct {
	baseURL    string
	httpClient *http.Client
}

// NewOverpassFinder creates a finder for the given Overpass endpoint
// (e.g. https://overpass-api.de/api/interpreter).
func NewOverpassFinder(baseURL string) *OverpassFinder {
	return &OverpassFinder{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type overpassResponse struct {
	Elements []struct {
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// FindNearby fetches named tourism, restaurant, cafe, bar, museum and park
// nodes within radiusM metres of the coordinate, up to limit results.
func (f *OverpassFinder) FindNearby(ctx context.Context, lat, lon float64, radiusM, limit int) ([]POI, error) {
	query := fmt.Sprintf(`
[out:json][timeout:25];
(
  node["tourism"](around:%d,%f,%f);
  node["amenity"="restaurant"](around:%d,%f,%f);
  node["amenity"="cafe"](around:%d,%f,%f);
  node["amenity"="bar"](around:%d,%f,%f);
  node["amenity"="museum"](around:%d,%f,%f);
  node["leisure"="park"](around:%d,%f,%f);
);
out center %d;`,
		radiusM, lat, lon,
		radiusM, lat, lon,
		radiusM, lat, lon,
		radiusM, lat, lon,
		radiusM, lat, lon,
		radiusM, lat, lon,
		limit)

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse overpass payload: %w", err)
	}

	pois := make([]POI, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		category := el.Tags["amenity"]
		if category == "" {
			category = el.Tags["tourism"]
		}
		if category == "" {
			category = el.Tags["leisure"]
		}
		if category == "" {
			category = "poi"
		}
		pois = append(pois, POI{Name: name, Lat: el.Lat, Lon: el.Lon, Category: category})
		if len(pois) >= limit {
			break
		}
	}
	return pois, nil
}
