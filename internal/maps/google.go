package maps

import (
	"context"
	"fmt"
	"log"

	gmaps "googlemaps.github.io/maps"
)

// GoogleClient backs the keyed variants of the geocoding and POI
// collaborators with the Google Maps Platform. Selected by configuration
// when GOOGLE_MAPS_API_KEY is set; otherwise the keyless OSM collaborators
// are used.
type GoogleClient struct {
	client *gmaps.Client
}

// NewGoogleClient creates a Google Maps client with the given API key.
func NewGoogleClient(apiKey string) (*GoogleClient, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleClient{client: client}, nil
}

// FindCityCenter resolves the query via the Geocoding API. Failures are
// masked as not-found, matching the Geocoder contract.
func (g *GoogleClient) FindCityCenter(ctx context.Context, query string) (*CityInfo, error) {
	results, err := g.client.Geocode(ctx, &gmaps.GeocodingRequest{Address: query})
	if err != nil {
		log.Printf("geocode: google maps error: %v", err)
		return nil, nil
	}
	if len(results) == 0 {
		return nil, nil
	}

	hit := results[0]
	info := &CityInfo{
		Lat: hit.Geometry.Location.Lat,
		Lon: hit.Geometry.Location.Lng,
	}
	for _, comp := range hit.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "locality":
				info.City = comp.LongName
			case "country":
				info.Country = comp.LongName
			}
		}
	}
	if info.City == "" {
		info.City = hit.FormattedAddress
	}
	return info, nil
}

// FindNearby searches places around the coordinate via the Places API.
func (g *GoogleClient) FindNearby(ctx context.Context, lat, lon float64, radiusM, limit int) ([]POI, error) {
	resp, err := g.client.NearbySearch(ctx, &gmaps.NearbySearchRequest{
		Location: &gmaps.LatLng{Lat: lat, Lng: lon},
		Radius:   uint(radiusM),
		Type:     gmaps.PlaceTypeTouristAttraction,
	})
	if err != nil {
		return nil, fmt.Errorf("places search error: %w", err)
	}

	pois := make([]POI, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.Name == "" {
			continue
		}
		pois = append(pois, POI{
			Name:     r.Name,
			Lat:      r.Geometry.Location.Lat,
			Lon:      r.Geometry.Location.Lng,
			Category: "tourist_attraction",
		})
		if len(pois) >= limit {
			break
		}
	}
	return pois, nil
}
