// Package geo contains pure geographic computation helpers.
package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// OSMDeepLink builds an openstreetmap.org link centred on the given point,
// used to annotate exported itineraries.
func OSMDeepLink(lat, lon float64, zoom int) string {
	return fmt.Sprintf("https://www.openstreetmap.org/#map=%d/%f/%f", zoom, lat, lon)
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
