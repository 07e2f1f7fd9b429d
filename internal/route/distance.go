package route

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is Earth's mean radius in kilometers
const EarthRadiusKm = 6371.0

// GreatCircleKm calculates the great-circle distance between two points in kilometers
func GreatCircleKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// SegmentDistanceKm calculates the great-circle distance between two
// airports by IATA code. Returns false when either airport is not in
// the reference table.
func SegmentDistanceKm(origin, destination string) (float64, bool) {
	a, ok := LookupAirport(origin)
	if !ok {
		return 0, false
	}
	b, ok := LookupAirport(destination)
	if !ok {
		return 0, false
	}
	return GreatCircleKm(a.Lat, a.Lon, b.Lat, b.Lon), true
}
