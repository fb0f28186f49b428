// Package geo has great-circle distance, geofence and diameter helpers.
package geo

import (
	"github.com/golang/geo/s2"
	"github.com/huangsam/homebase/schema"
)

// EarthRadiusMeters is the mean Earth radius used for all distances.
const EarthRadiusMeters = 6367000.0

// Distance returns the haversine distance between two points in meters.
func Distance(a, b schema.GeoPoint) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// WithinGeofence reports whether p lies strictly inside the circle around center.
// Points exactly on the boundary are outside.
func WithinGeofence(p, center schema.GeoPoint, radiusMeters float64) bool {
	return Distance(p, center) < radiusMeters
}

// Contains reports whether the geofence contains p.
func Contains(g schema.Geofence, p schema.GeoPoint) bool {
	return WithinGeofence(p, g.Center, g.RadiusMeters)
}

// Diameter returns the largest pairwise distance among points, or 0 when there
// are fewer than two. Each unordered pair is compared once.
func Diameter(points []schema.GeoPoint) float64 {
	var maxDist float64
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if d := Distance(points[i], points[j]); d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}
