// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package query

import "github.com/golang/geo/s2"

// Geofence is the optional bounding box a range scan can be narrowed to.
// All four fields are either unset together or set together — see
// ValidateGeofence.
type Geofence struct {
	MinLat, MaxLat *float32
	MinLon, MaxLon *float32
}

// set reports whether any bound is present.
func (g Geofence) set() bool {
	return g.MinLat != nil || g.MaxLat != nil || g.MinLon != nil || g.MaxLon != nil
}

// complete reports whether all four bounds are present.
func (g Geofence) complete() bool {
	return g.MinLat != nil && g.MaxLat != nil && g.MinLon != nil && g.MaxLon != nil
}

// ValidateGeofence checks g against the all-or-nothing rule: if any bound
// is present, all four must be, each must be a valid coordinate, and each
// min must not exceed its max. An empty Geofence is valid.
func ValidateGeofence(g Geofence) error {
	if !g.set() {
		return nil
	}
	if !g.complete() {
		return ErrInvalidGeofence
	}
	if !validCoordinate(float64(*g.MinLat), float64(*g.MinLon)) ||
		!validCoordinate(float64(*g.MaxLat), float64(*g.MaxLon)) {
		return ErrInvalidGeofence
	}
	if *g.MinLat > *g.MaxLat || *g.MinLon > *g.MaxLon {
		return ErrInvalidGeofence
	}
	return nil
}

// validCoordinate reports whether (lat, lon) is a point s2 considers a
// well-formed location on the sphere, catching out-of-range inputs like
// lat=200 before they reach the store as a silently-empty filter.
func validCoordinate(lat, lon float64) bool {
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}
