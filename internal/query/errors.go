// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package query

import "errors"

// ErrInvalidCursor is returned when a caller-supplied cursor fails to
// decode, or decodes to a component out of range.
var ErrInvalidCursor = errors.New("query: invalid cursor")

// ErrInvalidGeofence is returned when the four geofence bounds are
// partially supplied, or a min bound exceeds its max, or a bound is not a
// valid coordinate.
var ErrInvalidGeofence = errors.New("query: invalid geofence bounds")
