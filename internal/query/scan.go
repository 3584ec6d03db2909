// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package query

import (
	"context"
	"time"

	"github.com/racemap/cell-service/internal/metrics"
	"github.com/racemap/cell-service/internal/models"
	"github.com/racemap/cell-service/internal/store"
)

const (
	// DefaultPageSize is applied when a range scan request omits limit.
	DefaultPageSize = 100
	// MaxPageSize is the hard cap a caller-supplied limit is clamped to.
	MaxPageSize = 1000
)

// ScanRequest is the decoded form of a GET /cells query string.
type ScanRequest struct {
	MCC   *uint16
	MNC   *uint16
	Radio *models.Radio

	Geofence Geofence

	// Cursor is the raw, still-encoded cursor string, or "" for the first
	// page.
	Cursor string

	// Limit is the caller-supplied page size, or nil to take the default.
	Limit *int
}

// ScanResponse is the §4.4.2 range scan result.
type ScanResponse struct {
	Cells      []models.Cell
	NextCursor *string
	HasMore    bool
}

// RangeScan resolves a ScanRequest against s: it validates the geofence
// and cursor, clamps the page size, fetches one row beyond the page to
// derive hasMore without a second count query, and encodes the next
// cursor from the last returned row.
func RangeScan(ctx context.Context, s store.Store, req ScanRequest) (ScanResponse, error) {
	if err := ValidateGeofence(req.Geofence); err != nil {
		return ScanResponse{}, err
	}

	var cursorPK *models.PK
	if req.Cursor != "" {
		pk, err := DecodeCursor(req.Cursor)
		if err != nil {
			return ScanResponse{}, err
		}
		cursorPK = &pk
	}

	limit := DefaultPageSize
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if limit < 0 {
		limit = 0
	}

	filter := store.ScanFilter{
		MCC:   req.MCC,
		MNC:   req.MNC,
		Radio: req.Radio,
	}
	if req.Geofence.set() {
		filter.MinLat, filter.MaxLat = req.Geofence.MinLat, req.Geofence.MaxLat
		filter.MinLon, filter.MaxLon = req.Geofence.MinLon, req.Geofence.MaxLon
	}

	start := time.Now()
	rows, hasMore, err := s.Scan(ctx, filter, cursorPK, limit)
	metrics.StoreQueryDuration.WithLabelValues("scan").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("scan").Inc()
		return ScanResponse{}, err
	}

	resp := ScanResponse{Cells: rows, HasMore: hasMore}
	if hasMore && len(rows) > 0 {
		next := EncodeCursor(rows[len(rows)-1].PrimaryKey())
		resp.NextCursor = &next
	}
	return resp, nil
}
