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

// GetCell resolves the §4.4.1 single-cell GET. When radio is non-nil it
// is a primary-key point lookup; when nil, every row across radios for
// the same (mcc, net, area, cell) is fetched and the best match per
// models.IsBetterLookupCandidate is returned.
func GetCell(ctx context.Context, s store.Store, mcc, net uint16, area uint32, cell uint64, radio *models.Radio) (models.Cell, bool, error) {
	if radio != nil {
		start := time.Now()
		c, ok, err := s.GetByPK(ctx, models.PK{MCC: mcc, Net: net, Area: area, CellID: cell, Radio: *radio})
		metrics.StoreQueryDuration.WithLabelValues("get_by_pk").Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.StoreQueryErrors.WithLabelValues("get_by_pk").Inc()
		}
		return c, ok, err
	}

	start := time.Now()
	rows, err := s.GetByPrefix(ctx, mcc, net, area, cell)
	metrics.StoreQueryDuration.WithLabelValues("get_by_prefix").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("get_by_prefix").Inc()
		return models.Cell{}, false, err
	}
	best, ok := bestOf(rows)
	return best, ok, nil
}

// bestOf reduces rows to the single best candidate per
// models.IsBetterLookupCandidate, or ok=false if rows is empty.
func bestOf(rows []models.Cell) (best models.Cell, ok bool) {
	for _, c := range rows {
		if !ok || models.IsBetterLookupCandidate(c, best) {
			best = c
			ok = true
		}
	}
	return best, ok
}
