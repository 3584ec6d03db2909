// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package store

import (
	"context"
	"time"

	"github.com/racemap/cell-service/internal/models"
)

// ScanFilter narrows a Scan to a subset of rows. Nil fields are
// unconstrained. Geofence bounds are validated by the query layer before
// reaching the store (all-or-nothing, min <= max); the store applies them
// as a post-filter over the PK-ordered scan.
type ScanFilter struct {
	MCC   *uint16
	MNC   *uint16
	Radio *models.Radio

	MinLat, MaxLat *float32
	MinLon, MaxLon *float32
}

// HasGeofence reports whether any geofence bound is set.
func (f ScanFilter) HasGeofence() bool {
	return f.MinLat != nil || f.MaxLat != nil || f.MinLon != nil || f.MaxLon != nil
}

// Matches reports whether c satisfies every set field of f. The in-memory
// store filters with it; the DuckDB store does not call it and expresses
// the same filter as SQL WHERE clauses instead.
func (f ScanFilter) Matches(c models.Cell) bool {
	if f.MCC != nil && c.MCC != *f.MCC {
		return false
	}
	if f.MNC != nil && c.Net != *f.MNC {
		return false
	}
	if f.Radio != nil && c.Radio != *f.Radio {
		return false
	}
	if f.MinLat != nil && c.Lat < *f.MinLat {
		return false
	}
	if f.MaxLat != nil && c.Lat > *f.MaxLat {
		return false
	}
	if f.MinLon != nil && c.Lon < *f.MinLon {
		return false
	}
	if f.MaxLon != nil && c.Lon > *f.MaxLon {
		return false
	}
	return true
}

// Store abstracts the cell tower mirror's persistence layer behind the
// seven operations the query layer (C5) and ingest pipeline (C2) need,
// so the integration test suite can swap in an in-memory implementation.
type Store interface {
	// UpsertBatch atomically applies rows: existing PKs are fully
	// overwritten, missing PKs are inserted. Row order within the batch
	// decides the last-writer-wins outcome for duplicate PKs.
	UpsertBatch(ctx context.Context, rows []models.Cell) error

	// DeleteByPK removes rows by primary key. Used by diff ingest only;
	// missing keys are silently ignored.
	DeleteByPK(ctx context.Context, pks []models.PK) error

	// GetByPK returns the row at pk, or ok=false if absent.
	GetByPK(ctx context.Context, pk models.PK) (cell models.Cell, ok bool, err error)

	// GetByPrefix returns every row for the given (mcc, net, area, cell)
	// tuple across all radios, ordered by PK ascending. Used for the
	// no-radio single-cell GET (best-match) and batch lookup.
	GetByPrefix(ctx context.Context, mcc uint16, net uint16, area uint32, cell uint64) ([]models.Cell, error)

	// Scan returns a PK-ordered ascending page of rows matching filter,
	// starting strictly after cursor (nil cursor starts from the
	// beginning). It returns at most limit rows and hasMore indicating
	// whether further matching rows exist beyond the page.
	Scan(ctx context.Context, filter ScanFilter, cursor *models.PK, limit int) (rows []models.Cell, hasMore bool, err error)

	// WatermarkGet returns the persisted sync watermark.
	WatermarkGet(ctx context.Context) (models.Watermark, error)

	// WatermarkSet persists t as the new sync watermark.
	WatermarkSet(ctx context.Context, t time.Time) error

	// Close releases any held resources.
	Close() error
}
