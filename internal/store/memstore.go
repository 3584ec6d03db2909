// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/racemap/cell-service/internal/models"
)

// memStore is an in-memory Store implementation for tests. It is not
// tuned for production scale — it rebuilds a sorted view on every Scan —
// but it implements the same ordering and filter semantics as the DuckDB
// store so the query layer's tests can run without a real database.
type memStore struct {
	mu        sync.RWMutex
	rows      map[models.PK]models.Cell
	watermark models.Watermark
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() Store {
	return &memStore{rows: make(map[models.PK]models.Cell)}
}

func (s *memStore) UpsertBatch(_ context.Context, rows []models.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		s.rows[r.PrimaryKey()] = r
	}
	return nil
}

func (s *memStore) DeleteByPK(_ context.Context, pks []models.PK) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pk := range pks {
		delete(s.rows, pk)
	}
	return nil
}

func (s *memStore) GetByPK(_ context.Context, pk models.PK) (models.Cell, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.rows[pk]
	return c, ok, nil
}

func (s *memStore) GetByPrefix(_ context.Context, mcc uint16, net uint16, area uint32, cell uint64) ([]models.Cell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Cell
	for pk, c := range s.rows {
		if pk.MCC == mcc && pk.Net == net && pk.Area == area && pk.CellID == cell {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PrimaryKey().Less(out[j].PrimaryKey()) })
	return out, nil
}

func (s *memStore) Scan(_ context.Context, filter ScanFilter, cursor *models.PK, limit int) ([]models.Cell, bool, error) {
	s.mu.RLock()
	all := make([]models.Cell, 0, len(s.rows))
	for _, c := range s.rows {
		all = append(all, c)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].PrimaryKey().Less(all[j].PrimaryKey()) })

	var matched []models.Cell
	for _, c := range all {
		if cursor != nil && !cursor.Less(c.PrimaryKey()) {
			continue
		}
		if !filter.Matches(c) {
			continue
		}
		matched = append(matched, c)
	}

	if limit <= 0 {
		return nil, len(matched) > 0, nil
	}

	hasMore := len(matched) > limit
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, hasMore, nil
}

func (s *memStore) WatermarkGet(_ context.Context) (models.Watermark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watermark, nil
}

func (s *memStore) WatermarkSet(_ context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watermark = models.Watermark{LastSync: t, Set: true}
	return nil
}

func (s *memStore) Close() error { return nil }
