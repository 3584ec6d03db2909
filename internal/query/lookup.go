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

// MaxLookupKeys is the per-request cap on resolved batch-lookup keys;
// entries beyond it are returned as nil without querying the store.
const MaxLookupKeys = 50

// LookupKey identifies a cell by its upstream-facing (mcc, mnc, lac, cid)
// naming, as opposed to the store's (mcc, net, area, cell) naming — the
// two are the same four columns, renamed at the API boundary per the
// batch lookup request shape.
type LookupKey struct {
	MCC uint16
	MNC uint16
	LAC uint32
	CID uint64
}

func (k LookupKey) prefixArgs() (mcc, net uint16, area uint32, cell uint64) {
	return k.MCC, k.MNC, k.LAC, k.CID
}

// BatchLookup resolves keys to their best-match cell (or nil), preserving
// request order and length. Only the first MaxLookupKeys entries are
// resolved, with one store query per distinct key among them; entries
// beyond that bound are left nil.
func BatchLookup(ctx context.Context, s store.Store, keys []LookupKey) ([]*models.Cell, error) {
	out := make([]*models.Cell, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	resolved := make(map[LookupKey]*models.Cell)
	queried := 0
	for i, k := range keys {
		if i >= MaxLookupKeys {
			break
		}
		if _, done := resolved[k]; done {
			continue
		}
		queried++

		mcc, net, area, cell := k.prefixArgs()
		start := time.Now()
		rows, err := s.GetByPrefix(ctx, mcc, net, area, cell)
		metrics.StoreQueryDuration.WithLabelValues("get_by_prefix").Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.StoreQueryErrors.WithLabelValues("get_by_prefix").Inc()
			return nil, err
		}

		if best, ok := bestOf(rows); ok {
			resolved[k] = &best
		} else {
			resolved[k] = nil
		}
	}

	for i, k := range keys {
		if i >= MaxLookupKeys {
			break
		}
		out[i] = resolved[k]
	}
	return out, nil
}
