// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package ingest

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/racemap/cell-service/internal/logging"
	"github.com/racemap/cell-service/internal/metrics"
	"github.com/racemap/cell-service/internal/models"
	"github.com/racemap/cell-service/internal/store"
)

// Mode distinguishes a full snapshot ingest from a per-day diff ingest.
type Mode string

const (
	ModeFull Mode = "full"
	ModeDiff Mode = "diff"
)

// BatchSize is the number of rows accumulated before a batch is flushed
// to the store.
const BatchSize = 1000

// Run decodes a gzip-compressed CSV cell export from r and applies it to
// s, batch by batch. It never holds a long transaction over the whole
// file: each batch is committed before the next is read, so a mid-stream
// failure leaves the store at a consistent, partially-advanced state.
//
// In full mode every row is an upsert. In diff mode a row matching the
// tombstone sentinel (changeable=false, samples=0) is applied as a
// delete-by-PK instead; row order within the diff is preserved, so within
// a batch the last row for a given PK decides its fate.
func Run(ctx context.Context, r io.Reader, s store.Store, mode Mode) (Stats, error) {
	stats := Stats{StartTime: time.Now()}
	defer func() { stats.EndTime = time.Now() }()

	gz, err := gzip.NewReader(r)
	if err != nil {
		return stats, fmt.Errorf("ingest: open gzip stream: %w", err)
	}
	defer func() { _ = gz.Close() }()

	reader := csv.NewReader(gz)
	reader.FieldsPerRecord = csvColumns
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		return stats, fmt.Errorf("ingest: read header: %w", err)
	}

	upserts := make([]models.Cell, 0, BatchSize)
	deletes := make([]models.PK, 0, BatchSize)
	line := 1

	flush := func() error {
		if len(upserts) > 0 {
			if err := s.UpsertBatch(ctx, upserts); err != nil {
				return fmt.Errorf("ingest: upsert batch: %w", err)
			}
			metrics.SyncRecordsProcessed.WithLabelValues(string(mode), "upsert").Add(float64(len(upserts)))
			stats.RowsUpserted += int64(len(upserts))
			upserts = upserts[:0]
		}
		if len(deletes) > 0 {
			if err := s.DeleteByPK(ctx, deletes); err != nil {
				return fmt.Errorf("ingest: delete batch: %w", err)
			}
			metrics.SyncRecordsProcessed.WithLabelValues(string(mode), "delete").Add(float64(len(deletes)))
			stats.RowsDeleted += int64(len(deletes))
			deletes = deletes[:0]
		}
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("ingest: read line %d: %w", line+1, err)
		}
		line++
		stats.RowsRead++

		row := make([]string, len(record))
		copy(row, record)

		cell, err := parseRow(row, line)
		if err != nil {
			stats.RowsRejected++
			metrics.SyncRecordsProcessed.WithLabelValues(string(mode), "reject").Inc()
			logging.Debug().Err(err).Int("line", line).Msg("rejected cell row")
			continue
		}

		if mode == ModeDiff && isTombstone(cell) {
			if len(upserts) > 0 {
				if err := flush(); err != nil {
					return stats, err
				}
			}
			deletes = append(deletes, cell.PrimaryKey())
		} else {
			if len(deletes) > 0 {
				if err := flush(); err != nil {
					return stats, err
				}
			}
			upserts = append(upserts, cell)
		}

		if len(upserts) >= BatchSize || len(deletes) >= BatchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}

	logging.Info().
		Str("mode", string(mode)).
		Int64("rows_read", stats.RowsRead).
		Int64("rows_upserted", stats.RowsUpserted).
		Int64("rows_deleted", stats.RowsDeleted).
		Int64("rows_rejected", stats.RowsRejected).
		Dur("elapsed", stats.Elapsed()).
		Msg("ingest run completed")

	return stats, nil
}
