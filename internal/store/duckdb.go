// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/racemap/cell-service/internal/config"
	"github.com/racemap/cell-service/internal/metrics"
	"github.com/racemap/cell-service/internal/models"
)

// duckdbStore is the production Store implementation, backed by a DuckDB
// file and accessed through database/sql.
type duckdbStore struct {
	db *sql.DB
}

// Open creates (if needed) and opens the DuckDB-backed cell store at
// cfg.Path, creating its schema if absent.
func Open(cfg config.DatabaseConfig) (Store, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("store: failed to create database directory %s: %w", dir, err)
		}
	}

	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	connStr := fmt.Sprintf(
		"%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s",
		cfg.Path, numThreads, cfg.MaxMemory, preserveOrder,
	)

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("store: failed to open database: %w", err)
	}

	db.SetMaxOpenConns(max(numThreads, 1))
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	s := &duckdbStore{db: db}
	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *duckdbStore) Close() error {
	return s.db.Close()
}

func (s *duckdbStore) UpsertBatch(ctx context.Context, rows []models.Cell) error {
	start := time.Now()
	defer func() {
		metrics.StoreQueryDuration.WithLabelValues("upsert_batch").Observe(time.Since(start).Seconds())
	}()

	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("upsert_batch").Inc()
		return fmt.Errorf("store: begin upsert batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertQuery)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("upsert_batch").Inc()
		return fmt.Errorf("store: prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range rows {
		if _, err := stmt.ExecContext(ctx,
			c.MCC, c.Net, c.Area, c.CellID, string(c.Radio),
			c.Unit, c.Lon, c.Lat, c.CellRange, c.Samples, c.Changeable,
			c.Created.UTC(), c.Updated.UTC(), c.AverageSignal,
		); err != nil {
			metrics.StoreQueryErrors.WithLabelValues("upsert_batch").Inc()
			return fmt.Errorf("store: upsert row %+v: %w", c.PrimaryKey(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.StoreQueryErrors.WithLabelValues("upsert_batch").Inc()
		return fmt.Errorf("store: commit upsert batch: %w", err)
	}
	return nil
}

const upsertQuery = `INSERT INTO cells (
	mcc, net, area, cell, radio, unit, lon, lat, cell_range, samples,
	changeable, created, updated, average_signal
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (mcc, net, area, cell, radio) DO UPDATE SET
	unit = EXCLUDED.unit,
	lon = EXCLUDED.lon,
	lat = EXCLUDED.lat,
	cell_range = EXCLUDED.cell_range,
	samples = EXCLUDED.samples,
	changeable = EXCLUDED.changeable,
	created = EXCLUDED.created,
	updated = EXCLUDED.updated,
	average_signal = EXCLUDED.average_signal`

func (s *duckdbStore) DeleteByPK(ctx context.Context, pks []models.PK) error {
	start := time.Now()
	defer func() {
		metrics.StoreQueryDuration.WithLabelValues("delete_by_pk").Observe(time.Since(start).Seconds())
	}()

	if len(pks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("delete_by_pk").Inc()
		return fmt.Errorf("store: begin delete batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `DELETE FROM cells WHERE mcc = ? AND net = ? AND area = ? AND cell = ? AND radio = ?`)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("delete_by_pk").Inc()
		return fmt.Errorf("store: prepare delete: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, pk := range pks {
		if _, err := stmt.ExecContext(ctx, pk.MCC, pk.Net, pk.Area, pk.CellID, string(pk.Radio)); err != nil {
			metrics.StoreQueryErrors.WithLabelValues("delete_by_pk").Inc()
			return fmt.Errorf("store: delete row %+v: %w", pk, err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.StoreQueryErrors.WithLabelValues("delete_by_pk").Inc()
		return fmt.Errorf("store: commit delete batch: %w", err)
	}
	return nil
}

func (s *duckdbStore) GetByPK(ctx context.Context, pk models.PK) (models.Cell, bool, error) {
	start := time.Now()
	defer func() {
		metrics.StoreQueryDuration.WithLabelValues("get_by_pk").Observe(time.Since(start).Seconds())
	}()

	row := s.db.QueryRowContext(ctx, cellSelectColumns+` FROM cells WHERE mcc = ? AND net = ? AND area = ? AND cell = ? AND radio = ?`,
		pk.MCC, pk.Net, pk.Area, pk.CellID, string(pk.Radio))

	c, err := scanCell(row)
	if err == sql.ErrNoRows {
		return models.Cell{}, false, nil
	}
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("get_by_pk").Inc()
		return models.Cell{}, false, fmt.Errorf("store: get by pk: %w", err)
	}
	return c, true, nil
}

func (s *duckdbStore) GetByPrefix(ctx context.Context, mcc uint16, net uint16, area uint32, cell uint64) ([]models.Cell, error) {
	start := time.Now()
	defer func() {
		metrics.StoreQueryDuration.WithLabelValues("get_by_prefix").Observe(time.Since(start).Seconds())
	}()

	rows, err := s.db.QueryContext(ctx,
		cellSelectColumns+` FROM cells WHERE mcc = ? AND net = ? AND area = ? AND cell = ? ORDER BY mcc, net, area, cell, radio ASC`,
		mcc, net, area, cell,
	)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("get_by_prefix").Inc()
		return nil, fmt.Errorf("store: get by prefix: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCells(rows)
}

func (s *duckdbStore) Scan(ctx context.Context, filter ScanFilter, cursor *models.PK, limit int) ([]models.Cell, bool, error) {
	start := time.Now()
	defer func() {
		metrics.StoreQueryDuration.WithLabelValues("scan").Observe(time.Since(start).Seconds())
	}()

	var where []string
	var args []interface{}

	if filter.MCC != nil {
		where = append(where, "mcc = ?")
		args = append(args, *filter.MCC)
	}
	if filter.MNC != nil {
		where = append(where, "net = ?")
		args = append(args, *filter.MNC)
	}
	if filter.Radio != nil {
		where = append(where, "radio = ?")
		args = append(args, string(*filter.Radio))
	}
	if filter.MinLat != nil {
		where = append(where, "lat >= ?")
		args = append(args, *filter.MinLat)
	}
	if filter.MaxLat != nil {
		where = append(where, "lat <= ?")
		args = append(args, *filter.MaxLat)
	}
	if filter.MinLon != nil {
		where = append(where, "lon >= ?")
		args = append(args, *filter.MinLon)
	}
	if filter.MaxLon != nil {
		where = append(where, "lon <= ?")
		args = append(args, *filter.MaxLon)
	}

	if cursor != nil {
		predicate, cursorArgs := cursorPredicate(*cursor)
		where = append(where, predicate)
		args = append(args, cursorArgs...)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = ` WHERE ` + strings.Join(where, " AND ")
	}

	if limit <= 0 {
		var exists int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM cells`+whereClause+` LIMIT 1`, args...).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		if err != nil {
			metrics.StoreQueryErrors.WithLabelValues("scan").Inc()
			return nil, false, fmt.Errorf("store: scan existence check: %w", err)
		}
		return nil, true, nil
	}

	query := cellSelectColumns + ` FROM cells` + whereClause + ` ORDER BY mcc, net, area, cell, radio ASC LIMIT ?`
	args = append(args, limit+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("scan").Inc()
		return nil, false, fmt.Errorf("store: scan: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cells, err := scanCells(rows)
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("scan").Inc()
		return nil, false, err
	}

	hasMore := len(cells) > limit
	if hasMore {
		cells = cells[:limit]
	}
	return cells, hasMore, nil
}

// cursorPredicate builds the "PK > cursor" OR-chain in the PK's column
// order (mcc, net, area, cell, radio), mirroring the tuple-comparison
// pattern used for cursor-based range scans.
func cursorPredicate(cursor models.PK) (string, []interface{}) {
	clauses := []string{
		"mcc > ?",
		"(mcc = ? AND net > ?)",
		"(mcc = ? AND net = ? AND area > ?)",
		"(mcc = ? AND net = ? AND area = ? AND cell > ?)",
		"(mcc = ? AND net = ? AND area = ? AND cell = ? AND radio > ?)",
	}
	predicate := "(" + strings.Join(clauses, " OR ") + ")"

	args := []interface{}{
		cursor.MCC,
		cursor.MCC, cursor.Net,
		cursor.MCC, cursor.Net, cursor.Area,
		cursor.MCC, cursor.Net, cursor.Area, cursor.CellID,
		cursor.MCC, cursor.Net, cursor.Area, cursor.CellID, string(cursor.Radio),
	}
	return predicate, args
}

func (s *duckdbStore) WatermarkGet(ctx context.Context) (models.Watermark, error) {
	row := s.db.QueryRowContext(ctx, `SELECT last_sync FROM sync_watermark WHERE id = 1`)

	var t time.Time
	if err := row.Scan(&t); err == sql.ErrNoRows {
		return models.Watermark{}, nil
	} else if err != nil {
		return models.Watermark{}, fmt.Errorf("store: watermark get: %w", err)
	}
	return models.Watermark{LastSync: t.UTC(), Set: true}, nil
}

func (s *duckdbStore) WatermarkSet(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sync_watermark (id, last_sync) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET last_sync = EXCLUDED.last_sync`,
		t.UTC(),
	)
	if err != nil {
		return fmt.Errorf("store: watermark set: %w", err)
	}
	return nil
}

const cellSelectColumns = `SELECT mcc, net, area, cell, radio, unit, lon, lat, cell_range, samples, changeable, created, updated, average_signal`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCell(row rowScanner) (models.Cell, error) {
	var c models.Cell
	var radio string
	if err := row.Scan(
		&c.MCC, &c.Net, &c.Area, &c.CellID, &radio, &c.Unit,
		&c.Lon, &c.Lat, &c.CellRange, &c.Samples, &c.Changeable,
		&c.Created, &c.Updated, &c.AverageSignal,
	); err != nil {
		return models.Cell{}, err
	}
	c.Radio = models.Radio(radio)
	return c, nil
}

func scanCells(rows *sql.Rows) ([]models.Cell, error) {
	var out []models.Cell
	for rows.Next() {
		c, err := scanCell(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate rows: %w", err)
	}
	return out, nil
}
