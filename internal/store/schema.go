// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
schema.go - DuckDB schema management.

Schema strategy (pre-release): the full cells table is defined in a single
CREATE TABLE IF NOT EXISTS. There are no versioned migrations; schema
changes are delegated to an external tool, per the deployment contract.
*/
package store

import (
	"context"
	"fmt"
	"time"
)

func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// tableCreationQueries returns the DDL statements that bring an empty
// DuckDB database up to the schema this package expects.
func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS cells (
			mcc            USMALLINT NOT NULL,
			net            USMALLINT NOT NULL,
			area           UINTEGER NOT NULL,
			cell           UBIGINT NOT NULL,
			radio          VARCHAR NOT NULL,
			unit           USMALLINT,
			lon            REAL NOT NULL,
			lat            REAL NOT NULL,
			cell_range     UINTEGER NOT NULL,
			samples        UINTEGER NOT NULL,
			changeable     BOOLEAN NOT NULL,
			created        TIMESTAMP NOT NULL,
			updated        TIMESTAMP NOT NULL,
			average_signal SMALLINT,
			PRIMARY KEY (mcc, net, area, cell, radio)
		)`,
		`CREATE TABLE IF NOT EXISTS sync_watermark (
			id        INTEGER PRIMARY KEY DEFAULT 1,
			last_sync TIMESTAMP NOT NULL,
			CHECK (id = 1)
		)`,
	}
}

func (s *duckdbStore) createSchema() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("store: failed to execute schema statement: %w", err)
		}
	}
	return nil
}
