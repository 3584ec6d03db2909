// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package ingest decodes the upstream CSV cell export into store rows.

The pipeline never materializes the whole file: a gzip reader wraps the
input stream, and encoding/csv parses it lazily, row by row. Rows are
buffered into batches of bounded size and flushed to the store
synchronously, so a mid-stream failure leaves the store at a consistent,
partially-advanced state rather than losing an in-memory backlog.

Full and diff ingests share the same row parser but differ in how a row
is dispatched: full ingest always upserts, diff ingest additionally
treats a tombstone sentinel row as a delete-by-PK.
*/
package ingest
