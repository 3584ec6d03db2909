// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package models defines the data structures shared across the cell tower
location service: the Cell entity mirrored from the upstream dataset, its
composite primary key and best-match ordering, the Radio enum, and the
sync watermark.

See Also:

  - internal/store: persistence built around Cell and PK
  - internal/query: best-match selection and cursor encoding over Cell
  - internal/ingest: CSV rows decoded into Cell
*/
package models
