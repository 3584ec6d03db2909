// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package store defines the Store abstraction the cell tower mirror is built
on (upsert/delete/point-lookup/prefix-scan/range-scan/watermark) and two
implementations: a DuckDB-backed production store and an in-memory store
for tests.

The only required index is the primary key (mcc, net, area, cell, radio);
geofence filters are post-filters applied during a scan, not
index-accelerated — see Store.Scan.
*/
package store
