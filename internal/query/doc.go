// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package query implements the read-only request/response contracts the HTTP
surface exposes over the cell store: a single-cell point or best-match
lookup, a cursor-paginated range scan, and a deduplicated batch lookup.

Every function here is pure with respect to HTTP framing — it accepts
already-parsed Go values and a store.Store, and returns a result or a
typed error. The api package is responsible for decoding request
parameters into these types and mapping returned errors to status codes.
*/
package query
