// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package api exposes the cell store over HTTP: the four public routes
(/health, /cell, /cells, /cells/lookup) plus /metrics, built on
go-chi/chi/v5 and backed by the internal/query package for every
non-trivial decision. Handlers decode and validate request parameters,
call into query, and map the result (or error) onto the wire contract
in spec §7 — a bare JSON body on success, {"error": "..."} on failure.
*/
package api
