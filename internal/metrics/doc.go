// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package metrics provides Prometheus metrics collection and export for the
cell store, the sync scheduler, the upstream circuit breaker, and the
query API.

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3000/metrics

See metrics.go for the collector definitions.
*/
package metrics
