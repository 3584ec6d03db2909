// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the cell store, the sync scheduler, the
// upstream fetcher's circuit breaker, and the query API.

var (
	// Store Metrics (C1)
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cellstore_query_duration_seconds",
			Help:    "Duration of cell store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cellstore_query_errors_total",
			Help: "Total number of cell store operation errors",
		},
		[]string{"operation"},
	)

	StoreRowCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cellstore_rows",
			Help: "Approximate number of cell rows currently stored",
		},
	)

	// API Endpoint Metrics (C6)
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Sync Operation Metrics (C4)
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of a sync run in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200},
		},
	)

	SyncRecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_records_processed_total",
			Help: "Total number of cell rows upserted or deleted during sync",
		},
		[]string{"mode", "action"}, // mode: full|diff, action: upsert|delete|reject
	)

	SyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_errors_total",
			Help: "Total number of aborted sync attempts",
		},
		[]string{"mode", "stage"}, // stage: fetch|ingest
	)

	SyncDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_scheduler_decisions_total",
			Help: "Total number of scheduler tick decisions",
		},
		[]string{"decision"}, // skip|diff|full
	)

	SyncWatermarkAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_watermark_age_seconds",
			Help: "Seconds since the last successful sync watermark update",
		},
	)

	// Circuit Breaker Metrics (C3)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "outcome"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// StateValue maps a gobreaker state name to the numeric gauge value used
// by CircuitBreakerState.
func StateValue(state string) float64 {
	switch state {
	case "closed":
		return 0
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return -1
	}
}
