// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package main is the entry point for the cell-location service: it
resolves cell tower identifiers to geographic coordinates from a
periodically-synced OpenCellID export, served over HTTP.

# Application Architecture

The server runs two supervised services under a Suture v4 tree:

	RootSupervisor ("cell-service")
	├── DataSupervisor ("data-layer")
	│   └── Scheduler (periodic OpenCellID sync, internal/schedule)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (internal/api — /health, /cell, /cells, /cells/lookup, /metrics)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config file
 2. Logging: zerolog with JSON/console output modes
 3. Store: DuckDB-backed cell store
 4. Fetch client: circuit-breaker-protected OpenCellID HTTP client
 5. Scheduler: wraps store + fetch client in a suture.Service
 6. HTTP server: chi router over the store
 7. Supervisor tree: both services registered and run to completion

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest
priority wins: environment variables > config file > defaults). Core
variables:

	DATABASE_URL        # DuckDB file path
	OPENCELLID_API_KEY   # required, upstream credential
	UPSTREAM_BASE_URL    # upstream export base URL
	HTTP_PORT            # HTTP listener port
	SYNC_TICK_INTERVAL    # how often the scheduler checks for new data
	SYNC_BATCH_SIZE       # read and validated into sync.batch_size; ingest
	                      # batches stay fixed at ingest.BatchSize (1000 rows)
	LOG_LEVEL, LOG_FORMAT

See internal/config for the full set and their defaults.

# Signal Handling

SIGINT and SIGTERM cancel the root context, which the supervisor tree
propagates to both services: the HTTP server drains in-flight requests
within its shutdown timeout, and an in-progress sync is cancelled through
the same context (its fetch and ingest stop), so the scheduler returns
once that run has unwound, leaving the watermark unchanged.

SIGUSR1 triggers an out-of-band sync immediately via
Scheduler.TriggerSync, without waiting for the next tick.

# See Also

  - internal/config: configuration management
  - internal/supervisor: process supervision
  - internal/api: HTTP handlers and routing
  - internal/schedule: the sync scheduler
*/
package main
