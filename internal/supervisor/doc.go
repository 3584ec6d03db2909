// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package supervisor provides process supervision for the cell-location
service using suture v4.

It implements a two-branch supervisor tree that manages the lifecycle
of the service's two long-running components with failure isolation
between them.

# Overview

	RootSupervisor ("cell-service")
	├── DataSupervisor ("data-layer")
	│   └── Scheduler (internal/schedule.Scheduler — periodic OpenCellID sync)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (internal/supervisor/services — wraps net/http.Server)

This hierarchy ensures that:
  - A crash while ingesting an upstream batch doesn't take down the API
  - A panic recovered in an HTTP handler doesn't interrupt an in-flight sync
  - Each layer restarts independently, with its own failure counter

# Key Features

Automatic Restart:
  - Crashed services are automatically restarted
  - A FailureBackoff pause once failures exceed FailureThreshold prevents restart storms

Failure Isolation:
  - Each layer has independent failure counting
  - A child supervisor's failures don't propagate upward unless it itself
    exceeds its threshold

Graceful Shutdown:
  - Context cancellation triggers orderly shutdown
  - One configurable shutdown timeout, applied to the root and both layers
  - UnstoppedServiceReport for debugging hangs

# Usage Example

	func main() {
	    logger := slog.Default()
	    tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	    if err != nil {
	        log.Fatal(err)
	    }

	    tree.AddDataService(scheduler)
	    tree.AddAPIService(services.NewHTTPServerService(httpServer, 10*time.Second))

	    if err := tree.Serve(ctx); err != nil {
	        log.Printf("supervisor stopped: %v", err)
	    }
	}

# Configuration

The TreeConfig controls restart behavior, with suture's own
production defaults when left zero-valued:

	config := supervisor.TreeConfig{
	    FailureThreshold: 5.0,
	    FailureDecay:     30.0,
	    FailureBackoff:   15 * time.Second,
	    ShutdownTimeout:  10 * time.Second,
	}

# Service Interface

Both layers hold a suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

internal/schedule.Scheduler implements this directly (its sync loop
already takes a context and returns on cancellation); the HTTP server
is adapted via internal/supervisor/services.HTTPServerService, which
translates net/http's ListenAndServe/Shutdown pair into Serve.

# What Is Not Supervised

DuckDB is not supervised: it's an embedded library accessed through
internal/store, not a long-running process, and a crash there requires
a process restart regardless of supervision.

# See Also

  - internal/supervisor/services: the HTTP server Serve adapter
  - github.com/thejerf/suture/v4: underlying supervision library
*/
package supervisor
