// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package services provides suture.Service wrappers for components whose
native lifecycle isn't already context-aware.

HTTPServerService adapts the net/http ListenAndServe/Shutdown pattern to
suture's Serve(ctx) error contract: it starts the server in a goroutine
and, on context cancellation, calls Shutdown with a bounded timeout. The
sync scheduler needs no such wrapper — internal/schedule.Scheduler
implements suture.Service directly.
*/
package services
