// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package schedule

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/racemap/cell-service/internal/config"
	"github.com/racemap/cell-service/internal/fetch"
	"github.com/racemap/cell-service/internal/ingest"
	"github.com/racemap/cell-service/internal/logging"
	"github.com/racemap/cell-service/internal/metrics"
	"github.com/racemap/cell-service/internal/store"
)

// Scheduler drives the periodic sync tick and adapts it to suture's
// Serve pattern. It guards against overlapping runs with a mutex rather
// than a buffered queue: a tick that finds a run already in progress is
// simply skipped, since the next tick (or a manual trigger) will catch up.
type Scheduler struct {
	store     store.Store
	fetcher   *fetch.Client
	hourFence int
	interval  time.Duration

	mu        sync.Mutex
	triggerCh chan struct{}
}

// NewScheduler builds a Scheduler from its dependencies and sync config.
func NewScheduler(st store.Store, fetcher *fetch.Client, cfg config.SyncConfig) *Scheduler {
	return &Scheduler{
		store:     st,
		fetcher:   fetcher,
		hourFence: cfg.HourFence,
		interval:  cfg.TickInterval,
		triggerCh: make(chan struct{}, 1),
	}
}

// String implements suture's service-naming convention, used in logs.
func (s *Scheduler) String() string { return "sync-scheduler" }

// Serve implements suture.Service: it ticks at the configured interval
// until ctx is canceled, and also fires on a manual TriggerSync.
func (s *Scheduler) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		case <-s.triggerCh:
			s.tick(ctx)
		}
	}
}

// TriggerSync requests an out-of-band tick outside the normal interval,
// for operational use. It is non-blocking: a trigger that arrives while
// one is already pending is dropped.
func (s *Scheduler) TriggerSync() error {
	select {
	case s.triggerCh <- struct{}{}:
		return nil
	default:
		return fmt.Errorf("schedule: a sync trigger is already pending")
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if !s.mu.TryLock() {
		logging.Warn().Msg("sync tick skipped: a run is already in progress")
		return
	}
	defer s.mu.Unlock()

	start := time.Now()
	decision, stats, err := s.runOnce(ctx)
	metrics.SyncDuration.Observe(time.Since(start).Seconds())

	log := logging.Info().Str("decision", string(decision))
	if err != nil {
		log = logging.Error().Err(err).Str("decision", string(decision))
	}
	log.Int64("rows_read", stats.RowsRead).
		Int64("rows_upserted", stats.RowsUpserted).
		Int64("rows_deleted", stats.RowsDeleted).
		Int64("rows_rejected", stats.RowsRejected).
		Dur("elapsed", time.Since(start)).
		Msg("sync tick completed")
}

// runOnce evaluates the decision table against the current watermark and
// dispatches to the matching fetch+ingest path.
func (s *Scheduler) runOnce(ctx context.Context) (Decision, ingest.Stats, error) {
	wm, err := s.store.WatermarkGet(ctx)
	if err != nil {
		return DecisionSkip, ingest.Stats{}, fmt.Errorf("schedule: read watermark: %w", err)
	}

	now := time.Now().UTC()
	decision := Decide(wm.IsSet(), wm.LastSync, now, s.hourFence)
	metrics.SyncDecisions.WithLabelValues(string(decision)).Inc()

	switch decision {
	case DecisionSkip:
		return decision, ingest.Stats{}, nil
	case DecisionFull:
		stats, err := s.runIngest(ctx, ingest.ModeFull, now)
		return decision, stats, err
	case DecisionDiff:
		stats, err := s.runIngest(ctx, ingest.ModeDiff, now)
		return decision, stats, err
	default:
		return decision, ingest.Stats{}, fmt.Errorf("schedule: unknown decision %q", decision)
	}
}

func (s *Scheduler) runIngest(ctx context.Context, mode ingest.Mode, now time.Time) (ingest.Stats, error) {
	var body io.ReadCloser
	var err error

	if mode == ingest.ModeFull {
		body, err = s.fetcher.FetchFull(ctx)
	} else {
		body, err = s.fetcher.FetchDiff(ctx, now)
	}
	if err != nil {
		metrics.SyncErrors.WithLabelValues(string(mode), "fetch").Inc()
		return ingest.Stats{}, fmt.Errorf("schedule: fetch %s: %w", mode, err)
	}
	defer func() { _ = body.Close() }()

	stats, err := ingest.Run(ctx, body, s.store, mode)
	if err != nil {
		metrics.SyncErrors.WithLabelValues(string(mode), "ingest").Inc()
		return stats, fmt.Errorf("schedule: ingest %s: %w", mode, err)
	}

	if err := s.store.WatermarkSet(ctx, now); err != nil {
		return stats, fmt.Errorf("schedule: set watermark: %w", err)
	}
	return stats, nil
}
