// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package schedule decides when to run a sync and drives the fetch/ingest
pipeline on a tick, exposing itself as a suture.Service.

The decision table mirrors the upstream publication cadence: OpenCellID
drops new packages around 3am UTC, so nothing runs before an hour fence
(default 4am UTC). Below that fence, or if a sync has already completed
today, the tick is skipped. Otherwise the gap since the last successful
sync decides full vs. diff: same calendar day is unreachable here (it's
caught by the skip case above), a gap of at most 24 hours is a diff, anything
wider — a missed day, a month or year boundary, or no watermark at all —
is a full resync.
*/
package schedule
