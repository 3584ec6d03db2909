// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package schedule

import "time"

// Decision is the outcome of a scheduler tick.
type Decision string

const (
	// DecisionSkip means no sync should run this tick.
	DecisionSkip Decision = "skip"
	// DecisionDiff means a per-day diff sync should run.
	DecisionDiff Decision = "diff"
	// DecisionFull means a full resync should run.
	DecisionFull Decision = "full"
)

// Decide implements the sync decision table: whether, and what kind of,
// sync should run given the last successful sync and the current time.
//
// hasWatermark is false when no sync has ever completed (forces a full
// resync once past the hour fence). hourFence is the UTC hour before
// which upstream packages are not yet considered available.
func Decide(hasWatermark bool, lastSync, now time.Time, hourFence int) Decision {
	if now.UTC().Hour() < hourFence {
		return DecisionSkip
	}

	if !hasWatermark {
		return DecisionFull
	}

	lastSync = lastSync.UTC()
	now = now.UTC()

	if lastSync.Year() != now.Year() {
		return DecisionFull
	}
	if lastSync.Month() != now.Month() {
		return DecisionFull
	}
	if lastSync.Day() == now.Day() {
		return DecisionSkip
	}

	gap := now.Sub(lastSync)
	if gap <= 24*time.Hour {
		return DecisionDiff
	}
	return DecisionFull
}
