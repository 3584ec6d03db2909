// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package ingest

import "time"

// Stats summarizes a single full or diff ingest run.
type Stats struct {
	RowsRead     int64
	RowsUpserted int64
	RowsDeleted  int64
	RowsRejected int64

	StartTime time.Time
	EndTime   time.Time
}

// Elapsed returns the wall-clock duration of the run.
func (s Stats) Elapsed() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RowsPerSecond returns the read throughput for the run.
func (s Stats) RowsPerSecond() float64 {
	secs := s.Elapsed().Seconds()
	if secs == 0 {
		return 0
	}
	return float64(s.RowsRead) / secs
}
