// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service
package models

import "time"

// Watermark is the timestamp of the last successful sync, consulted by the
// scheduler on every tick. A zero-value Watermark means "never synced".
type Watermark struct {
	LastSync time.Time
	Set      bool
}

func (w Watermark) IsSet() bool {
	return w.Set
}
