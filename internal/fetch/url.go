// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package fetch

import (
	"fmt"
	"time"
)

// buildFullURL constructs the full-snapshot download URL from baseURL and
// apiKey, testable without touching configuration or the network.
func buildFullURL(baseURL, apiKey string) string {
	return fmt.Sprintf("%s?token=%s&type=full&file=cell_towers.csv.gz", baseURL, apiKey)
}

// buildDiffURL constructs the per-day diff download URL for date (UTC).
func buildDiffURL(baseURL, apiKey string, date time.Time) string {
	date = date.UTC()
	return fmt.Sprintf("%s?token=%s&type=diff&file=OCID-diff-cell-export-%04d-%02d-%02d-T000000.csv.gz",
		baseURL, apiKey, date.Year(), date.Month(), date.Day())
}
