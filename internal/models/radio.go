// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service
package models

import (
	"fmt"
	"strings"
)

// Radio identifies the air interface a cell tower speaks.
type Radio string

const (
	RadioGSM  Radio = "GSM"
	RadioUMTS Radio = "UMTS"
	RadioCDMA Radio = "CDMA"
	RadioLTE  Radio = "LTE"
	RadioNR   Radio = "NR"
)

// ParseRadio normalizes a radio string to its canonical upper-case form and
// validates it against the known set. Case-insensitive: the upstream feed
// and API clients are not consistent about casing.
func ParseRadio(s string) (Radio, error) {
	r := Radio(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RadioGSM, RadioUMTS, RadioCDMA, RadioLTE, RadioNR:
		return r, nil
	default:
		return "", fmt.Errorf("models: unknown radio %q", s)
	}
}

// generation ranks radio technologies newest-first for best-match tie
// breaking. Higher is newer.
func (r Radio) generation() int {
	switch r {
	case RadioNR:
		return 5
	case RadioLTE:
		return 4
	case RadioUMTS:
		return 3
	case RadioGSM:
		return 2
	case RadioCDMA:
		return 1
	default:
		return 0
	}
}

// NewerThan reports whether r is a later-generation radio technology than
// other. Used as the final tiebreaker in best-match cell selection.
func (r Radio) NewerThan(other Radio) bool {
	return r.generation() > other.generation()
}

func (r Radio) Valid() bool {
	return r.generation() > 0
}
