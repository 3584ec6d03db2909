// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service
package models

import "time"

// Cell is the single canonical entity mirrored from the upstream cell
// tower dataset. Primary key is the composite (MCC, Net, Area, CellID,
// Radio) — see PrimaryKey.
type Cell struct {
	Radio Radio `json:"radio"`
	MCC   uint16 `json:"mcc"`
	Net   uint16 `json:"net"`
	Area  uint32 `json:"area"`
	// CellID is the upstream "cell" column; renamed to avoid shadowing the
	// type name.
	CellID uint64 `json:"cell"`

	Unit *uint16 `json:"unit,omitempty"`

	Lon float32 `json:"lon"`
	Lat float32 `json:"lat"`

	CellRange uint32 `json:"cellRange"`
	Samples   uint32 `json:"samples"`

	Changeable bool `json:"changeable"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`

	AverageSignal *int16 `json:"averageSignal,omitempty"`
}

// PK identifies a cell's composite primary key.
type PK struct {
	MCC    uint16
	Net    uint16
	Area   uint32
	CellID uint64
	Radio  Radio
}

// PrimaryKey returns c's composite key in the canonical column order
// (mcc, net, area, cell, radio).
func (c Cell) PrimaryKey() PK {
	return PK{MCC: c.MCC, Net: c.Net, Area: c.Area, CellID: c.CellID, Radio: c.Radio}
}

// Less reports whether pk sorts strictly before other under the PK's
// ascending lexicographic order — the scan and cursor ordering.
func (pk PK) Less(other PK) bool {
	if pk.MCC != other.MCC {
		return pk.MCC < other.MCC
	}
	if pk.Net != other.Net {
		return pk.Net < other.Net
	}
	if pk.Area != other.Area {
		return pk.Area < other.Area
	}
	if pk.CellID != other.CellID {
		return pk.CellID < other.CellID
	}
	return pk.Radio < other.Radio
}

// IsBetterLookupCandidate reports whether candidate should replace current
// as the resolved row for a batch-lookup key, per the total order in
// §4.4.3: higher samples wins; tie broken by more recent updated; tie
// broken by higher radio generation.
func IsBetterLookupCandidate(candidate, current Cell) bool {
	if candidate.Samples != current.Samples {
		return candidate.Samples > current.Samples
	}
	if !candidate.Updated.Equal(current.Updated) {
		return candidate.Updated.After(current.Updated)
	}
	return candidate.Radio.NewerThan(current.Radio)
}
