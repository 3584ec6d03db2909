// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package ingest

import (
	"testing"

	"github.com/racemap/cell-service/internal/models"
)

func TestParseRowValid(t *testing.T) {
	record := []string{"LTE", "262", "1", "12345", "67890", "7", "13.405", "52.52", "1000", "42", "true", "1700000000", "1700003600", "-95"}
	c, err := parseRow(record, 2)
	if err != nil {
		t.Fatalf("parseRow: %v", err)
	}
	if c.Radio != models.RadioLTE {
		t.Errorf("Radio = %v, want LTE", c.Radio)
	}
	if c.MCC != 262 || c.Net != 1 || c.Area != 12345 || c.CellID != 67890 {
		t.Errorf("PK fields mismatch: %+v", c)
	}
	if c.Unit == nil || *c.Unit != 7 {
		t.Errorf("Unit = %v, want 7", c.Unit)
	}
	if c.AverageSignal == nil || *c.AverageSignal != -95 {
		t.Errorf("AverageSignal = %v, want -95", c.AverageSignal)
	}
	if !c.Changeable {
		t.Error("Changeable = false, want true")
	}
	if c.Created.Unix() != 1700000000 {
		t.Errorf("Created = %v, want unix 1700000000", c.Created)
	}
}

func TestParseRowEmptyOptionalFields(t *testing.T) {
	record := []string{"GSM", "262", "1", "1", "1", "", "13.405", "52.52", "1000", "1", "true", "1700000000", "1700000000", ""}
	c, err := parseRow(record, 2)
	if err != nil {
		t.Fatalf("parseRow: %v", err)
	}
	if c.Unit != nil {
		t.Errorf("Unit = %v, want nil", c.Unit)
	}
	if c.AverageSignal != nil {
		t.Errorf("AverageSignal = %v, want nil", c.AverageSignal)
	}
}

func TestParseRowUnknownRadioRejected(t *testing.T) {
	record := []string{"WIFI", "262", "1", "1", "1", "", "13.405", "52.52", "1000", "1", "true", "1700000000", "1700000000", ""}
	if _, err := parseRow(record, 2); err == nil {
		t.Fatal("expected error for unknown radio, got nil")
	}
}

func TestParseRowWrongColumnCount(t *testing.T) {
	record := []string{"LTE", "262", "1"}
	if _, err := parseRow(record, 2); err == nil {
		t.Fatal("expected error for short row, got nil")
	}
}

func TestParseRowMalformedNumber(t *testing.T) {
	record := []string{"LTE", "not-a-number", "1", "1", "1", "", "13.405", "52.52", "1000", "1", "true", "1700000000", "1700000000", ""}
	if _, err := parseRow(record, 2); err == nil {
		t.Fatal("expected error for malformed mcc, got nil")
	}
}

func TestIsTombstone(t *testing.T) {
	tests := []struct {
		name       string
		changeable bool
		samples    uint32
		want       bool
	}{
		{"tombstone", false, 0, true},
		{"changeable with zero samples", true, 0, false},
		{"unchangeable with samples", false, 5, false},
		{"ordinary row", true, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := models.Cell{Changeable: tt.changeable, Samples: tt.samples}
			if got := isTombstone(c); got != tt.want {
				t.Errorf("isTombstone(%+v) = %v, want %v", c, got, tt.want)
			}
		})
	}
}
