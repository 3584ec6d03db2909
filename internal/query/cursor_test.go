// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package query

import (
	"encoding/base64"
	"testing"

	"github.com/racemap/cell-service/internal/models"
)

func encodeRaw(raw string) string {
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(raw))
}

func TestCursorRoundTrip(t *testing.T) {
	pk := models.PK{Radio: models.RadioLTE, MCC: 262, Net: 1, Area: 12345, CellID: 67890}
	encoded := EncodeCursor(pk)
	decoded, err := DecodeCursor(encoded)
	if err != nil {
		t.Fatalf("DecodeCursor: %v", err)
	}
	if decoded != pk {
		t.Errorf("decoded = %+v, want %+v", decoded, pk)
	}
}

func TestCursorAllRadioTypes(t *testing.T) {
	for _, r := range []models.Radio{models.RadioGSM, models.RadioUMTS, models.RadioCDMA, models.RadioLTE, models.RadioNR} {
		pk := models.PK{Radio: r, MCC: 1, Net: 2, Area: 3, CellID: 4}
		decoded, err := DecodeCursor(EncodeCursor(pk))
		if err != nil {
			t.Fatalf("radio %v: %v", r, err)
		}
		if decoded.Radio != r {
			t.Errorf("radio = %v, want %v", decoded.Radio, r)
		}
	}
}

func TestDecodeCursorInvalidBase64(t *testing.T) {
	if _, err := DecodeCursor("not-valid-base64!!!"); err != ErrInvalidCursor {
		t.Errorf("err = %v, want ErrInvalidCursor", err)
	}
}

func TestDecodeCursorWrongFieldCount(t *testing.T) {
	if _, err := DecodeCursor(encodeRaw("only:two")); err != ErrInvalidCursor {
		t.Errorf("err = %v, want ErrInvalidCursor", err)
	}
}

func TestDecodeCursorInvalidRadio(t *testing.T) {
	if _, err := DecodeCursor(encodeRaw("INVALID:262:1:100:200")); err != ErrInvalidCursor {
		t.Errorf("err = %v, want ErrInvalidCursor", err)
	}
}

func TestDecodeCursorInvalidNumber(t *testing.T) {
	if _, err := DecodeCursor(encodeRaw("LTE:abc:1:100:200")); err != ErrInvalidCursor {
		t.Errorf("err = %v, want ErrInvalidCursor", err)
	}
}
