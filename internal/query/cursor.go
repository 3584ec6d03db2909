// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package query

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/racemap/cell-service/internal/models"
)

// cursorFieldCount is the number of colon-delimited fields in a decoded
// cursor: radio, mcc, net, area, cell.
const cursorFieldCount = 5

// EncodeCursor packs pk's composite primary key into the opaque,
// URL-safe cursor string handed back to clients as nextCursor.
func EncodeCursor(pk models.PK) string {
	raw := strings.Join([]string{
		string(pk.Radio),
		strconv.FormatUint(uint64(pk.MCC), 10),
		strconv.FormatUint(uint64(pk.Net), 10),
		strconv.FormatUint(uint64(pk.Area), 10),
		strconv.FormatUint(pk.CellID, 10),
	}, ":")
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(raw))
}

// DecodeCursor reverses EncodeCursor. It returns ErrInvalidCursor for
// malformed base64, a field count other than 5, an unrecognized radio,
// or any numeric field that doesn't fit its column's width.
func DecodeCursor(encoded string) (models.PK, error) {
	raw, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(encoded)
	if err != nil {
		return models.PK{}, ErrInvalidCursor
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != cursorFieldCount {
		return models.PK{}, ErrInvalidCursor
	}

	radio, err := models.ParseRadio(parts[0])
	if err != nil {
		return models.PK{}, ErrInvalidCursor
	}

	mcc, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return models.PK{}, ErrInvalidCursor
	}
	net, err := strconv.ParseUint(parts[2], 10, 16)
	if err != nil {
		return models.PK{}, ErrInvalidCursor
	}
	area, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return models.PK{}, ErrInvalidCursor
	}
	cell, err := strconv.ParseUint(parts[4], 10, 64)
	if err != nil {
		return models.PK{}, ErrInvalidCursor
	}

	return models.PK{
		Radio:  radio,
		MCC:    uint16(mcc),
		Net:    uint16(net),
		Area:   uint32(area),
		CellID: cell,
	}, nil
}
