// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package ingest

import (
	"fmt"
	"strconv"
	"time"

	"github.com/racemap/cell-service/internal/models"
)

// csvColumns is the upstream header order: radio,mcc,net,area,cell,unit,
// lon,lat,range,samples,changeable,created,updated,averageSignal.
const csvColumns = 14

// parseRow converts one CSV record into a Cell. line is the 1-based
// input line number, used only for error context.
func parseRow(record []string, line int) (models.Cell, error) {
	if len(record) != csvColumns {
		return models.Cell{}, fmt.Errorf("line %d: expected %d columns, got %d", line, csvColumns, len(record))
	}

	radio, err := models.ParseRadio(record[0])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: %w", line, err)
	}

	mcc, err := parseUint16(record[1])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: mcc: %w", line, err)
	}
	net, err := parseUint16(record[2])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: net: %w", line, err)
	}
	area, err := parseUint32(record[3])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: area: %w", line, err)
	}
	cellID, err := parseUint64(record[4])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: cell: %w", line, err)
	}

	unit, err := parseOptionalUint16(record[5])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: unit: %w", line, err)
	}

	lon, err := parseFloat32(record[6])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: lon: %w", line, err)
	}
	lat, err := parseFloat32(record[7])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: lat: %w", line, err)
	}
	cellRange, err := parseUint32(record[8])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: range: %w", line, err)
	}
	samples, err := parseUint32(record[9])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: samples: %w", line, err)
	}

	changeable, err := strconv.ParseBool(record[10])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: changeable: %w", line, err)
	}

	created, err := parseEpochSeconds(record[11])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: created: %w", line, err)
	}
	updated, err := parseEpochSeconds(record[12])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: updated: %w", line, err)
	}

	averageSignal, err := parseOptionalInt16(record[13])
	if err != nil {
		return models.Cell{}, fmt.Errorf("line %d: averageSignal: %w", line, err)
	}

	return models.Cell{
		Radio:         radio,
		MCC:           mcc,
		Net:           net,
		Area:          area,
		CellID:        cellID,
		Unit:          unit,
		Lon:           lon,
		Lat:           lat,
		CellRange:     cellRange,
		Samples:       samples,
		Changeable:    changeable,
		Created:       created,
		Updated:       updated,
		AverageSignal: averageSignal,
	}, nil
}

// isTombstone reports whether c is the diff-mode delete sentinel: a row
// with no remaining samples that upstream no longer considers changeable.
func isTombstone(c models.Cell) bool {
	return !c.Changeable && c.Samples == 0
}

func parseEpochSeconds(s string) (time.Time, error) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0).UTC(), nil
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	return uint16(v), err
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

func parseUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

func parseOptionalUint16(s string) (*uint16, error) {
	if s == "" {
		return nil, nil
	}
	v, err := parseUint16(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseOptionalInt16(s string) (*int16, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return nil, err
	}
	r := int16(v)
	return &r, nil
}
