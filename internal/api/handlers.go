// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/racemap/cell-service/internal/models"
	"github.com/racemap/cell-service/internal/query"
	"github.com/racemap/cell-service/internal/store"
)

// Handler holds the dependencies every route needs: only the store, since
// query is a set of pure functions over it.
type Handler struct {
	store store.Store
}

// NewHandler builds a Handler backed by s.
func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

// Health answers GET /health unconditionally with a plain-text body —
// the one route that is not part of the JSON API surface.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// GetCell answers GET /cell — §4.4.1. radio is optional; when absent the
// best match across radios is returned.
func (h *Handler) GetCell(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mcc, err := parseRequiredUint16(q, "mcc")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	net, err := parseRequiredUint16(q, "net")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	area, err := parseRequiredUint32(q, "area")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}
	cellID, err := parseRequiredUint64(q, "cell")
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	var radio *models.Radio
	if raw := q.Get("radio"); raw != "" {
		parsed, err := models.ParseRadio(raw)
		if err != nil {
			writeBadRequest(w, r, "invalid radio: "+raw)
			return
		}
		radio = &parsed
	}

	cellRow, ok, err := query.GetCell(r.Context(), h.store, mcc, net, area, cellID, radio)
	if err != nil {
		writeServiceUnavailable(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, r, http.StatusOK, nil)
		return
	}
	writeJSON(w, r, http.StatusOK, cellRow)
}

// GetCells answers GET /cells — §4.4.2, the cursor-paginated range scan.
func (h *Handler) GetCells(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := query.ScanRequest{Cursor: q.Get("cursor")}

	if mcc, present, err := parseOptionalUint16(q, "mcc"); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	} else if present {
		req.MCC = &mcc
	}
	if mnc, present, err := parseOptionalUint16(q, "mnc"); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	} else if present {
		req.MNC = &mnc
	}
	if raw := q.Get("radio"); raw != "" {
		radio, err := models.ParseRadio(raw)
		if err != nil {
			writeBadRequest(w, r, "invalid radio: "+raw)
			return
		}
		req.Radio = &radio
	}
	if limit, present, err := parseOptionalInt(q, "limit"); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	} else if present {
		req.Limit = &limit
	}

	if lat, present, err := parseOptionalFloat32(q, "min_lat"); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	} else if present {
		req.Geofence.MinLat = &lat
	}
	if lat, present, err := parseOptionalFloat32(q, "max_lat"); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	} else if present {
		req.Geofence.MaxLat = &lat
	}
	if lon, present, err := parseOptionalFloat32(q, "min_lon"); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	} else if present {
		req.Geofence.MinLon = &lon
	}
	if lon, present, err := parseOptionalFloat32(q, "max_lon"); err != nil {
		writeBadRequest(w, r, err.Error())
		return
	} else if present {
		req.Geofence.MaxLon = &lon
	}

	resp, err := query.RangeScan(r.Context(), h.store, req)
	if err != nil {
		switch err {
		case query.ErrInvalidCursor, query.ErrInvalidGeofence:
			writeBadRequest(w, r, err.Error())
		default:
			writeServiceUnavailable(w, r, err)
		}
		return
	}

	writeJSON(w, r, http.StatusOK, getCellsResponse{
		Cells:      resp.Cells,
		NextCursor: resp.NextCursor,
		HasMore:    resp.HasMore,
	})
}

type getCellsResponse struct {
	Cells      []models.Cell `json:"cells"`
	NextCursor *string       `json:"nextCursor"`
	HasMore    bool          `json:"hasMore"`
}

// lookupRequest is the POST /cells/lookup body — §4.4.3.
type lookupRequest struct {
	Cells []lookupKeyJSON `json:"cells"`
}

type lookupKeyJSON struct {
	MCC uint16 `json:"mcc"`
	MNC uint16 `json:"mnc"`
	LAC uint32 `json:"lac"`
	CID uint64 `json:"cid"`
}

type lookupResponse struct {
	Cells []*models.Cell `json:"cells"`
}

// LookupCells answers POST /cells/lookup — §4.4.3, the batch best-match
// lookup. The request is never rejected for exceeding the 50-key cap;
// entries beyond it resolve to null in the response.
func (h *Handler) LookupCells(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeBadRequest(w, r, "malformed request body")
		return
	}

	keys := make([]query.LookupKey, len(req.Cells))
	for i, k := range req.Cells {
		keys[i] = query.LookupKey{MCC: k.MCC, MNC: k.MNC, LAC: k.LAC, CID: k.CID}
	}

	cells, err := query.BatchLookup(r.Context(), h.store, keys)
	if err != nil {
		writeServiceUnavailable(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, lookupResponse{Cells: cells})
}

func parseRequiredUint16(q url.Values, key string) (uint16, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, errMissingParam(key)
	}
	v, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, errInvalidParam(key, raw)
	}
	return uint16(v), nil
}

func parseRequiredUint32(q url.Values, key string) (uint32, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, errMissingParam(key)
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errInvalidParam(key, raw)
	}
	return uint32(v), nil
}

func parseRequiredUint64(q url.Values, key string) (uint64, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, errMissingParam(key)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errInvalidParam(key, raw)
	}
	return v, nil
}

func parseOptionalUint16(q url.Values, key string) (uint16, bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, false, errInvalidParam(key, raw)
	}
	return uint16(v), true, nil
}

func parseOptionalInt(q url.Values, key string) (int, bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, errInvalidParam(key, raw)
	}
	return v, true, nil
}

func parseOptionalFloat32(q url.Values, key string) (float32, bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, false, errInvalidParam(key, raw)
	}
	return float32(v), true, nil
}

func errMissingParam(key string) error {
	return &paramError{msg: "missing required parameter: " + key}
}

func errInvalidParam(key, raw string) error {
	return &paramError{msg: "invalid value for " + key + ": " + raw}
}

type paramError struct{ msg string }

func (e *paramError) Error() string { return e.msg }
