// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/racemap/cell-service/internal/logging"
)

// errorBody is the wire shape for every error response: a short,
// human-readable message under a single "error" key (spec §7).
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response body")
	}
}

// decodeJSONBody decodes the first JSON value in the request body into v.
// Any data after that value is neither read nor checked.
func decodeJSONBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// writeError writes a client or server error as {"error": message}.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorBody{Error: message})
}

// writeBadRequest writes a 400 for client input errors: missing required
// params, invalid radio, malformed cursor, bad geofence.
func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, message)
}

// writeServiceUnavailable writes a 503 for store errors reaching the API.
func writeServiceUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Msg("store error serving request")
	writeError(w, r, http.StatusServiceUnavailable, "temporarily unavailable")
}
