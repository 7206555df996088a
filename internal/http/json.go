// Package httpx provides the HTTP handlers and router for the portfolio API.
package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// envelope is the JSON shape every API response uses.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, Err: err})
		return false
	}

	return true
}

// WriteJSON writes a success envelope with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	writeRaw(w, code, envelope{Success: true, Data: v})
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code int
	Err  error
}

// WriteError writes a failure envelope. The error message is sent to the
// client, so callers must not pass errors carrying internal detail.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	msg := http.StatusText(p.Code)
	if p.Err != nil {
		msg = p.Err.Error()
	}
	writeRaw(w, p.Code, envelope{Success: false, Message: msg})
}

func writeRaw(w http.ResponseWriter, code int, v envelope) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Client disconnects can't be recovered from here.
		return
	}
}
