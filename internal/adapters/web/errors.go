package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"supply-console/internal/app"
	"supply-console/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps service errors onto HTTP statuses: capacity
// rejections are 422 (the request was well-formed, the collection is full),
// malformed slabs and bad indexes are 400, missing configurations are 404.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrSlabCapExceeded):
		writeError(w, r, err.Error(), "SLAB_CAP_EXCEEDED", http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrMalformedSlab), errors.Is(err, core.ErrSlabIndex):
		writeError(w, r, err.Error(), "MALFORMED_SLAB", http.StatusBadRequest)
	case errors.Is(err, app.ErrInvalidRequest):
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
