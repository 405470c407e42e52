package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"portal-coordinadores/internal/app"
	"portal-coordinadores/internal/config"
	"portal-coordinadores/internal/core"
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

// writeJSONStatus writes a JSON response with an explicit status code.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps domain errors onto HTTP status codes. Unknown
// errors fall through to 500 without leaking internals.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidToken):
		writeError(w, r, "invalid or expired link", "INVALID_TOKEN", http.StatusUnauthorized)
	case errors.Is(err, core.ErrNotOwner):
		writeError(w, r, "record belongs to another coordinator", "FORBIDDEN", http.StatusForbidden)
	case errors.Is(err, core.ErrCoordinatorNotFound),
		errors.Is(err, core.ErrOrderNotFound),
		errors.Is(err, core.ErrTerceroNotFound),
		errors.Is(err, core.ErrActivityNotFound):
		writeError(w, r, "not found", "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrOrderNotEditable),
		errors.Is(err, core.ErrStateConflict):
		writeError(w, r, err.Error(), "STATE_CONFLICT", http.StatusConflict)
	case errors.Is(err, core.ErrMissingBeneficiary),
		errors.Is(err, core.ErrNoLines),
		errors.Is(err, core.ErrUnknownActivityType):
		writeError(w, r, err.Error(), "INVALID_REQUEST", http.StatusBadRequest)
	case errors.Is(err, config.ErrMissingCredentials):
		writeError(w, r, "remote store is not configured", "STORE_UNAVAILABLE", http.StatusServiceUnavailable)
	default:
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
