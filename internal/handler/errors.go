package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/harsha80956/truck-spotter-backend/internal/domain"
)

// errorResponse is the JSON envelope for all non-2xx responses:
// {"error":{"code":"...","message":"..."}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
// Encoding failures are logged; the status line has already been sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "response encode failed",
			slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}

// writeError maps a service error onto the wire: domain sentinels become
// 404/400 with a coded envelope, everything else is logged and becomes an
// opaque 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound,
			errorResponse{Error: errorDetail{Code: "not_found", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, r, http.StatusBadRequest,
			errorResponse{Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrNoSegments):
		writeJSON(w, r, http.StatusBadRequest,
			errorResponse{Error: errorDetail{Code: "no_segments", Message: unwrapMessage(err)}})
	default:
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.Any("error", err))
		writeJSON(w, r, http.StatusInternalServerError,
			errorResponse{Error: errorDetail{Code: "internal", Message: "internal server error"}})
	}
}

// writeBadRequest rejects a request before it reaches the service layer
// (e.g. malformed body or path parameter).
func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, r, http.StatusBadRequest,
		errorResponse{Error: errorDetail{Code: "validation_error", Message: message}})
}

// unwrapMessage strips the layer-qualified prefixes from a wrapped sentinel
// error, leaving the human-readable tail.
// e.g. "service.TripService.Plan: planner: validation error: pickup location:
// address is required" → "pickup location: address is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrNotFound.Error(),
		domain.ErrNoSegments.Error(),
	} {
		marker := sentinel + ": "
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	// Sentinel with no trailing detail: drop any wrapping prefixes.
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
