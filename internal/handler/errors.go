package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wanderly-app/backend/internal/domain"
)

// errorDetail is the machine-readable error payload.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the envelope every error body uses.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error body with the given status and code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service-layer error onto the HTTP response.
// Sentinel errors get their contract status; anything else is a 500 with a
// generic body — internal error text never reaches the client, only the log.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFoundMsg)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	case errors.Is(err, domain.ErrPasswordRequired):
		writeError(w, http.StatusUnauthorized, "password_required", "this share is password protected")
	case errors.Is(err, domain.ErrUpstream):
		slog.ErrorContext(r.Context(), "upstream failure", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusBadGateway, "upstream_unavailable", "a required service is unavailable, try again later")
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

// validationMessage extracts the human-readable part from a wrapped
// validation error, e.g. "validation error: destination is required" →
// "destination is required".
func validationMessage(err error) string {
	msg := err.Error()
	const prefix = "validation error: "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
