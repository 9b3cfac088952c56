package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wanderly-app/backend/internal/domain"
	"github.com/wanderly-app/backend/internal/middleware"
)

// toggleShareRequest is the PUT /trips/{id}/share body.
// Password semantics: absent leaves the current password untouched, empty
// string clears it, anything else sets it.
type toggleShareRequest struct {
	Enabled  bool    `json:"enabled"`
	Password *string `json:"password"`
}

// shareResponse is the client view of a share. The password hash never
// leaves the server; has_password tells the UI whether to show the prompt.
type shareResponse struct {
	Token       string    `json:"token"`
	Enabled     bool      `json:"enabled"`
	HasPassword bool      `json:"has_password"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// resolveShareResponse is the GET /shared/{token} body: the read-only trip
// view plus share metadata for display.
type resolveShareResponse struct {
	Trip  domain.Trip   `json:"trip"`
	Share shareResponse `json:"share"`
}

func shareToResponse(sh domain.Share) shareResponse {
	return shareResponse{
		Token:       sh.Token,
		Enabled:     sh.Enabled,
		HasPassword: sh.HasPassword(),
		ExpiresAt:   sh.ExpiresAt,
	}
}

// toggleShare handles PUT /api/v1/trips/{id}/share.
func (s *Server) toggleShare(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}

	var req toggleShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required and must be valid JSON")
		return
	}

	share, err := s.shares.Toggle(r.Context(), id, ownerID, req.Enabled, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, shareToResponse(share))
}

// resolveShare handles GET /api/v1/shared/{token}.
// The share password, when one is set, is supplied via the ?password= query
// parameter. A missing or wrong password yields the same 401 body.
func (s *Server) resolveShare(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	password := r.URL.Query().Get("password")

	trip, share, err := s.shares.Resolve(r.Context(), token, password)
	if err != nil {
		writeServiceError(w, r, err, "shared trip not found")
		return
	}

	writeJSON(w, http.StatusOK, resolveShareResponse{
		Trip:  trip,
		Share: shareToResponse(share),
	})
}
