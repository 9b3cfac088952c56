package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wanderly-app/backend/internal/domain"
)

// addCommentRequest is the POST /shared/{token}/comments body.
type addCommentRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// commentListResponse is the GET /shared/{token}/comments body.
type commentListResponse struct {
	Data []domain.Comment `json:"data"`
}

// addComment handles POST /api/v1/shared/{token}/comments.
// No authentication: anyone holding an active share token may comment.
func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required and must be valid JSON")
		return
	}

	comment, err := s.comments.Add(r.Context(), token, req.Name, req.Message)
	if err != nil {
		writeServiceError(w, r, err, "shared trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// listComments handles GET /api/v1/shared/{token}/comments.
// Listing is lenient: an unknown token yields an empty list, not a 404.
func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	comments, err := s.comments.List(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err, "shared trip not found")
		return
	}

	writeJSON(w, http.StatusOK, commentListResponse{Data: comments})
}
