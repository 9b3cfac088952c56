package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/wanderly-app/backend/internal/domain"
	"github.com/wanderly-app/backend/internal/upstream"
)

// chatRequest is the POST /assist/chat body.
type chatRequest struct {
	Message string              `json:"message"`
	History []upstream.ChatTurn `json:"history"`
}

// chatResponse is the assistant's reply.
type chatResponse struct {
	Reply string `json:"reply"`
}

// placesResponse is the GET /places body.
type placesResponse struct {
	Data []domain.PointOfInterest `json:"data"`
}

// photosResponse is the GET /photos body.
type photosResponse struct {
	Data []upstream.Photo `json:"data"`
}

// assistChat handles POST /api/v1/assist/chat — the floating chat widget's
// backend. The message and history are forwarded to Gemini as-is.
func (s *Server) assistChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required and must be valid JSON")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "message is required")
		return
	}

	reply, err := s.chat.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		writeServiceError(w, r, err, "assistant unavailable")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// currentWeather handles GET /api/v1/weather?city=.
func (s *Server) currentWeather(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "city is required")
		return
	}

	snap, err := s.weather.Current(r.Context(), city)
	if err != nil {
		writeServiceError(w, r, err, "weather unavailable")
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// searchPlaces handles GET /api/v1/places?query=.
func (s *Server) searchPlaces(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "query is required")
		return
	}

	pois, err := s.places.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, r, err, "places unavailable")
		return
	}

	writeJSON(w, http.StatusOK, placesResponse{Data: pois})
}

// searchPhotos handles GET /api/v1/photos?query=&per_page=.
func (s *Server) searchPhotos(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "query is required")
		return
	}

	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	photos, err := s.photos.Search(r.Context(), query, perPage)
	if err != nil {
		writeServiceError(w, r, err, "photos unavailable")
		return
	}

	writeJSON(w, http.StatusOK, photosResponse{Data: photos})
}
