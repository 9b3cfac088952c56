package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wanderly-app/backend/internal/domain"
	"github.com/wanderly-app/backend/internal/middleware"
)

// createTripRequest is the POST /trips body. The owner comes from the auth
// token, never the body; id and timestamps are DB-assigned.
type createTripRequest struct {
	Destination      string                   `json:"destination"`
	Days             int                      `json:"days"`
	TravelStyle      string                   `json:"travel_style"`
	BudgetTier       string                   `json:"budget_tier"`
	DailyBudget      *float64                 `json:"daily_budget"`
	Preferences      string                   `json:"preferences"`
	Itinerary        []domain.DayPlan         `json:"itinerary"`
	Weather          *domain.WeatherSnapshot  `json:"weather"`
	CostBreakdown    map[string]float64       `json:"cost_breakdown"`
	PointsOfInterest []domain.PointOfInterest `json:"points_of_interest"`
}

// tripListResponse is the GET /trips body: the owner's trips plus summary stats.
type tripListResponse struct {
	Data  []domain.Trip    `json:"data"`
	Stats domain.TripStats `json:"stats"`
}

// createTrip handles POST /api/v1/trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required and must be valid JSON")
		return
	}

	created, err := s.trips.Create(r.Context(), domain.Trip{
		OwnerID:          ownerID,
		Destination:      req.Destination,
		Days:             req.Days,
		TravelStyle:      req.TravelStyle,
		BudgetTier:       req.BudgetTier,
		DailyBudget:      req.DailyBudget,
		Preferences:      req.Preferences,
		Itinerary:        req.Itinerary,
		Weather:          req.Weather,
		CostBreakdown:    req.CostBreakdown,
		PointsOfInterest: req.PointsOfInterest,
	})
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// listTrips handles GET /api/v1/trips.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	trips, stats, err := s.trips.List(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripListResponse{Data: trips, Stats: stats})
}

// getTrip handles GET /api/v1/trips/{id}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
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

	trip, err := s.trips.GetByID(r.Context(), id, ownerID)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// updateTrip handles PATCH /api/v1/trips/{id}.
// Only fields present in the body are changed.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
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

	var patch domain.TripPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required and must be valid JSON")
		return
	}

	updated, err := s.trips.Update(r.Context(), id, ownerID, patch)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// deleteTrip handles DELETE /api/v1/trips/{id}.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
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

	if err := s.trips.Delete(r.Context(), id, ownerID); err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
