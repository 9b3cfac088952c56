// Package handler implements the HTTP handlers for the Wanderly API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, share.go, comment.go, assist.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wanderly-app/backend/internal/auth"
	"github.com/wanderly-app/backend/internal/domain"
	"github.com/wanderly-app/backend/internal/middleware"
	"github.com/wanderly-app/backend/internal/upstream"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID, ownerID string) (domain.Trip, error)
	List(ctx context.Context, ownerID string) ([]domain.Trip, domain.TripStats, error)
	Update(ctx context.Context, id uuid.UUID, ownerID string, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
}

// ShareServicer defines the share registry operations the handlers depend on.
type ShareServicer interface {
	Toggle(ctx context.Context, tripID uuid.UUID, ownerID string, enabled bool, password *string) (domain.Share, error)
	Resolve(ctx context.Context, token, password string) (domain.Trip, domain.Share, error)
}

// CommentServicer defines the comment ledger operations the handlers depend on.
type CommentServicer interface {
	Add(ctx context.Context, token, name, message string) (domain.Comment, error)
	List(ctx context.Context, token string) ([]domain.Comment, error)
}

// Assistant is the chat proxy the assist handler depends on.
type Assistant interface {
	Chat(ctx context.Context, message string, history []upstream.ChatTurn) (string, error)
}

// WeatherProvider is the weather proxy the assist handler depends on.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (domain.WeatherSnapshot, error)
}

// PlacesProvider is the points-of-interest proxy the assist handler depends on.
type PlacesProvider interface {
	Search(ctx context.Context, query string) ([]domain.PointOfInterest, error)
}

// PhotosProvider is the stock-photo proxy the assist handler depends on.
type PhotosProvider interface {
	Search(ctx context.Context, query string, perPage int) ([]upstream.Photo, error)
}

// Server holds the dependencies for all API endpoints.
type Server struct {
	trips    TripServicer
	shares   ShareServicer
	comments CommentServicer
	chat     Assistant
	weather  WeatherProvider
	places   PlacesProvider
	photos   PhotosProvider
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, shares ShareServicer, comments CommentServicer,
	chat Assistant, weather WeatherProvider, places PlacesProvider, photos PhotosProvider) *Server {
	return &Server{
		trips:    trips,
		shares:   shares,
		comments: comments,
		chat:     chat,
		weather:  weather,
		places:   places,
		photos:   photos,
	}
}

// Routes builds the full route tree. Owner-scoped trip routes sit behind the
// RequireOwner middleware; share resolution, comments, and the proxy
// endpoints are public.
func (s *Server) Routes(tokens *auth.TokenService) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOwner(tokens))
			r.Post("/trips", s.createTrip)
			r.Get("/trips", s.listTrips)
			r.Get("/trips/{id}", s.getTrip)
			r.Patch("/trips/{id}", s.updateTrip)
			r.Delete("/trips/{id}", s.deleteTrip)
			r.Put("/trips/{id}/share", s.toggleShare)
		})

		r.Get("/shared/{token}", s.resolveShare)
		r.Post("/shared/{token}/comments", s.addComment)
		r.Get("/shared/{token}/comments", s.listComments)

		r.Post("/assist/chat", s.assistChat)
		r.Get("/weather", s.currentWeather)
		r.Get("/places", s.searchPlaces)
		r.Get("/photos", s.searchPhotos)
	})

	return r
}

// health handles GET /healthz.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
