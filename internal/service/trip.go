// Package service contains the business logic for the Wanderly backend.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wanderly-app/backend/internal/domain"
	"github.com/wanderly-app/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
// Every owner-scoped operation passes the caller's owner id down to the repo,
// where the ownership check is folded into the query — a mismatch surfaces as
// domain.ErrNotFound, identical to a missing trip.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(trips repo.TripRepo) *TripService {
	return &TripService{trips: trips}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if a required field is missing or malformed.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if strings.TrimSpace(trip.OwnerID) == "" {
		return domain.Trip{}, fmt.Errorf("%w: owner id is required", domain.ErrValidation)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip scoped to its owner.
// Returns domain.ErrNotFound if the trip is absent or owned by someone else.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID, ownerID string) (domain.Trip, error) {
	result, err := s.trips.GetOwned(ctx, id, ownerID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips owned by ownerID, most recently saved first, along
// with the owner's trip statistics. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context, ownerID string) ([]domain.Trip, domain.TripStats, error) {
	trips, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.TripStats{}, fmt.Errorf("service.TripService.List: %w", err)
	}
	stats, err := s.trips.StatsByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.TripStats{}, fmt.Errorf("service.TripService.List: stats: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, stats, nil
}

// Update applies a partial update to an existing trip.
// Only fields set in the patch are changed; updated_at is always refreshed
// by the repo. Returns domain.ErrNotFound under the same policy as GetByID,
// domain.ErrValidation if the patched trip violates a business rule.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, ownerID string, patch domain.TripPatch) (domain.Trip, error) {
	current, err := s.trips.GetOwned(ctx, id, ownerID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	applyPatch(&current, patch)
	if err := validateTrip(current); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Update(ctx, current)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip scoped to its owner. Deleting twice fails with
// domain.ErrNotFound on the second call — delete is not idempotent.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := s.trips.Delete(ctx, id, ownerID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// applyPatch copies the set fields of patch onto trip. ID, OwnerID, and the
// timestamps are untouched by design.
func applyPatch(trip *domain.Trip, patch domain.TripPatch) {
	if patch.Destination != nil {
		trip.Destination = *patch.Destination
	}
	if patch.Days != nil {
		trip.Days = *patch.Days
	}
	if patch.TravelStyle != nil {
		trip.TravelStyle = *patch.TravelStyle
	}
	if patch.BudgetTier != nil {
		trip.BudgetTier = *patch.BudgetTier
	}
	if patch.DailyBudget != nil {
		trip.DailyBudget = patch.DailyBudget
	}
	if patch.Preferences != nil {
		trip.Preferences = *patch.Preferences
	}
	if patch.Itinerary != nil {
		trip.Itinerary = *patch.Itinerary
	}
	if patch.Weather != nil {
		trip.Weather = patch.Weather
	}
	if patch.CostBreakdown != nil {
		trip.CostBreakdown = *patch.CostBreakdown
	}
	if patch.PointsOfInterest != nil {
		trip.PointsOfInterest = *patch.PointsOfInterest
	}
}

// validateTrip enforces business rules common to both Create and Update.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - Days must be a positive integer.
//   - The itinerary must contain at least one day entry.
//   - DailyBudget, when set, must be positive.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.Days <= 0 {
		return fmt.Errorf("%w: days must be a positive integer", domain.ErrValidation)
	}
	if len(trip.Itinerary) == 0 {
		return fmt.Errorf("%w: itinerary is required", domain.ErrValidation)
	}
	if trip.DailyBudget != nil && *trip.DailyBudget <= 0 {
		return fmt.Errorf("%w: daily_budget must be positive", domain.ErrValidation)
	}
	return nil
}
