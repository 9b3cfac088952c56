package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/wanderly-app/backend/internal/domain"
	"github.com/wanderly-app/backend/internal/repo"
)

// Function-field mocks: each test wires up only the calls it expects.
// A call to an unset field panics, which surfaces unexpected repo usage.

type mockTripRepo struct {
	createFn      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getOwnedFn    func(ctx context.Context, id uuid.UUID, ownerID string) (domain.Trip, error)
	getByIDFn     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByOwnerFn func(ctx context.Context, ownerID string) ([]domain.Trip, error)
	updateFn      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	deleteFn      func(ctx context.Context, id uuid.UUID, ownerID string) error
	statsFn       func(ctx context.Context, ownerID string) (domain.TripStats, error)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.createFn(ctx, trip)
}

func (m *mockTripRepo) GetOwned(ctx context.Context, id uuid.UUID, ownerID string) (domain.Trip, error) {
	return m.getOwnedFn(ctx, id, ownerID)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTripRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	return m.listByOwnerFn(ctx, ownerID)
}

func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.updateFn(ctx, trip)
}

func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	return m.deleteFn(ctx, id, ownerID)
}

func (m *mockTripRepo) StatsByOwner(ctx context.Context, ownerID string) (domain.TripStats, error) {
	return m.statsFn(ctx, ownerID)
}

type mockShareRepo struct {
	createFn      func(ctx context.Context, share domain.Share) (domain.Share, error)
	getByTokenFn  func(ctx context.Context, token string) (domain.Share, error)
	getByTripIDFn func(ctx context.Context, tripID uuid.UUID) (domain.Share, error)
	updateFn      func(ctx context.Context, share domain.Share) (domain.Share, error)
}

var _ repo.ShareRepo = (*mockShareRepo)(nil)

func (m *mockShareRepo) Create(ctx context.Context, share domain.Share) (domain.Share, error) {
	return m.createFn(ctx, share)
}

func (m *mockShareRepo) GetByToken(ctx context.Context, token string) (domain.Share, error) {
	return m.getByTokenFn(ctx, token)
}

func (m *mockShareRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.Share, error) {
	return m.getByTripIDFn(ctx, tripID)
}

func (m *mockShareRepo) Update(ctx context.Context, share domain.Share) (domain.Share, error) {
	return m.updateFn(ctx, share)
}

type mockCommentRepo struct {
	createFn      func(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	listByTokenFn func(ctx context.Context, token string) ([]domain.Comment, error)
}

var _ repo.CommentRepo = (*mockCommentRepo)(nil)

func (m *mockCommentRepo) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	return m.createFn(ctx, comment)
}

func (m *mockCommentRepo) ListByToken(ctx context.Context, token string) ([]domain.Comment, error) {
	return m.listByTokenFn(ctx, token)
}

// validTrip returns a trip that passes validation, for tests to mutate.
func validTrip(ownerID string) domain.Trip {
	return domain.Trip{
		OwnerID:     ownerID,
		Destination: "Lisbon",
		Days:        3,
		TravelStyle: "relaxed",
		BudgetTier:  "mid",
		Itinerary: []domain.DayPlan{
			{Day: 1, Title: "Alfama on foot", Activities: []domain.Activity{
				{Time: "09:00", Name: "Castelo de São Jorge", Location: "Alfama"},
			}},
		},
	}
}
