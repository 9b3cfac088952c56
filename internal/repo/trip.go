// Package repo contains all database access logic for the Wanderly backend.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/wanderly-app/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// tripColumns is the SELECT list shared by every trip query, in scanTrip order.
const tripColumns = `id, owner_id, destination, days, travel_style, budget_tier,
		daily_budget, preferences, itinerary, weather, cost_breakdown,
		points_of_interest, created_at, updated_at`

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// Owner-scoped operations fold the ownership check into the WHERE clause:
// a trip that exists under a different owner and a trip that does not exist
// produce the same domain.ErrNotFound, so callers can never tell them apart.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetOwned retrieves a trip by id, scoped to ownerID.
	// Returns domain.ErrNotFound if the trip is absent or owned by someone else.
	GetOwned(ctx context.Context, id uuid.UUID, ownerID string) (domain.Trip, error)

	// GetByID retrieves a trip by id with no ownership scope.
	// Only the share-resolution path may use this — everything owner-facing
	// goes through GetOwned.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByOwner returns all trips owned by ownerID, most recently saved first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error)

	// Update overwrites the mutable fields of a trip, scoped to its owner,
	// refreshes updated_at, and returns the updated record.
	// Returns domain.ErrNotFound under the same policy as GetOwned.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by id, scoped to ownerID.
	// Returns domain.ErrNotFound under the same policy as GetOwned — a second
	// delete of the same trip is therefore an error, not a no-op.
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error

	// StatsByOwner returns the owner's trip total and how many of those trips
	// currently have sharing enabled.
	StatsByOwner(ctx context.Context, ownerID string) (domain.TripStats, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (owner_id, destination, days, travel_style, budget_tier,
			daily_budget, preferences, itinerary, weather, cost_breakdown,
			points_of_interest)
		VALUES (@owner_id, @destination, @days, @travel_style, @budget_tier,
			@daily_budget, @preferences, @itinerary, @weather, @cost_breakdown,
			@points_of_interest)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetOwned(ctx context.Context, id uuid.UUID, ownerID string) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetOwned: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByOwner: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: rows: %w", err)
	}

	return trips, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	// owner_id is never in the SET list — ownership is immutable.
	const q = `
		UPDATE trips
		SET destination        = @destination,
		    days               = @days,
		    travel_style       = @travel_style,
		    budget_tier        = @budget_tier,
		    daily_budget       = @daily_budget,
		    preferences        = @preferences,
		    itinerary          = @itinerary,
		    weather            = @weather,
		    cost_breakdown     = @cost_breakdown,
		    points_of_interest = @points_of_interest,
		    updated_at         = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	const q = `DELETE FROM trips WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) StatsByOwner(ctx context.Context, ownerID string) (domain.TripStats, error) {
	const q = `
		SELECT count(*),
		       count(*) FILTER (WHERE s.enabled)
		FROM trips t
		LEFT JOIN shares s ON s.trip_id = t.id
		WHERE t.owner_id = @owner_id`

	var stats domain.TripStats
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err := row.Scan(&stats.Total, &stats.SharedCount); err != nil {
		return domain.TripStats{}, fmt.Errorf("repo.TripRepo.StatsByOwner: %w", err)
	}
	return stats, nil
}

// tripArgs builds the NamedArgs shared by Create and Update.
// Struct-typed values are stored as jsonb; pgx marshals them via encoding/json.
func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"owner_id":           trip.OwnerID,
		"destination":        trip.Destination,
		"days":               trip.Days,
		"travel_style":       trip.TravelStyle,
		"budget_tier":        trip.BudgetTier,
		"daily_budget":       trip.DailyBudget, // nil becomes NULL
		"preferences":        trip.Preferences,
		"itinerary":          trip.Itinerary,
		"weather":            trip.Weather,
		"cost_breakdown":     trip.CostBreakdown,
		"points_of_interest": trip.PointsOfInterest,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, nullable numeric, and jsonb conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.OwnerID, &t.Destination, &t.Days, &t.TravelStyle,
		&t.BudgetTier, &t.DailyBudget, &t.Preferences, &t.Itinerary,
		&t.Weather, &t.CostBreakdown, &t.PointsOfInterest,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
