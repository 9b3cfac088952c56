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

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// ShareRepo defines the persistence operations for Shares.
//
// The unique index on shares.token is the authoritative guard against token
// collisions: Create surfaces a constraint hit as domain.ErrConflict and the
// service retries with a fresh token. No in-process pre-check is trusted.
type ShareRepo interface {
	// Create inserts a new share and returns the persisted record.
	// Returns domain.ErrConflict when the token or trip_id unique index
	// rejects the insert.
	Create(ctx context.Context, share domain.Share) (domain.Share, error)

	// GetByToken retrieves a share by its public token.
	// Returns domain.ErrNotFound if no share carries that token. Visibility
	// rules (enabled flag, expiry, password) are the service's concern.
	GetByToken(ctx context.Context, token string) (domain.Share, error)

	// GetByTripID retrieves the share belonging to a trip.
	// Returns domain.ErrNotFound if the trip has no share yet.
	GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.Share, error)

	// Update overwrites enabled, password_hash, and expires_at, refreshes
	// updated_at, and returns the updated record. The token is never written.
	// Returns domain.ErrNotFound if the share does not exist.
	Update(ctx context.Context, share domain.Share) (domain.Share, error)
}

// pgShareRepo is the Postgres implementation of ShareRepo.
type pgShareRepo struct {
	db db
}

// NewShareRepo constructs a ShareRepo backed by the provided db connection.
func NewShareRepo(db db) ShareRepo {
	return &pgShareRepo{db: db}
}

func (r *pgShareRepo) Create(ctx context.Context, share domain.Share) (domain.Share, error) {
	const q = `
		INSERT INTO shares (trip_id, token, enabled, password_hash, expires_at)
		VALUES (@trip_id, @token, @enabled, @password_hash, @expires_at)
		RETURNING id, trip_id, token, enabled, password_hash, expires_at, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":       share.TripID,
		"token":         share.Token,
		"enabled":       share.Enabled,
		"password_hash": share.PasswordHash, // nil becomes NULL
		"expires_at":    share.ExpiresAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanShare(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.Share{}, fmt.Errorf("repo.ShareRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Share{}, fmt.Errorf("repo.ShareRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgShareRepo) GetByToken(ctx context.Context, token string) (domain.Share, error) {
	const q = `
		SELECT id, trip_id, token, enabled, password_hash, expires_at, created_at, updated_at
		FROM shares
		WHERE token = @token`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token})
	result, err := scanShare(row)
	if err != nil {
		return domain.Share{}, fmt.Errorf("repo.ShareRepo.GetByToken: %w", err)
	}
	return result, nil
}

func (r *pgShareRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.Share, error) {
	const q = `
		SELECT id, trip_id, token, enabled, password_hash, expires_at, created_at, updated_at
		FROM shares
		WHERE trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	result, err := scanShare(row)
	if err != nil {
		return domain.Share{}, fmt.Errorf("repo.ShareRepo.GetByTripID: %w", err)
	}
	return result, nil
}

func (r *pgShareRepo) Update(ctx context.Context, share domain.Share) (domain.Share, error) {
	// token is never in the SET list — it survives enable/disable cycles.
	const q = `
		UPDATE shares
		SET enabled       = @enabled,
		    password_hash = @password_hash,
		    expires_at    = @expires_at,
		    updated_at    = now()
		WHERE id = @id
		RETURNING id, trip_id, token, enabled, password_hash, expires_at, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":            share.ID,
		"enabled":       share.Enabled,
		"password_hash": share.PasswordHash,
		"expires_at":    share.ExpiresAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanShare(row)
	if err != nil {
		return domain.Share{}, fmt.Errorf("repo.ShareRepo.Update: %w", err)
	}
	return result, nil
}

// scanShare maps a single database row into a domain.Share.
func scanShare(s scanner) (domain.Share, error) {
	var (
		sh     domain.Share
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &sh.Token, &sh.Enabled, &sh.PasswordHash,
		&sh.ExpiresAt, &sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Share{}, domain.ErrNotFound
		}
		return domain.Share{}, err
	}

	sh.ID = uuid.UUID(id.Bytes)
	sh.TripID = uuid.UUID(tripID.Bytes)
	return sh, nil
}
