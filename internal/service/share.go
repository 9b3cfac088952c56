package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/wanderly-app/backend/internal/auth"
	"github.com/wanderly-app/backend/internal/domain"
	"github.com/wanderly-app/backend/internal/repo"
)

// maxTokenRetries bounds the collision-retry loop in ensureShare. A collision
// on a 12-character alphanumeric token is vanishingly rare; hitting the bound
// means something is wrong with the random source, not bad luck.
const maxTokenRetries = 5

// ShareService implements the share registry: token issuance, owner-gated
// toggling, and public resolution with password and expiry gates.
type ShareService struct {
	trips  repo.TripRepo
	shares repo.ShareRepo
	hasher *auth.PasswordHasher
	ttl    time.Duration

	// now is swappable in tests to pin the clock for expiry checks.
	now func() time.Time
}

// NewShareService constructs a ShareService. ttl is the expiry horizon
// applied when a share is first created (config value, e.g. 30 days).
func NewShareService(trips repo.TripRepo, shares repo.ShareRepo, hasher *auth.PasswordHasher, ttl time.Duration) *ShareService {
	return &ShareService{
		trips:  trips,
		shares: shares,
		hasher: hasher,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Toggle flips sharing for the owner's trip and optionally sets or clears the
// share password. The share is created lazily on first toggle; its token is
// generated once and preserved across all later enable/disable cycles.
//
// password semantics: nil leaves the current password untouched, an empty
// string clears it, anything else replaces it (stored as a bcrypt hash).
//
// Returns domain.ErrNotFound if the trip is absent or owned by someone else.
func (s *ShareService) Toggle(ctx context.Context, tripID uuid.UUID, ownerID string, enabled bool, password *string) (domain.Share, error) {
	trip, err := s.trips.GetOwned(ctx, tripID, ownerID)
	if err != nil {
		return domain.Share{}, fmt.Errorf("service.ShareService.Toggle: %w", err)
	}

	share, err := s.ensureShare(ctx, trip.ID)
	if err != nil {
		return domain.Share{}, fmt.Errorf("service.ShareService.Toggle: %w", err)
	}

	share.Enabled = enabled
	if password != nil {
		if *password == "" {
			share.PasswordHash = nil
		} else {
			hash, err := s.hasher.Hash(*password)
			if err != nil {
				return domain.Share{}, fmt.Errorf("service.ShareService.Toggle: %w", err)
			}
			share.PasswordHash = &hash
		}
	}

	updated, err := s.shares.Update(ctx, share)
	if err != nil {
		return domain.Share{}, fmt.Errorf("service.ShareService.Toggle: %w", err)
	}
	return updated, nil
}

// Resolve returns the trip behind a share token, for public display.
//
// An unknown token, a disabled share, and an expired share all fail with
// domain.ErrNotFound. A password-protected share fails with
// domain.ErrPasswordRequired both when no password was supplied and when the
// wrong one was — the caller learns a password is needed but nothing else.
func (s *ShareService) Resolve(ctx context.Context, token, password string) (domain.Trip, domain.Share, error) {
	share, err := s.shares.GetByToken(ctx, token)
	if err != nil {
		return domain.Trip{}, domain.Share{}, fmt.Errorf("service.ShareService.Resolve: %w", err)
	}
	if !share.Active(s.now()) {
		return domain.Trip{}, domain.Share{}, fmt.Errorf("service.ShareService.Resolve: %w", domain.ErrNotFound)
	}

	if share.HasPassword() {
		if password == "" {
			return domain.Trip{}, domain.Share{}, fmt.Errorf("service.ShareService.Resolve: %w", domain.ErrPasswordRequired)
		}
		if err := s.hasher.Verify(*share.PasswordHash, password); err != nil {
			if errors.Is(err, auth.ErrPasswordMismatch) {
				return domain.Trip{}, domain.Share{}, fmt.Errorf("service.ShareService.Resolve: %w", domain.ErrPasswordRequired)
			}
			return domain.Trip{}, domain.Share{}, fmt.Errorf("service.ShareService.Resolve: %w", err)
		}
	}

	trip, err := s.trips.GetByID(ctx, share.TripID)
	if err != nil {
		return domain.Trip{}, domain.Share{}, fmt.Errorf("service.ShareService.Resolve: %w", err)
	}
	return trip, share, nil
}

// ensureShare returns the trip's share, creating it (disabled, fresh token,
// config-defined expiry) if none exists yet.
//
// Token collisions are handled with a bounded retry: the unique index on
// shares.token is the authoritative guard, and each domain.ErrConflict gets a
// fresh token. A conflict can also mean another request created this trip's
// share concurrently (unique trip_id) — in that case the existing share wins.
func (s *ShareService) ensureShare(ctx context.Context, tripID uuid.UUID) (domain.Share, error) {
	share, err := s.shares.GetByTripID(ctx, tripID)
	if err == nil {
		return share, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Share{}, err
	}

	backoff := retry.WithMaxRetries(maxTokenRetries, retry.NewConstant(time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		token, err := newToken()
		if err != nil {
			return err
		}
		created, err := s.shares.Create(ctx, domain.Share{
			TripID:    tripID,
			Token:     token,
			Enabled:   false,
			ExpiresAt: s.now().Add(s.ttl),
		})
		if err == nil {
			share = created
			return nil
		}
		if errors.Is(err, domain.ErrConflict) {
			// Either our token collided or a racing request already created
			// the share for this trip. Prefer the existing share; otherwise
			// retry with a new token.
			if existing, getErr := s.shares.GetByTripID(ctx, tripID); getErr == nil {
				share = existing
				return nil
			}
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return domain.Share{}, err
	}
	return share, nil
}

// newToken draws domain.TokenLength characters uniformly at random from the
// 62-character alphanumeric alphabet. Rejection sampling keeps the draw
// unbiased: bytes >= 248 (the largest multiple of 62 below 256) are discarded.
func newToken() (string, error) {
	const limit = byte(248)

	out := make([]byte, 0, domain.TokenLength)
	buf := make([]byte, domain.TokenLength*2)
	for len(out) < domain.TokenLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("service: generating share token: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, domain.TokenAlphabet[int(b)%len(domain.TokenAlphabet)])
			if len(out) == domain.TokenLength {
				break
			}
		}
	}
	return string(out), nil
}
