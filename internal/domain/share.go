package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenLength is the number of characters in a share token.
const TokenLength = 12

// TokenAlphabet is the character set share tokens are drawn from.
const TokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Share is the public-access projection of exactly one trip.
// The token is generated once and survives enable/disable cycles — toggling
// sharing off and back on never rotates it.
// PasswordHash is a bcrypt hash when the owner set a password, nil otherwise;
// it is never serialized to clients.
type Share struct {
	ID           uuid.UUID `json:"-"`
	TripID       uuid.UUID `json:"trip_id"`
	Token        string    `json:"token"`
	Enabled      bool      `json:"enabled"`
	PasswordHash *string   `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPassword reports whether the share is password-protected.
// Exposed to clients so the share view can prompt for a password
// without ever revealing the hash.
func (s Share) HasPassword() bool {
	return s.PasswordHash != nil
}

// Active reports whether the share resolves publicly at the given instant.
// A disabled share is inactive regardless of expiry.
func (s Share) Active(now time.Time) bool {
	return s.Enabled && now.Before(s.ExpiresAt)
}
