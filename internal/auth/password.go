package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor for share passwords.
// Share passwords gate convenience access, not accounts, but there is no
// reason to hash them weakly.
const defaultCost = 12

// ErrPasswordMismatch is returned by Verify when the plaintext does not
// match the stored hash.
var ErrPasswordMismatch = errors.New("auth: password mismatch")

// PasswordHasher hashes and verifies share passwords with bcrypt.
// The cost is injectable so tests can use bcrypt.MinCost instead of paying
// ~250ms per hash.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the default cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: defaultCost}
}

// NewPasswordHasherWithCost creates a PasswordHasher with a custom cost.
// Intended for tests; do not lower the cost in production.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash hashes the given plaintext with bcrypt. The output embeds the salt
// and cost, so it can be stored as-is and verified later without extra state.
// Plaintexts over 72 bytes are rejected — bcrypt would silently truncate them.
func (p *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", errors.New("auth: password must be 72 bytes or fewer")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth.PasswordHasher.Hash: %w", err)
	}
	return string(hashed), nil
}

// Verify checks a plaintext against a stored bcrypt hash.
// Returns ErrPasswordMismatch when they do not match.
func (p *PasswordHasher) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("auth.PasswordHasher.Verify: %w", err)
	}
	return nil
}
