// Package auth provides owner identity tokens and share password hashing.
// Owner identity is a signed HS256 JWT whose subject is the owner id; the
// server never issues login sessions itself — the frontend's auth provider
// does — it only validates what it receives.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "wanderly"

// TokenService validates (and, for tests and tooling, issues) owner tokens.
// It holds the HMAC secret used for both signing and verification.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret must be at least 16 characters; use 32+ bytes of random data
// in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Issue creates a signed token for the given ownerID with the given lifetime.
func (s *TokenService) Issue(ownerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   ownerID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth.TokenService.Issue: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string and returns the owner id from
// the subject claim. WithValidMethods pins the algorithm to HS256 so a token
// signed with "none" (or any other method) is rejected outright.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.New("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("auth: token has no subject")
	}
	return claims.Subject, nil
}
