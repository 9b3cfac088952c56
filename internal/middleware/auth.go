package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/wanderly-app/backend/internal/auth"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the values this middleware stores.
type contextKey string

const ownerIDKey contextKey = "ownerID"

// RequireOwner returns a middleware that enforces owner authentication.
// It reads a Bearer token from the Authorization header, validates it, and
// stores the owner id in the request context. Missing or invalid tokens stop
// the chain with 401.
//
// Share resolution and comment routes are public by design and must not be
// wrapped with this.
func RequireOwner(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}
			ownerID, err := tokens.Validate(raw)
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerIDFromContext retrieves the authenticated owner id placed in the
// context by RequireOwner. Returns ("", false) on unauthenticated requests.
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ownerIDKey).(string)
	return id, ok && id != ""
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"valid authentication required"}}`))
}
