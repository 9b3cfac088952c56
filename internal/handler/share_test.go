package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderly-app/backend/internal/domain"
	"github.com/wanderly-app/backend/internal/handler"
)

// mockShareServicer is a test double for handler.ShareServicer.
type mockShareServicer struct {
	toggle  func(ctx context.Context, tripID uuid.UUID, ownerID string, enabled bool, password *string) (domain.Share, error)
	resolve func(ctx context.Context, token, password string) (domain.Trip, domain.Share, error)
}

func (m *mockShareServicer) Toggle(ctx context.Context, tripID uuid.UUID, ownerID string, enabled bool, password *string) (domain.Share, error) {
	return m.toggle(ctx, tripID, ownerID, enabled, password)
}

func (m *mockShareServicer) Resolve(ctx context.Context, token, password string) (domain.Trip, domain.Share, error) {
	return m.resolve(ctx, token, password)
}

var _ handler.ShareServicer = (*mockShareServicer)(nil)

func shareServer(svc handler.ShareServicer) *handler.Server {
	return handler.NewServer(nil, svc, nil, nil, nil, nil, nil)
}

func shareFixture() domain.Share {
	return domain.Share{
		ID:        uuid.New(),
		TripID:    uuid.New(),
		Token:     "aB3dE5fG7hJ9",
		Enabled:   true,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour).UTC(),
	}
}

// ---- PUT /api/v1/trips/{id}/share ------------------------------------------

func TestToggleShare_200(t *testing.T) {
	fixture := shareFixture()
	svc := &mockShareServicer{
		toggle: func(_ context.Context, tripID uuid.UUID, ownerID string, enabled bool, password *string) (domain.Share, error) {
			assert.Equal(t, fixture.TripID, tripID)
			assert.Equal(t, "user-1", ownerID)
			assert.True(t, enabled)
			require.NotNil(t, password)
			assert.Equal(t, "hunter2", *password)
			hash := "$2a$10$hash"
			fixture.PasswordHash = &hash
			return fixture, nil
		},
	}
	router, bearer := newRouter(t, shareServer(svc))

	body := jsonBody(t, map[string]any{"enabled": true, "password": "hunter2"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/v1/trips/"+fixture.TripID.String()+"/share", bearer, body))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token       string `json:"token"`
		Enabled     bool   `json:"enabled"`
		HasPassword bool   `json:"has_password"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.Token, resp.Token)
	assert.True(t, resp.Enabled)
	assert.True(t, resp.HasPassword)
	// The hash itself never appears in the payload.
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestToggleShare_OmittedPasswordStaysNil(t *testing.T) {
	svc := &mockShareServicer{
		toggle: func(_ context.Context, _ uuid.UUID, _ string, enabled bool, password *string) (domain.Share, error) {
			assert.False(t, enabled)
			assert.Nil(t, password, "an absent password field must reach the service as nil")
			return shareFixture(), nil
		},
	}
	router, bearer := newRouter(t, shareServer(svc))

	body := jsonBody(t, map[string]any{"enabled": false})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/v1/trips/"+uuid.NewString()+"/share", bearer, body))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestToggleShare_404_NotOwned(t *testing.T) {
	svc := &mockShareServicer{
		toggle: func(_ context.Context, _ uuid.UUID, _ string, _ bool, _ *string) (domain.Share, error) {
			return domain.Share{}, domain.ErrNotFound
		},
	}
	router, bearer := newRouter(t, shareServer(svc))

	body := jsonBody(t, map[string]any{"enabled": true})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/v1/trips/"+uuid.NewString()+"/share", bearer, body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeErr(t, rec)
	assert.Equal(t, "not_found", resp.Error.Code)
}

// ---- GET /api/v1/shared/{token} --------------------------------------------

func TestResolveShare_200(t *testing.T) {
	trip := tripFixture()
	share := shareFixture()
	svc := &mockShareServicer{
		resolve: func(_ context.Context, token, password string) (domain.Trip, domain.Share, error) {
			assert.Equal(t, share.Token, token)
			assert.Empty(t, password)
			return trip, share, nil
		},
	}
	router, _ := newRouter(t, shareServer(svc))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shared/"+share.Token, nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Trip  domain.Trip `json:"trip"`
		Share struct {
			Token string `json:"token"`
		} `json:"share"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, trip.ID, resp.Trip.ID)
	assert.Equal(t, share.Token, resp.Share.Token)
}

func TestResolveShare_PasswordFromQuery(t *testing.T) {
	trip := tripFixture()
	share := shareFixture()
	svc := &mockShareServicer{
		resolve: func(_ context.Context, _, password string) (domain.Trip, domain.Share, error) {
			assert.Equal(t, "hunter2", password)
			return trip, share, nil
		},
	}
	router, _ := newRouter(t, shareServer(svc))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shared/"+share.Token+"?password=hunter2", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResolveShare_401_PasswordRequired(t *testing.T) {
	svc := &mockShareServicer{
		resolve: func(_ context.Context, _, _ string) (domain.Trip, domain.Share, error) {
			return domain.Trip{}, domain.Share{}, fmt.Errorf("resolve: %w", domain.ErrPasswordRequired)
		},
	}
	router, _ := newRouter(t, shareServer(svc))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shared/aB3dE5fG7hJ9", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeErr(t, rec)
	assert.Equal(t, "password_required", resp.Error.Code)
}

func TestResolveShare_404_UnknownOrInactive(t *testing.T) {
	svc := &mockShareServicer{
		resolve: func(_ context.Context, _, _ string) (domain.Trip, domain.Share, error) {
			return domain.Trip{}, domain.Share{}, fmt.Errorf("resolve: %w", domain.ErrNotFound)
		},
	}
	router, _ := newRouter(t, shareServer(svc))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shared/000000000000", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeErr(t, rec)
	assert.Equal(t, "not_found", resp.Error.Code)
	assert.Equal(t, "shared trip not found", resp.Error.Message)
}
