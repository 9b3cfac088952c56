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

// mockCommentServicer is a test double for handler.CommentServicer.
type mockCommentServicer struct {
	add  func(ctx context.Context, token, name, message string) (domain.Comment, error)
	list func(ctx context.Context, token string) ([]domain.Comment, error)
}

func (m *mockCommentServicer) Add(ctx context.Context, token, name, message string) (domain.Comment, error) {
	return m.add(ctx, token, name, message)
}

func (m *mockCommentServicer) List(ctx context.Context, token string) ([]domain.Comment, error) {
	return m.list(ctx, token)
}

var _ handler.CommentServicer = (*mockCommentServicer)(nil)

func commentServer(svc handler.CommentServicer) *handler.Server {
	return handler.NewServer(nil, nil, svc, nil, nil, nil, nil)
}

// ---- POST /api/v1/shared/{token}/comments ----------------------------------

func TestAddComment_201(t *testing.T) {
	svc := &mockCommentServicer{
		add: func(_ context.Context, token, name, message string) (domain.Comment, error) {
			assert.Equal(t, "aB3dE5fG7hJ9", token)
			assert.Equal(t, "Maya", name)
			assert.Equal(t, "Loved day two!", message)
			return domain.Comment{
				ID:         uuid.New(),
				AuthorName: name,
				Message:    message,
				CreatedAt:  time.Now().UTC(),
			}, nil
		},
	}
	router, _ := newRouter(t, commentServer(svc))

	body := jsonBody(t, map[string]any{"name": "Maya", "message": "Loved day two!"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shared/aB3dE5fG7hJ9/comments", body)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp domain.Comment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Maya", resp.AuthorName)
	assert.Equal(t, "Loved day two!", resp.Message)
}

func TestAddComment_422_EmptyMessage(t *testing.T) {
	svc := &mockCommentServicer{
		add: func(_ context.Context, _, _, _ string) (domain.Comment, error) {
			return domain.Comment{}, fmt.Errorf("%w: message is required", domain.ErrValidation)
		},
	}
	router, _ := newRouter(t, commentServer(svc))

	body := jsonBody(t, map[string]any{"message": "   "})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shared/aB3dE5fG7hJ9/comments", body)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeErr(t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "message is required", resp.Error.Message)
}

func TestAddComment_404_InactiveShare(t *testing.T) {
	svc := &mockCommentServicer{
		add: func(_ context.Context, _, _, _ string) (domain.Comment, error) {
			return domain.Comment{}, fmt.Errorf("add: %w", domain.ErrNotFound)
		},
	}
	router, _ := newRouter(t, commentServer(svc))

	body := jsonBody(t, map[string]any{"message": "hello"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shared/000000000000/comments", body)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeErr(t, rec)
	assert.Equal(t, "shared trip not found", resp.Error.Message)
}

// ---- GET /api/v1/shared/{token}/comments -----------------------------------

func TestListComments_200(t *testing.T) {
	svc := &mockCommentServicer{
		list: func(_ context.Context, token string) ([]domain.Comment, error) {
			assert.Equal(t, "aB3dE5fG7hJ9", token)
			return []domain.Comment{
				{ID: uuid.New(), AuthorName: "Maya", Message: "second"},
				{ID: uuid.New(), AuthorName: "Anonymous", Message: "first"},
			}, nil
		},
	}
	router, _ := newRouter(t, commentServer(svc))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shared/aB3dE5fG7hJ9/comments", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.Comment `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "second", resp.Data[0].Message)
}

func TestListComments_200_UnknownTokenIsEmpty(t *testing.T) {
	svc := &mockCommentServicer{
		list: func(_ context.Context, _ string) ([]domain.Comment, error) {
			return []domain.Comment{}, nil
		},
	}
	router, _ := newRouter(t, commentServer(svc))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shared/000000000000/comments", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}
