package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wanderly-app/backend/internal/domain"
	"github.com/wanderly-app/backend/internal/repo"
)

// CommentService implements the public comment ledger attached to shares.
type CommentService struct {
	shares   repo.ShareRepo
	comments repo.CommentRepo

	// now is swappable in tests to pin the clock for the share-active check.
	now func() time.Time
}

// NewCommentService constructs a CommentService backed by the provided repos.
func NewCommentService(shares repo.ShareRepo, comments repo.CommentRepo) *CommentService {
	return &CommentService{shares: shares, comments: comments, now: time.Now}
}

// Add appends a comment to the share carrying the given token.
//
// The share must currently resolve (exist, be enabled, be unexpired) but the
// share password is deliberately not required: comments attach at the token
// level, and anyone who holds the token may leave one even behind a password
// wall. Comments carry no itinerary data, so they are treated as
// lower-sensitivity than the trip itself.
//
// Returns domain.ErrNotFound if the share does not resolve, and
// domain.ErrValidation if the message is empty after trimming. A blank name
// is stored as "Anonymous".
func (s *CommentService) Add(ctx context.Context, token, name, message string) (domain.Comment, error) {
	share, err := s.shares.GetByToken(ctx, token)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Add: %w", err)
	}
	if !share.Active(s.now()) {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Add: %w", domain.ErrNotFound)
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return domain.Comment{}, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.AnonymousName
	}

	result, err := s.comments.Create(ctx, domain.Comment{
		ShareID:    share.ID,
		AuthorName: name,
		Message:    message,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Add: %w", err)
	}
	return result, nil
}

// List returns all comments for a token, newest first.
// An unknown or inactive token yields an empty slice, never an error —
// listing is lenient by design. Always returns a non-nil slice.
func (s *CommentService) List(ctx context.Context, token string) ([]domain.Comment, error) {
	comments, err := s.comments.ListByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("service.CommentService.List: %w", err)
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}
