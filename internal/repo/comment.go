package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/wanderly-app/backend/internal/domain"
)

// CommentRepo defines the persistence operations for Comments.
// Comments are append-only: there is no update or delete.
type CommentRepo interface {
	// Create inserts a new comment and returns the persisted record.
	Create(ctx context.Context, comment domain.Comment) (domain.Comment, error)

	// ListByToken returns all comments for the share carrying the given
	// token, newest first. An unknown token yields an empty slice, not an
	// error — listing is deliberately lenient.
	ListByToken(ctx context.Context, token string) ([]domain.Comment, error)
}

// pgCommentRepo is the Postgres implementation of CommentRepo.
type pgCommentRepo struct {
	db db
}

// NewCommentRepo constructs a CommentRepo backed by the provided db connection.
func NewCommentRepo(db db) CommentRepo {
	return &pgCommentRepo{db: db}
}

func (r *pgCommentRepo) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	const q = `
		INSERT INTO comments (share_id, author_name, message)
		VALUES (@share_id, @author_name, @message)
		RETURNING id, share_id, author_name, message, created_at`

	args := pgx.NamedArgs{
		"share_id":    comment.ShareID,
		"author_name": comment.AuthorName,
		"message":     comment.Message,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanComment(row)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("repo.CommentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCommentRepo) ListByToken(ctx context.Context, token string) ([]domain.Comment, error) {
	const q = `
		SELECT c.id, c.share_id, c.author_name, c.message, c.created_at
		FROM comments c
		JOIN shares s ON s.id = c.share_id
		WHERE s.token = @token
		ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"token": token})
	if err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.ListByToken: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CommentRepo.ListByToken: scan: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.ListByToken: rows: %w", err)
	}
	return comments, nil
}

// scanComment maps a single database row into a domain.Comment.
func scanComment(s scanner) (domain.Comment, error) {
	var (
		c       domain.Comment
		id      pgtype.UUID
		shareID pgtype.UUID
	)

	err := s.Scan(&id, &shareID, &c.AuthorName, &c.Message, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Comment{}, domain.ErrNotFound
		}
		return domain.Comment{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.ShareID = uuid.UUID(shareID.Bytes)
	return c, nil
}
