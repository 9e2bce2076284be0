// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cinedex/cinedex/internal/catalog"
)

// CommentRepository implements catalog.CommentRepository using PostgreSQL.
type CommentRepository struct {
	pool poolIface
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool poolIface) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create persists a new comment.
// Callers must validate the comment before calling this method.
func (r *CommentRepository) Create(ctx context.Context, comment *catalog.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, film_id, user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, comment.ID.String(), comment.FilmID.String(), comment.UserID.String(),
		comment.Body, comment.CreatedAt)
	if err != nil {
		return oops.With("operation", "create comment").With("id", comment.ID.String()).Wrap(err)
	}
	return nil
}

// GetByID retrieves a comment by ID.
func (r *CommentRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Comment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, film_id, user_id, body, created_at
		FROM comments WHERE id = $1
	`, id.String())
	comment, err := scanComment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("COMMENT_NOT_FOUND").With("id", id.String()).Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get comment").With("id", id.String()).Wrap(err)
	}
	return comment, nil
}

// ListByFilm returns comments on a film, newest first.
func (r *CommentRepository) ListByFilm(ctx context.Context, filmID ulid.ULID, limit, offset int) ([]*catalog.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, film_id, user_id, body, created_at
		FROM comments WHERE film_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
	`, filmID.String(), limit, offset)
	if err != nil {
		return nil, oops.With("operation", "list comments").With("film_id", filmID.String()).Wrap(err)
	}
	defer rows.Close()

	comments := make([]*catalog.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate comments").Wrap(err)
	}

	return comments, nil
}

// Delete removes a comment by ID.
func (r *CommentRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id.String())
	if err != nil {
		return oops.With("operation", "delete comment").With("id", id.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("COMMENT_NOT_FOUND").With("id", id.String()).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// scanComment scans comment columns from any pgx row source.
func scanComment(row pgx.Row) (*catalog.Comment, error) {
	var comment catalog.Comment
	var idStr, filmIDStr, userIDStr string

	err := row.Scan(&idStr, &filmIDStr, &userIDStr, &comment.Body, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.With("operation", "scan comment").Wrap(err)
	}

	if comment.ID, err = ulid.Parse(idStr); err != nil {
		return nil, oops.With("operation", "parse comment id").With("id", idStr).Wrap(err)
	}
	if comment.FilmID, err = ulid.Parse(filmIDStr); err != nil {
		return nil, oops.With("operation", "parse comment film_id").With("film_id", filmIDStr).Wrap(err)
	}
	if comment.UserID, err = ulid.Parse(userIDStr); err != nil {
		return nil, oops.With("operation", "parse comment user_id").With("user_id", userIDStr).Wrap(err)
	}

	return &comment, nil
}

// Compile-time interface check.
var _ catalog.CommentRepository = (*CommentRepository)(nil)
