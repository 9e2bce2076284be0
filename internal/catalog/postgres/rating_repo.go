// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cinedex/cinedex/internal/catalog"
)

// RatingRepository implements catalog.RatingRepository using PostgreSQL.
type RatingRepository struct {
	pool poolIface
}

// NewRatingRepository creates a new RatingRepository.
func NewRatingRepository(pool poolIface) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Create persists a new rating. The unique index on (user_id, film_id)
// rejects a second rating for the same pair even when two creates race;
// that violation maps to RATING_EXISTS wrapping catalog.ErrConflict.
func (r *RatingRepository) Create(ctx context.Context, rating *catalog.Rating) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ratings (id, user_id, film_id, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rating.ID.String(), rating.UserID.String(), rating.FilmID.String(),
		rating.Value, rating.CreatedAt, rating.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("RATING_EXISTS").
				With("user_id", rating.UserID.String()).
				With("film_id", rating.FilmID.String()).
				Wrap(catalog.ErrConflict)
		}
		return oops.With("operation", "create rating").With("id", rating.ID.String()).Wrap(err)
	}
	return nil
}

// GetByUserAndFilm retrieves the rating a user gave a film.
func (r *RatingRepository) GetByUserAndFilm(ctx context.Context, userID, filmID ulid.ULID) (*catalog.Rating, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, film_id, value, created_at, updated_at
		FROM ratings WHERE user_id = $1 AND film_id = $2
	`, userID.String(), filmID.String())
	rating, err := scanRating(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("RATING_NOT_FOUND").
			With("user_id", userID.String()).
			With("film_id", filmID.String()).
			Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get rating").With("film_id", filmID.String()).Wrap(err)
	}
	return rating, nil
}

// Update modifies an existing rating's value.
func (r *RatingRepository) Update(ctx context.Context, rating *catalog.Rating) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE ratings SET value = $2, updated_at = $3
		WHERE id = $1
	`, rating.ID.String(), rating.Value, rating.UpdatedAt)
	if err != nil {
		return oops.With("operation", "update rating").With("id", rating.ID.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("RATING_NOT_FOUND").With("id", rating.ID.String()).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Delete removes a rating by ID.
func (r *RatingRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id.String())
	if err != nil {
		return oops.With("operation", "delete rating").With("id", id.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("RATING_NOT_FOUND").With("id", id.String()).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// ListByFilm returns all ratings for a film, oldest first.
func (r *RatingRepository) ListByFilm(ctx context.Context, filmID ulid.ULID) ([]*catalog.Rating, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, film_id, value, created_at, updated_at
		FROM ratings WHERE film_id = $1 ORDER BY created_at ASC
	`, filmID.String())
	if err != nil {
		return nil, oops.With("operation", "list ratings").With("film_id", filmID.String()).Wrap(err)
	}
	defer rows.Close()

	ratings := make([]*catalog.Rating, 0)
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate ratings").Wrap(err)
	}

	return ratings, nil
}

// scanRating scans rating columns from any pgx row source.
func scanRating(row pgx.Row) (*catalog.Rating, error) {
	var rating catalog.Rating
	var idStr, userIDStr, filmIDStr string

	err := row.Scan(&idStr, &userIDStr, &filmIDStr, &rating.Value, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.With("operation", "scan rating").Wrap(err)
	}

	if rating.ID, err = ulid.Parse(idStr); err != nil {
		return nil, oops.With("operation", "parse rating id").With("id", idStr).Wrap(err)
	}
	if rating.UserID, err = ulid.Parse(userIDStr); err != nil {
		return nil, oops.With("operation", "parse rating user_id").With("user_id", userIDStr).Wrap(err)
	}
	if rating.FilmID, err = ulid.Parse(filmIDStr); err != nil {
		return nil, oops.With("operation", "parse rating film_id").With("film_id", filmIDStr).Wrap(err)
	}

	return &rating, nil
}

// Compile-time interface check.
var _ catalog.RatingRepository = (*RatingRepository)(nil)
