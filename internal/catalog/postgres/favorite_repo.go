// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package postgres

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cinedex/cinedex/internal/catalog"
)

// FavoriteRepository implements catalog.FavoriteRepository using PostgreSQL.
type FavoriteRepository struct {
	pool poolIface
}

// NewFavoriteRepository creates a new FavoriteRepository.
func NewFavoriteRepository(pool poolIface) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// Add marks a film as a favorite. ON CONFLICT DO NOTHING makes the insert
// idempotent when two adds for the same pair race.
func (r *FavoriteRepository) Add(ctx context.Context, userID, filmID ulid.ULID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_favorites (user_id, film_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, film_id) DO NOTHING
	`, userID.String(), filmID.String(), time.Now())
	if err != nil {
		return oops.With("operation", "add favorite").
			With("user_id", userID.String()).
			With("film_id", filmID.String()).
			Wrap(err)
	}
	return nil
}

// Remove unmarks a favorite.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, filmID ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM user_favorites WHERE user_id = $1 AND film_id = $2
	`, userID.String(), filmID.String())
	if err != nil {
		return oops.With("operation", "remove favorite").
			With("user_id", userID.String()).
			With("film_id", filmID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("FAVORITE_NOT_FOUND").
			With("user_id", userID.String()).
			With("film_id", filmID.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

// ListByUser returns the user's favorite films, newest favorite first.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*catalog.Film, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.id, f.title, f.synopsis, f.release_year, f.genres, f.average_rating, f.total_ratings, f.created_by, f.created_at, f.updated_at
		FROM films f
		JOIN user_favorites uf ON uf.film_id = f.id
		WHERE uf.user_id = $1
		ORDER BY uf.created_at DESC
	`, userID.String())
	if err != nil {
		return nil, oops.With("operation", "list favorites").With("user_id", userID.String()).Wrap(err)
	}
	defer rows.Close()

	return scanFilms(rows)
}

// Exists reports whether the user has favorited the film.
func (r *FavoriteRepository) Exists(ctx context.Context, userID, filmID ulid.ULID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_favorites WHERE user_id = $1 AND film_id = $2)
	`, userID.String(), filmID.String()).Scan(&exists)
	if err != nil {
		return false, oops.With("operation", "check favorite").
			With("user_id", userID.String()).
			With("film_id", filmID.String()).
			Wrap(err)
	}
	return exists, nil
}

// Compile-time interface check.
var _ catalog.FavoriteRepository = (*FavoriteRepository)(nil)
