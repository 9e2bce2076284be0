// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/pkg/errutil"
)

func testRating() *catalog.Rating {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &catalog.Rating{
		ID:        ulid.Make(),
		UserID:    ulid.Make(),
		FilmID:    ulid.Make(),
		Value:     4,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ratingColumns() []string {
	return []string{"id", "user_id", "film_id", "value", "created_at", "updated_at"}
}

func ratingRows(r *catalog.Rating) *pgxmock.Rows {
	return pgxmock.NewRows(ratingColumns()).AddRow(
		r.ID.String(), r.UserID.String(), r.FilmID.String(), r.Value, r.CreatedAt, r.UpdatedAt,
	)
}

func TestRatingRepository_Create(t *testing.T) {
	rating := testRating()

	t.Run("successful insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO ratings`).
			WithArgs(rating.ID.String(), rating.UserID.String(), rating.FilmID.String(),
				rating.Value, rating.CreatedAt, rating.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewRatingRepository(mock)
		require.NoError(t, repo.Create(context.Background(), rating))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate pair maps to conflict", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO ratings`).
			WithArgs(rating.ID.String(), rating.UserID.String(), rating.FilmID.String(),
				rating.Value, rating.CreatedAt, rating.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "ratings_user_film_idx"})

		repo := NewRatingRepository(mock)
		err = repo.Create(context.Background(), rating)
		assert.ErrorIs(t, err, catalog.ErrConflict)
		errutil.AssertErrorCode(t, err, "RATING_EXISTS")
		errutil.AssertErrorContext(t, err, "film_id", rating.FilmID.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO ratings`).
			WithArgs(rating.ID.String(), rating.UserID.String(), rating.FilmID.String(),
				rating.Value, rating.CreatedAt, rating.UpdatedAt).
			WillReturnError(errors.New("connection refused"))

		repo := NewRatingRepository(mock)
		err = repo.Create(context.Background(), rating)
		require.Error(t, err)
		assert.NotErrorIs(t, err, catalog.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRatingRepository_GetByUserAndFilm(t *testing.T) {
	rating := testRating()

	t.Run("returns rating", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM ratings WHERE user_id`).
			WithArgs(rating.UserID.String(), rating.FilmID.String()).
			WillReturnRows(ratingRows(rating))

		repo := NewRatingRepository(mock)
		got, err := repo.GetByUserAndFilm(context.Background(), rating.UserID, rating.FilmID)
		require.NoError(t, err)
		assert.Equal(t, rating.ID, got.ID)
		assert.Equal(t, rating.Value, got.Value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found wraps sentinel", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM ratings WHERE user_id`).
			WithArgs(rating.UserID.String(), rating.FilmID.String()).
			WillReturnRows(pgxmock.NewRows(ratingColumns()))

		repo := NewRatingRepository(mock)
		got, err := repo.GetByUserAndFilm(context.Background(), rating.UserID, rating.FilmID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
		errutil.AssertErrorCode(t, err, "RATING_NOT_FOUND")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRatingRepository_Update(t *testing.T) {
	rating := testRating()

	t.Run("updates value", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE ratings SET value`).
			WithArgs(rating.ID.String(), rating.Value, rating.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewRatingRepository(mock)
		require.NoError(t, repo.Update(context.Background(), rating))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing rating", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE ratings SET value`).
			WithArgs(rating.ID.String(), rating.Value, rating.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewRatingRepository(mock)
		err = repo.Update(context.Background(), rating)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRatingRepository_Delete(t *testing.T) {
	id := ulid.Make()

	t.Run("deletes existing rating", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM ratings`).
			WithArgs(id.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := NewRatingRepository(mock)
		require.NoError(t, repo.Delete(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing rating", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM ratings`).
			WithArgs(id.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewRatingRepository(mock)
		err = repo.Delete(context.Background(), id)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
		errutil.AssertErrorCode(t, err, "RATING_NOT_FOUND")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRatingRepository_ListByFilm(t *testing.T) {
	filmID := ulid.Make()

	t.Run("returns all ratings for the film", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now().UTC().Truncate(time.Microsecond)
		rows := pgxmock.NewRows(ratingColumns()).
			AddRow(ulid.Make().String(), ulid.Make().String(), filmID.String(), 3, now, now).
			AddRow(ulid.Make().String(), ulid.Make().String(), filmID.String(), 5, now, now).
			AddRow(ulid.Make().String(), ulid.Make().String(), filmID.String(), 4, now, now)

		mock.ExpectQuery(`SELECT (.+) FROM ratings WHERE film_id`).
			WithArgs(filmID.String()).
			WillReturnRows(rows)

		repo := NewRatingRepository(mock)
		ratings, err := repo.ListByFilm(context.Background(), filmID)
		require.NoError(t, err)
		require.Len(t, ratings, 3)
		assert.Equal(t, 3, ratings[0].Value)
		assert.Equal(t, 5, ratings[1].Value)
		assert.Equal(t, 4, ratings[2].Value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("film with no ratings returns empty slice", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM ratings WHERE film_id`).
			WithArgs(filmID.String()).
			WillReturnRows(pgxmock.NewRows(ratingColumns()))

		repo := NewRatingRepository(mock)
		ratings, err := repo.ListByFilm(context.Background(), filmID)
		require.NoError(t, err)
		assert.Empty(t, ratings)
		assert.NotNil(t, ratings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
