// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cinedex/cinedex/internal/catalog"
)

// FilmRepository implements catalog.FilmRepository using PostgreSQL.
type FilmRepository struct {
	pool poolIface
}

// NewFilmRepository creates a new FilmRepository.
func NewFilmRepository(pool poolIface) *FilmRepository {
	return &FilmRepository{pool: pool}
}

// Create persists a new film.
// Callers must validate the film before calling this method.
func (r *FilmRepository) Create(ctx context.Context, film *catalog.Film) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO films (id, title, synopsis, release_year, genres, average_rating, total_ratings, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, film.ID.String(), film.Title, film.Synopsis, film.ReleaseYear, film.Genres,
		film.AverageRating, film.TotalRatings, film.CreatedBy.String(), film.CreatedAt, film.UpdatedAt)
	if err != nil {
		return oops.With("operation", "create film").With("id", film.ID.String()).Wrap(err)
	}
	return nil
}

// GetByID retrieves a film by ID.
func (r *FilmRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Film, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, synopsis, release_year, genres, average_rating, total_ratings, created_by, created_at, updated_at
		FROM films WHERE id = $1
	`, id.String())
	film, err := scanFilmRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("FILM_NOT_FOUND").With("id", id.String()).Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get film").With("id", id.String()).Wrap(err)
	}
	return film, nil
}

// List returns films matching the filter, newest first. Title matches are
// case-insensitive substring matches; genre matches are case-insensitive
// exact matches against any element of the genres array.
func (r *FilmRepository) List(ctx context.Context, filter catalog.Filter, limit, offset int) ([]*catalog.Film, error) {
	query := `
		SELECT id, title, synopsis, release_year, genres, average_rating, total_ratings, created_by, created_at, updated_at
		FROM films`

	var conditions []string
	var args []any
	if filter.Title != "" {
		args = append(args, filter.Title)
		conditions = append(conditions, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Genre != "" {
		args = append(args, filter.Genre)
		conditions = append(conditions, fmt.Sprintf("$%d ILIKE ANY(genres)", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conditions = append(conditions, fmt.Sprintf("release_year = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.With("operation", "list films").Wrap(err)
	}
	defer rows.Close()

	return scanFilms(rows)
}

// Update modifies a film's descriptive fields. The aggregate columns are
// owned by UpdateAggregate and are never written here.
// Callers must validate the film before calling this method.
func (r *FilmRepository) Update(ctx context.Context, film *catalog.Film) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE films SET title = $2, synopsis = $3, release_year = $4, genres = $5, updated_at = $6
		WHERE id = $1
	`, film.ID.String(), film.Title, film.Synopsis, film.ReleaseYear, film.Genres, film.UpdatedAt)
	if err != nil {
		return oops.With("operation", "update film").With("id", film.ID.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("FILM_NOT_FOUND").With("id", film.ID.String()).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Delete removes a film by ID. Ratings, comments, and favorites referencing
// it go with it via ON DELETE CASCADE.
func (r *FilmRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM films WHERE id = $1`, id.String())
	if err != nil {
		return oops.With("operation", "delete film").With("id", id.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("FILM_NOT_FOUND").With("id", id.String()).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// UpdateAggregate writes the derived rating statistics onto a film. It
// leaves updated_at alone so the timestamp keeps tracking descriptive edits.
func (r *FilmRepository) UpdateAggregate(ctx context.Context, id ulid.ULID, average float64, total int) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE films SET average_rating = $2, total_ratings = $3
		WHERE id = $1
	`, id.String(), average, total)
	if err != nil {
		return oops.With("operation", "update film aggregate").With("id", id.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("FILM_NOT_FOUND").With("id", id.String()).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// filmScanFields holds intermediate scan values for film parsing.
type filmScanFields struct {
	idStr        string
	createdByStr string
}

// scanFilmRow scans a single film from a row.
func scanFilmRow(row pgx.Row) (*catalog.Film, error) {
	var film catalog.Film
	var f filmScanFields

	err := row.Scan(
		&f.idStr, &film.Title, &film.Synopsis, &film.ReleaseYear, &film.Genres,
		&film.AverageRating, &film.TotalRatings, &f.createdByStr, &film.CreatedAt, &film.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.With("operation", "scan film").Wrap(err)
	}

	if err := parseFilmFromFields(&f, &film); err != nil {
		return nil, err
	}

	return &film, nil
}

// parseFilmFromFields converts scan fields to film fields.
func parseFilmFromFields(f *filmScanFields, film *catalog.Film) error {
	var err error
	film.ID, err = ulid.Parse(f.idStr)
	if err != nil {
		return oops.With("operation", "parse film id").With("id", f.idStr).Wrap(err)
	}
	film.CreatedBy, err = ulid.Parse(f.createdByStr)
	if err != nil {
		return oops.With("operation", "parse film created_by").With("created_by", f.createdByStr).Wrap(err)
	}
	return nil
}

func scanFilms(rows pgx.Rows) ([]*catalog.Film, error) {
	films := make([]*catalog.Film, 0)
	for rows.Next() {
		var film catalog.Film
		var f filmScanFields

		if err := rows.Scan(
			&f.idStr, &film.Title, &film.Synopsis, &film.ReleaseYear, &film.Genres,
			&film.AverageRating, &film.TotalRatings, &f.createdByStr, &film.CreatedAt, &film.UpdatedAt,
		); err != nil {
			return nil, oops.With("operation", "scan film").Wrap(err)
		}

		if err := parseFilmFromFields(&f, &film); err != nil {
			return nil, err
		}

		films = append(films, &film)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate films").Wrap(err)
	}

	return films, nil
}

// Compile-time interface check.
var _ catalog.FilmRepository = (*FilmRepository)(nil)
