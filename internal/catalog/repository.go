// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// FilmRepository manages film persistence.
type FilmRepository interface {
	// Create persists a new film.
	Create(ctx context.Context, film *Film) error

	// GetByID retrieves a film by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Film, error)

	// List returns films matching the filter, newest first.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Film, error)

	// Update modifies a film's descriptive fields (title, synopsis,
	// release year, genres). Aggregate fields go through UpdateAggregate.
	Update(ctx context.Context, film *Film) error

	// Delete removes a film. Dependent ratings, comments, and favorites
	// are removed with it.
	Delete(ctx context.Context, id ulid.ULID) error

	// UpdateAggregate writes the derived rating statistics onto a film.
	UpdateAggregate(ctx context.Context, id ulid.ULID, average float64, total int) error
}

// RatingRepository manages rating persistence.
type RatingRepository interface {
	// Create persists a new rating. Returns ErrConflict if the
	// (user, film) pair already has one.
	Create(ctx context.Context, rating *Rating) error

	// GetByUserAndFilm retrieves the rating a user gave a film.
	// Returns ErrNotFound if the user has not rated the film.
	GetByUserAndFilm(ctx context.Context, userID, filmID ulid.ULID) (*Rating, error)

	// Update modifies an existing rating's value.
	Update(ctx context.Context, rating *Rating) error

	// Delete removes a rating by ID.
	Delete(ctx context.Context, id ulid.ULID) error

	// ListByFilm returns all ratings for a film. The aggregate recompute
	// re-scans this full set.
	ListByFilm(ctx context.Context, filmID ulid.ULID) ([]*Rating, error)
}

// CommentRepository manages comment persistence.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *Comment) error

	// GetByID retrieves a comment by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Comment, error)

	// ListByFilm returns comments on a film, newest first.
	ListByFilm(ctx context.Context, filmID ulid.ULID, limit, offset int) ([]*Comment, error)

	// Delete removes a comment by ID.
	Delete(ctx context.Context, id ulid.ULID) error
}

// FavoriteRepository manages a user's favorite-film references.
type FavoriteRepository interface {
	// Add marks a film as a favorite. Adding an existing favorite is a
	// no-op.
	Add(ctx context.Context, userID, filmID ulid.ULID) error

	// Remove unmarks a favorite. Returns ErrNotFound if the film was not
	// a favorite.
	Remove(ctx context.Context, userID, filmID ulid.ULID) error

	// ListByUser returns the user's favorite films, newest favorite first.
	ListByUser(ctx context.Context, userID ulid.ULID) ([]*Film, error)

	// Exists reports whether the user has favorited the film.
	Exists(ctx context.Context, userID, filmID ulid.ULID) (bool, error)
}
