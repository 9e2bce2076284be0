// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
)

// OwnerResolver answers "who owns this resource" for the access layer's
// ownership checks. It satisfies access.OwnerResolver.
type OwnerResolver struct {
	films    FilmRepository
	comments CommentRepository
}

// NewOwnerResolver creates an OwnerResolver over the given repositories.
func NewOwnerResolver(films FilmRepository, comments CommentRepository) *OwnerResolver {
	return &OwnerResolver{films: films, comments: comments}
}

// Owner returns the owning user's ID for a film or comment. Unknown
// kinds, malformed IDs, and absent resources have no owner and resolve
// to an empty string without error; only infrastructure failures are
// returned as errors.
func (r *OwnerResolver) Owner(ctx context.Context, kind, id string) (string, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return "", nil
	}
	switch kind {
	case "film":
		film, err := r.films.GetByID(ctx, parsed)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return "", nil
			}
			return "", err
		}
		if film.CreatedBy.IsZero() {
			// Seeded films carry no owning account
			return "", nil
		}
		return film.CreatedBy.String(), nil
	case "comment":
		comment, err := r.comments.GetByID(ctx, parsed)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return "", nil
			}
			return "", err
		}
		return comment.UserID.String(), nil
	default:
		return "", nil
	}
}
