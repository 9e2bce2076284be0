// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Rating bounds. Values are whole stars from 0 to 5 inclusive.
const (
	MinRatingValue = 0
	MaxRatingValue = 5
)

// Rating represents one user's rating of one film. The (UserID, FilmID)
// pair is unique; a second rating from the same user for the same film
// is a conflict, and changes go through the update path instead.
type Rating struct {
	ID        ulid.ULID
	UserID    ulid.ULID
	FilmID    ulid.ULID
	Value     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
