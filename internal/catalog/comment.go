// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Comment represents a user's comment on a film.
type Comment struct {
	ID        ulid.ULID
	FilmID    ulid.ULID
	UserID    ulid.ULID
	Body      string
	CreatedAt time.Time
}
