// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

// Package catalog contains the film catalog domain types and logic.
package catalog

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Film represents a catalog entry.
//
// AverageRating and TotalRatings are derived from the film's rating set:
// the mean of all current ratings rounded to one decimal, and their
// count. Both are zero for an unrated film. They are recomputed by the
// RatingService after every rating mutation and are never written
// through Update.
type Film struct {
	ID            ulid.ULID
	Title         string
	Synopsis      string
	ReleaseYear   int
	Genres        []string
	AverageRating float64
	TotalRatings  int
	CreatedBy     ulid.ULID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
