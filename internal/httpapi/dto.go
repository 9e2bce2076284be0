// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi

import (
	"time"

	"github.com/cinedex/cinedex/internal/auth"
	"github.com/cinedex/cinedex/internal/catalog"
)

// userResponse is the public shape of an account. The password hash
// never leaves the service layer.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u *auth.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Bio:       u.Bio,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type filmResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Synopsis      string    `json:"synopsis,omitempty"`
	ReleaseYear   int       `json:"releaseYear"`
	Genres        []string  `json:"genres"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toFilmResponse(f *catalog.Film) filmResponse {
	genres := f.Genres
	if genres == nil {
		genres = []string{}
	}
	return filmResponse{
		ID:            f.ID.String(),
		Title:         f.Title,
		Synopsis:      f.Synopsis,
		ReleaseYear:   f.ReleaseYear,
		Genres:        genres,
		AverageRating: f.AverageRating,
		TotalRatings:  f.TotalRatings,
		CreatedBy:     f.CreatedBy.String(),
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func toFilmResponses(films []*catalog.Film) []filmResponse {
	out := make([]filmResponse, 0, len(films))
	for _, f := range films {
		out = append(out, toFilmResponse(f))
	}
	return out
}

// filmAggregate is the slim film view returned alongside rating
// mutations: the identity and the freshly recomputed aggregate.
type filmAggregate struct {
	ID            string  `json:"id"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}

func toFilmAggregate(f *catalog.Film) filmAggregate {
	return filmAggregate{
		ID:            f.ID.String(),
		AverageRating: f.AverageRating,
		TotalRatings:  f.TotalRatings,
	}
}

type ratingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FilmID    string    `json:"filmId"`
	Rate      int       `json:"rate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toRatingResponse(r *catalog.Rating) ratingResponse {
	return ratingResponse{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		FilmID:    r.FilmID.String(),
		Rate:      r.Value,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ratingEnvelope pairs a rating with its film's aggregate so clients can
// refresh both from one response.
type ratingEnvelope struct {
	Rating ratingResponse `json:"rating"`
	Film   filmAggregate  `json:"film"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	FilmID    string    `json:"filmId"`
	UserID    string    `json:"userId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCommentResponse(cm *catalog.Comment) commentResponse {
	return commentResponse{
		ID:        cm.ID.String(),
		FilmID:    cm.FilmID.String(),
		UserID:    cm.UserID.String(),
		Body:      cm.Body,
		CreatedAt: cm.CreatedAt,
	}
}

func toCommentResponses(comments []*catalog.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, toCommentResponse(cm))
	}
	return out
}
