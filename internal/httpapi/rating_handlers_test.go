// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cinedex/cinedex/internal/catalog"
)

func existingRating(userID, filmID ulid.ULID, value int) *catalog.Rating {
	now := time.Now().UTC().Truncate(time.Second)
	return &catalog.Rating{
		ID:        ulid.Make(),
		UserID:    userID,
		FilmID:    filmID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateRating(t *testing.T) {
	t.Run("records a rating and returns the fresh aggregate", func(t *testing.T) {
		h := newHarness(t)
		user := memberUser()
		film := sampleFilm(user.ID)
		h.films.On("GetByID", mock.Anything, film.ID).Return(film, nil)
		h.ratings.On("GetByUserAndFilm", mock.Anything, user.ID, film.ID).Return(nil, catalog.ErrNotFound)
		h.ratings.On("Create", mock.Anything, mock.MatchedBy(func(r *catalog.Rating) bool {
			return r.UserID == user.ID && r.FilmID == film.ID && r.Value == 4
		})).Return(nil)
		h.ratings.On("ListByFilm", mock.Anything, film.ID).
			Return([]*catalog.Rating{existingRating(user.ID, film.ID, 4)}, nil)
		h.films.On("UpdateAggregate", mock.Anything, film.ID, 4.0, 1).Return(nil)

		rec := h.do(t, http.MethodPost, "/api/v1/films/"+film.ID.String()+"/ratings",
			map[string]int{"rate": 4}, h.tokenFor(t, user))

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var body struct {
			Rating struct {
				Rate   int    `json:"rate"`
				UserID string `json:"userId"`
			} `json:"rating"`
			Film struct {
				ID            string  `json:"id"`
				AverageRating float64 `json:"averageRating"`
				TotalRatings  int     `json:"totalRatings"`
			} `json:"film"`
		}
		decodeJSON(t, rec, &body)
		assert.Equal(t, 4, body.Rating.Rate)
		assert.Equal(t, user.ID.String(), body.Rating.UserID)
		assert.Equal(t, film.ID.String(), body.Film.ID)
		assert.InDelta(t, 4.0, body.Film.AverageRating, 0.001)
		assert.Equal(t, 1, body.Film.TotalRatings)
	})

	t.Run("conflict when the film is already rated", func(t *testing.T) {
		h := newHarness(t)
		user := memberUser()
		film := sampleFilm(user.ID)
		h.films.On("GetByID", mock.Anything, film.ID).Return(film, nil)
		h.ratings.On("GetByUserAndFilm", mock.Anything, user.ID, film.ID).
			Return(existingRating(user.ID, film.ID, 3), nil)

		rec := h.do(t, http.MethodPost, "/api/v1/films/"+film.ID.String()+"/ratings",
			map[string]int{"rate": 4}, h.tokenFor(t, user))

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "film is already rated", errMessage(t, rec))
	})

	t.Run("rejects an out-of-range value", func(t *testing.T) {
		h := newHarness(t)
		user := memberUser()
		film := sampleFilm(user.ID)

		rec := h.do(t, http.MethodPost, "/api/v1/films/"+film.ID.String()+"/ratings",
			map[string]int{"rate": 9}, h.tokenFor(t, user))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "rate", errField(t, rec))
	})

	t.Run("rejects a missing rate field", func(t *testing.T) {
		h := newHarness(t)
		user := memberUser()
		film := sampleFilm(user.ID)

		rec := h.do(t, http.MethodPost, "/api/v1/films/"+film.ID.String()+"/ratings",
			map[string]string{}, h.tokenFor(t, user))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "rate", errField(t, rec))
	})

	t.Run("requires a token", func(t *testing.T) {
		h := newHarness(t)
		film := sampleFilm(memberUser().ID)

		rec := h.do(t, http.MethodPost, "/api/v1/films/"+film.ID.String()+"/ratings",
			map[string]int{"rate": 4}, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rating survives a failed aggregate recompute", func(t *testing.T) {
		h := newHarness(t)
		user := memberUser()
		film := sampleFilm(user.ID)
		h.films.On("GetByID", mock.Anything, film.ID).Return(film, nil)
		h.ratings.On("GetByUserAndFilm", mock.Anything, user.ID, film.ID).Return(nil, catalog.ErrNotFound)
		h.ratings.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Rating")).Return(nil)
		h.ratings.On("ListByFilm", mock.Anything, film.ID).
			Return([]*catalog.Rating{existingRating(user.ID, film.ID, 4)}, nil)
		h.films.On("UpdateAggregate", mock.Anything, film.ID, 4.0, 1).Return(assert.AnError)

		rec := h.do(t, http.MethodPost, "/api/v1/films/"+film.ID.String()+"/ratings",
			map[string]int{"rate": 4}, h.tokenFor(t, user))

		// The write stands; the aggregate lags until the next mutation.
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var body struct {
			Film struct {
				TotalRatings int `json:"totalRatings"`
			} `json:"film"`
		}
		decodeJSON(t, rec, &body)
		assert.Equal(t, 0, body.Film.TotalRatings)
	})
}

func TestUpdateRating(t *testing.T) {
	t.Run("changes the value and recomputes", func(t *testing.T) {
		h := newHarness(t)
		user := memberUser()
		film := sampleFilm(user.ID)
		rating := existingRating(user.ID, film.ID, 2)
		h.films.On("GetByID", mock.Anything, film.ID).Return(film, nil)
		h.ratings.On("GetByUserAndFilm", mock.Anything, user.ID, film.ID).Return(rating, nil)
		h.ratings.On("Update", mock.Anything, mock.MatchedBy(func(r *catalog.Rating) bool {
			return r.ID == rating.ID && r.Value == 5
		})).Return(nil)
		h.ratings.On("ListByFilm", mock.Anything, film.ID).
			Return([]*catalog.Rating{existingRating(user.ID, film.ID, 5)}, nil)
		h.films.On("UpdateAggregate", mock.Anything, film.ID, 5.0, 1).Return(nil)

		rec := h.do(t, http.MethodPut, "/api/v1/films/"+film.ID.String()+"/ratings",
			map[string]int{"rate": 5}, h.tokenFor(t, user))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body struct {
			Rating struct {
				Rate int `json:"rate"`
			} `json:"rating"`
		}
		decodeJSON(t, rec, &body)
		assert.Equal(t, 5, body.Rating.Rate)
	})

	t.Run("not found without an existing rating", func(t *testing.T) {
		h := newHarness(t)
		user := memberUser()
		film := sampleFilm(user.ID)
		h.films.On("GetByID", mock.Anything, film.ID).Return(film, nil)
		h.ratings.On("GetByUserAndFilm", mock.Anything, user.ID, film.ID).Return(nil, catalog.ErrNotFound)

		rec := h.do(t, http.MethodPut, "/api/v1/films/"+film.ID.String()+"/ratings",
			map[string]int{"rate": 5}, h.tokenFor(t, user))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteRating(t *testing.T) {
	t.Run("removes the rating and returns the aggregate", func(t *testing.T) {
		h := newHarness(t)
		user := memberUser()
		film := sampleFilm(user.ID)
		rating := existingRating(user.ID, film.ID, 4)
		h.films.On("GetByID", mock.Anything, film.ID).Return(film, nil)
		h.ratings.On("GetByUserAndFilm", mock.Anything, user.ID, film.ID).Return(rating, nil)
		h.ratings.On("Delete", mock.Anything, rating.ID).Return(nil)
		h.ratings.On("ListByFilm", mock.Anything, film.ID).Return([]*catalog.Rating{}, nil)
		h.films.On("UpdateAggregate", mock.Anything, film.ID, 0.0, 0).Return(nil)

		rec := h.do(t, http.MethodDelete, "/api/v1/films/"+film.ID.String()+"/ratings", nil, h.tokenFor(t, user))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body struct {
			Film struct {
				AverageRating float64 `json:"averageRating"`
				TotalRatings  int     `json:"totalRatings"`
			} `json:"film"`
		}
		decodeJSON(t, rec, &body)
		assert.Zero(t, body.Film.AverageRating)
		assert.Zero(t, body.Film.TotalRatings)
	})

	t.Run("not found without an existing rating", func(t *testing.T) {
		h := newHarness(t)
		user := memberUser()
		film := sampleFilm(user.ID)
		h.films.On("GetByID", mock.Anything, film.ID).Return(film, nil)
		h.ratings.On("GetByUserAndFilm", mock.Anything, user.ID, film.ID).Return(nil, catalog.ErrNotFound)

		rec := h.do(t, http.MethodDelete, "/api/v1/films/"+film.ID.String()+"/ratings", nil, h.tokenFor(t, user))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
