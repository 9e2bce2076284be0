// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cinedex/cinedex/internal/observability"
)

// RatingServiceConfig holds dependencies for RatingService.
type RatingServiceConfig struct {
	RatingRepo    RatingRepository
	FilmRepo      FilmRepository
	AccessControl AccessControl
}

// RatingService enforces the one-rating-per-(user, film) invariant and
// keeps a film's aggregate fields consistent with its rating set.
//
// After every mutation the aggregate is recomputed as a full re-scan of
// the film's ratings, never an incremental adjustment: incremental
// running updates drift when a write fails halfway, a re-scan cannot.
// A failed recompute does not undo the rating write. The rating set is
// the source of truth and the aggregate is allowed to lag until the
// next mutation re-derives it. Two concurrent mutations on one film may
// interleave their re-scans so the aggregate briefly reflects only one
// of them; the same self-healing property bounds that window.
type RatingService struct {
	ratingRepo    RatingRepository
	filmRepo      FilmRepository
	accessControl AccessControl
}

// NewRatingService creates a new RatingService with the given configuration.
func NewRatingService(cfg RatingServiceConfig) *RatingService {
	return &RatingService{
		ratingRepo:    cfg.RatingRepo,
		filmRepo:      cfg.FilmRepo,
		accessControl: cfg.AccessControl,
	}
}

// Create records a user's rating of a film after checking create
// authorization. The film must exist, the value must be in range, and
// the (user, film) pair must not already have a rating. Returns the
// created rating and the film carrying the freshest aggregate available.
func (s *RatingService) Create(ctx context.Context, subjectID string, userID, filmID ulid.ULID, value int) (*Rating, *Film, error) {
	if !s.accessControl.Check(ctx, subjectID, "create", "rating") {
		return nil, nil, ErrPermissionDenied
	}
	if err := ValidateRatingValue(value); err != nil {
		return nil, nil, err
	}

	film, err := s.filmRepo.GetByID(ctx, filmID)
	if err != nil {
		return nil, nil, oops.Wrapf(err, "get film %s", filmID)
	}

	// Pre-check the pair invariant for a clean conflict. The unique
	// constraint in the store backstops the race where two creates for
	// the same pair pass this check simultaneously.
	_, err = s.ratingRepo.GetByUserAndFilm(ctx, userID, filmID)
	switch {
	case err == nil:
		return nil, nil, oops.Code("RATING_EXISTS").
			With("user_id", userID.String()).
			With("film_id", filmID.String()).
			Wrapf(ErrConflict, "user already rated this film")
	case !errors.Is(err, ErrNotFound):
		return nil, nil, oops.Wrapf(err, "check existing rating for film %s", filmID)
	}

	now := time.Now()
	rating := &Rating{
		ID:        ulid.Make(),
		UserID:    userID,
		FilmID:    filmID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, nil, oops.Wrapf(err, "create rating %s", rating.ID)
	}

	s.applyRecompute(ctx, film)
	return rating, film, nil
}

// Update changes the value of the caller's existing rating for a film
// after checking update authorization, then recomputes the aggregate.
func (s *RatingService) Update(ctx context.Context, subjectID string, userID, filmID ulid.ULID, value int) (*Rating, *Film, error) {
	if !s.accessControl.Check(ctx, subjectID, "update", "rating") {
		return nil, nil, ErrPermissionDenied
	}
	if err := ValidateRatingValue(value); err != nil {
		return nil, nil, err
	}

	film, err := s.filmRepo.GetByID(ctx, filmID)
	if err != nil {
		return nil, nil, oops.Wrapf(err, "get film %s", filmID)
	}
	rating, err := s.ratingRepo.GetByUserAndFilm(ctx, userID, filmID)
	if err != nil {
		return nil, nil, oops.Wrapf(err, "get rating for film %s", filmID)
	}

	rating.Value = value
	rating.UpdatedAt = time.Now()
	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return nil, nil, oops.Wrapf(err, "update rating %s", rating.ID)
	}

	s.applyRecompute(ctx, film)
	return rating, film, nil
}

// Delete removes the caller's rating for a film after checking delete
// authorization, then recomputes the aggregate.
func (s *RatingService) Delete(ctx context.Context, subjectID string, userID, filmID ulid.ULID) (*Film, error) {
	if !s.accessControl.Check(ctx, subjectID, "delete", "rating") {
		return nil, ErrPermissionDenied
	}

	film, err := s.filmRepo.GetByID(ctx, filmID)
	if err != nil {
		return nil, oops.Wrapf(err, "get film %s", filmID)
	}
	rating, err := s.ratingRepo.GetByUserAndFilm(ctx, userID, filmID)
	if err != nil {
		return nil, oops.Wrapf(err, "get rating for film %s", filmID)
	}

	if err := s.ratingRepo.Delete(ctx, rating.ID); err != nil {
		return nil, oops.Wrapf(err, "delete rating %s", rating.ID)
	}

	s.applyRecompute(ctx, film)
	return film, nil
}

// applyRecompute recomputes the film's aggregate and writes the fresh
// values onto the in-memory film. On failure the film keeps the
// aggregate it was loaded with; the mutation that triggered the
// recompute stands either way.
func (s *RatingService) applyRecompute(ctx context.Context, film *Film) {
	average, total, err := s.recompute(ctx, film.ID)
	if err != nil {
		slog.Error("rating aggregate recompute failed, aggregate stale until next mutation",
			"film_id", film.ID.String(),
			"error", err)
		observability.RecordRecomputeFailure()
		return
	}
	film.AverageRating = average
	film.TotalRatings = total
}

// recompute re-reads the film's full rating set and writes the derived
// mean (rounded to one decimal) and count back to the film record.
func (s *RatingService) recompute(ctx context.Context, filmID ulid.ULID) (float64, int, error) {
	ratings, err := s.ratingRepo.ListByFilm(ctx, filmID)
	if err != nil {
		return 0, 0, oops.Wrapf(err, "list ratings for film %s", filmID)
	}
	average := averageOf(ratings)
	if err := s.filmRepo.UpdateAggregate(ctx, filmID, average, len(ratings)); err != nil {
		return 0, 0, oops.Wrapf(err, "write aggregate for film %s", filmID)
	}
	return average, len(ratings), nil
}

// averageOf returns the mean rating value rounded to one decimal, or 0
// for an empty set.
func averageOf(ratings []*Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}
