// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Listing bounds.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// AccessControl defines the interface for authorization checks.
// This mirrors internal/access.AccessControl to avoid coupling catalog to access package.
type AccessControl interface {
	Check(ctx context.Context, subject, action, resource string) bool
}

// ServiceConfig holds dependencies for Service.
type ServiceConfig struct {
	FilmRepo      FilmRepository
	CommentRepo   CommentRepository
	FavoriteRepo  FavoriteRepository
	AccessControl AccessControl
}

// Service provides authorized access to film, comment, and favorite
// operations. All operations check authorization before delegating to
// repositories. Rating operations live on RatingService.
type Service struct {
	filmRepo      FilmRepository
	commentRepo   CommentRepository
	favoriteRepo  FavoriteRepository
	accessControl AccessControl
}

// NewService creates a new Service with the given configuration.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		filmRepo:      cfg.FilmRepo,
		commentRepo:   cfg.CommentRepo,
		favoriteRepo:  cfg.FavoriteRepo,
		accessControl: cfg.AccessControl,
	}
}

// CreateFilm creates a new catalog entry after checking create authorization.
// The film ID is generated if not set, and the aggregate fields start at zero.
// Returns a ValidationError if any descriptive field is invalid.
func (s *Service) CreateFilm(ctx context.Context, subjectID string, film *Film) error {
	if !s.accessControl.Check(ctx, subjectID, "create", "film") {
		return ErrPermissionDenied
	}
	if err := validateFilmFields(film); err != nil {
		return err
	}
	if film.ID.IsZero() {
		film.ID = ulid.Make()
	}
	now := time.Now()
	film.CreatedAt = now
	film.UpdatedAt = now
	film.AverageRating = 0
	film.TotalRatings = 0
	if err := s.filmRepo.Create(ctx, film); err != nil {
		return oops.Wrapf(err, "create film %s", film.ID)
	}
	return nil
}

// GetFilm retrieves a film by ID after checking read authorization.
func (s *Service) GetFilm(ctx context.Context, subjectID string, id ulid.ULID) (*Film, error) {
	resource := fmt.Sprintf("film:%s", id.String())
	if !s.accessControl.Check(ctx, subjectID, "read", resource) {
		return nil, ErrPermissionDenied
	}
	film, err := s.filmRepo.GetByID(ctx, id)
	if err != nil {
		return nil, oops.Wrapf(err, "get film %s", id)
	}
	return film, nil
}

// ListFilms returns films matching the filter, newest first, after
// checking read authorization. Limit is clamped to [1, MaxListLimit]
// with DefaultListLimit when unset.
func (s *Service) ListFilms(ctx context.Context, subjectID string, filter Filter, limit, offset int) ([]*Film, error) {
	if !s.accessControl.Check(ctx, subjectID, "read", "film:*") {
		return nil, ErrPermissionDenied
	}
	limit, offset = clampPage(limit, offset)
	films, err := s.filmRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, oops.Wrapf(err, "list films")
	}
	return films, nil
}

// UpdateFilm updates a film's descriptive fields after checking update
// authorization. The aggregate fields are not written through this path.
func (s *Service) UpdateFilm(ctx context.Context, subjectID string, film *Film) error {
	resource := fmt.Sprintf("film:%s", film.ID.String())
	if !s.accessControl.Check(ctx, subjectID, "update", resource) {
		return ErrPermissionDenied
	}
	if err := validateFilmFields(film); err != nil {
		return err
	}
	film.UpdatedAt = time.Now()
	if err := s.filmRepo.Update(ctx, film); err != nil {
		return oops.Wrapf(err, "update film %s", film.ID)
	}
	return nil
}

// DeleteFilm deletes a film after checking delete authorization.
// Ratings, comments, and favorites referencing the film go with it.
func (s *Service) DeleteFilm(ctx context.Context, subjectID string, id ulid.ULID) error {
	resource := fmt.Sprintf("film:%s", id.String())
	if !s.accessControl.Check(ctx, subjectID, "delete", resource) {
		return ErrPermissionDenied
	}
	if err := s.filmRepo.Delete(ctx, id); err != nil {
		return oops.Wrapf(err, "delete film %s", id)
	}
	return nil
}

// CreateComment adds a comment to an existing film after checking create
// authorization. Returns a ValidationError for an invalid body and a
// not-found error when the film does not exist.
func (s *Service) CreateComment(ctx context.Context, subjectID string, comment *Comment) error {
	if !s.accessControl.Check(ctx, subjectID, "create", "comment") {
		return ErrPermissionDenied
	}
	if err := ValidateCommentBody(comment.Body); err != nil {
		return err
	}
	if _, err := s.filmRepo.GetByID(ctx, comment.FilmID); err != nil {
		return oops.Wrapf(err, "get film %s", comment.FilmID)
	}
	if comment.ID.IsZero() {
		comment.ID = ulid.Make()
	}
	comment.CreatedAt = time.Now()
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return oops.Wrapf(err, "create comment %s", comment.ID)
	}
	return nil
}

// ListComments returns a film's comments, newest first, after checking
// read authorization.
func (s *Service) ListComments(ctx context.Context, subjectID string, filmID ulid.ULID, limit, offset int) ([]*Comment, error) {
	if !s.accessControl.Check(ctx, subjectID, "read", "comment:*") {
		return nil, ErrPermissionDenied
	}
	limit, offset = clampPage(limit, offset)
	comments, err := s.commentRepo.ListByFilm(ctx, filmID, limit, offset)
	if err != nil {
		return nil, oops.Wrapf(err, "list comments for film %s", filmID)
	}
	return comments, nil
}

// DeleteComment deletes a comment after checking delete authorization.
func (s *Service) DeleteComment(ctx context.Context, subjectID string, id ulid.ULID) error {
	resource := fmt.Sprintf("comment:%s", id.String())
	if !s.accessControl.Check(ctx, subjectID, "delete", resource) {
		return ErrPermissionDenied
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return oops.Wrapf(err, "delete comment %s", id)
	}
	return nil
}

// AddFavorite marks a film as one of the user's favorites after checking
// create authorization. Adding a film that is already a favorite is a
// no-op; the film must exist.
func (s *Service) AddFavorite(ctx context.Context, subjectID string, userID, filmID ulid.ULID) error {
	if !s.accessControl.Check(ctx, subjectID, "create", "favorite") {
		return ErrPermissionDenied
	}
	exists, err := s.favoriteRepo.Exists(ctx, userID, filmID)
	if err != nil {
		return oops.Wrapf(err, "check favorite %s for user %s", filmID, userID)
	}
	if exists {
		return nil
	}
	if _, err := s.filmRepo.GetByID(ctx, filmID); err != nil {
		return oops.Wrapf(err, "get film %s", filmID)
	}
	if err := s.favoriteRepo.Add(ctx, userID, filmID); err != nil {
		return oops.Wrapf(err, "add favorite %s for user %s", filmID, userID)
	}
	return nil
}

// RemoveFavorite unmarks a favorite after checking delete authorization.
func (s *Service) RemoveFavorite(ctx context.Context, subjectID string, userID, filmID ulid.ULID) error {
	if !s.accessControl.Check(ctx, subjectID, "delete", "favorite") {
		return ErrPermissionDenied
	}
	if err := s.favoriteRepo.Remove(ctx, userID, filmID); err != nil {
		return oops.Wrapf(err, "remove favorite %s for user %s", filmID, userID)
	}
	return nil
}

// ListFavorites returns the user's favorite films, newest favorite
// first, after checking read authorization.
func (s *Service) ListFavorites(ctx context.Context, subjectID string, userID ulid.ULID) ([]*Film, error) {
	if !s.accessControl.Check(ctx, subjectID, "read", "film:*") {
		return nil, ErrPermissionDenied
	}
	films, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, oops.Wrapf(err, "list favorites for user %s", userID)
	}
	return films, nil
}

// validateFilmFields validates a film's descriptive fields.
func validateFilmFields(film *Film) error {
	if err := ValidateTitle(film.Title); err != nil {
		return err
	}
	if err := ValidateSynopsis(film.Synopsis); err != nil {
		return err
	}
	if err := ValidateReleaseYear(film.ReleaseYear); err != nil {
		return err
	}
	return ValidateGenres(film.Genres)
}

// clampPage normalizes a limit/offset pair.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
