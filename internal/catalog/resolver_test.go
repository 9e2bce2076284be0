// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/catalog/mocks"
)

func TestOwnerResolver(t *testing.T) {
	ctx := context.Background()
	ownerID := ulid.Make()

	t.Run("resolves film owner to its creator", func(t *testing.T) {
		filmRepo := mocks.NewMockFilmRepository(t)
		commentRepo := mocks.NewMockCommentRepository(t)
		resolver := catalog.NewOwnerResolver(filmRepo, commentRepo)

		filmID := ulid.Make()
		filmRepo.On("GetByID", ctx, filmID).
			Return(&catalog.Film{ID: filmID, CreatedBy: ownerID}, nil)

		owner, err := resolver.Owner(ctx, "film", filmID.String())
		require.NoError(t, err)
		assert.Equal(t, ownerID.String(), owner)
	})

	t.Run("resolves comment owner to its author", func(t *testing.T) {
		filmRepo := mocks.NewMockFilmRepository(t)
		commentRepo := mocks.NewMockCommentRepository(t)
		resolver := catalog.NewOwnerResolver(filmRepo, commentRepo)

		commentID := ulid.Make()
		commentRepo.On("GetByID", ctx, commentID).
			Return(&catalog.Comment{ID: commentID, UserID: ownerID}, nil)

		owner, err := resolver.Owner(ctx, "comment", commentID.String())
		require.NoError(t, err)
		assert.Equal(t, ownerID.String(), owner)
	})

	t.Run("seeded films have no owner", func(t *testing.T) {
		filmRepo := mocks.NewMockFilmRepository(t)
		commentRepo := mocks.NewMockCommentRepository(t)
		resolver := catalog.NewOwnerResolver(filmRepo, commentRepo)

		filmID := ulid.Make()
		filmRepo.On("GetByID", ctx, filmID).
			Return(&catalog.Film{ID: filmID}, nil)

		owner, err := resolver.Owner(ctx, "film", filmID.String())
		require.NoError(t, err)
		assert.Empty(t, owner)
	})

	t.Run("absent resources have no owner", func(t *testing.T) {
		filmRepo := mocks.NewMockFilmRepository(t)
		commentRepo := mocks.NewMockCommentRepository(t)
		resolver := catalog.NewOwnerResolver(filmRepo, commentRepo)

		filmID := ulid.Make()
		filmRepo.On("GetByID", ctx, filmID).Return(nil, catalog.ErrNotFound)

		owner, err := resolver.Owner(ctx, "film", filmID.String())
		require.NoError(t, err)
		assert.Empty(t, owner)
	})

	t.Run("malformed IDs have no owner", func(t *testing.T) {
		filmRepo := mocks.NewMockFilmRepository(t)
		commentRepo := mocks.NewMockCommentRepository(t)
		resolver := catalog.NewOwnerResolver(filmRepo, commentRepo)

		owner, err := resolver.Owner(ctx, "film", "not-a-ulid")
		require.NoError(t, err)
		assert.Empty(t, owner)
	})

	t.Run("unknown kinds have no owner", func(t *testing.T) {
		filmRepo := mocks.NewMockFilmRepository(t)
		commentRepo := mocks.NewMockCommentRepository(t)
		resolver := catalog.NewOwnerResolver(filmRepo, commentRepo)

		owner, err := resolver.Owner(ctx, "playlist", ulid.Make().String())
		require.NoError(t, err)
		assert.Empty(t, owner)
	})

	t.Run("infrastructure failures are returned", func(t *testing.T) {
		filmRepo := mocks.NewMockFilmRepository(t)
		commentRepo := mocks.NewMockCommentRepository(t)
		resolver := catalog.NewOwnerResolver(filmRepo, commentRepo)

		filmID := ulid.Make()
		filmRepo.On("GetByID", ctx, filmID).Return(nil, errors.New("connection reset"))

		_, err := resolver.Owner(ctx, "film", filmID.String())
		require.Error(t, err)
	})
}
