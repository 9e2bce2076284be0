// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package mocks

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/cinedex/cinedex/internal/catalog"
)

// MockFavoriteRepository is a mock implementation of catalog.FavoriteRepository.
type MockFavoriteRepository struct {
	mock.Mock
}

// NewMockFavoriteRepository creates a MockFavoriteRepository bound to the test.
func NewMockFavoriteRepository(t *testing.T) *MockFavoriteRepository {
	m := &MockFavoriteRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, filmID ulid.ULID) error {
	args := m.Called(ctx, userID, filmID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, filmID ulid.ULID) error {
	args := m.Called(ctx, userID, filmID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*catalog.Film, error) {
	args := m.Called(ctx, userID)
	if films := args.Get(0); films != nil {
		return films.([]*catalog.Film), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, filmID ulid.ULID) (bool, error) {
	args := m.Called(ctx, userID, filmID)
	return args.Bool(0), args.Error(1)
}

var _ catalog.FavoriteRepository = (*MockFavoriteRepository)(nil)
