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

// MockRatingRepository is a mock implementation of catalog.RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

// NewMockRatingRepository creates a MockRatingRepository bound to the test.
func NewMockRatingRepository(t *testing.T) *MockRatingRepository {
	m := &MockRatingRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *catalog.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByUserAndFilm(ctx context.Context, userID, filmID ulid.ULID) (*catalog.Rating, error) {
	args := m.Called(ctx, userID, filmID)
	if rating := args.Get(0); rating != nil {
		return rating.(*catalog.Rating), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRatingRepository) Update(ctx context.Context, rating *catalog.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, id ulid.ULID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRatingRepository) ListByFilm(ctx context.Context, filmID ulid.ULID) ([]*catalog.Rating, error) {
	args := m.Called(ctx, filmID)
	if ratings := args.Get(0); ratings != nil {
		return ratings.([]*catalog.Rating), args.Error(1)
	}
	return nil, args.Error(1)
}

var _ catalog.RatingRepository = (*MockRatingRepository)(nil)
