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

// MockFilmRepository is a mock implementation of catalog.FilmRepository.
type MockFilmRepository struct {
	mock.Mock
}

// NewMockFilmRepository creates a MockFilmRepository bound to the test.
func NewMockFilmRepository(t *testing.T) *MockFilmRepository {
	m := &MockFilmRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFilmRepository) Create(ctx context.Context, film *catalog.Film) error {
	args := m.Called(ctx, film)
	return args.Error(0)
}

func (m *MockFilmRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Film, error) {
	args := m.Called(ctx, id)
	if film := args.Get(0); film != nil {
		return film.(*catalog.Film), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFilmRepository) List(ctx context.Context, filter catalog.Filter, limit, offset int) ([]*catalog.Film, error) {
	args := m.Called(ctx, filter, limit, offset)
	if films := args.Get(0); films != nil {
		return films.([]*catalog.Film), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFilmRepository) Update(ctx context.Context, film *catalog.Film) error {
	args := m.Called(ctx, film)
	return args.Error(0)
}

func (m *MockFilmRepository) Delete(ctx context.Context, id ulid.ULID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFilmRepository) UpdateAggregate(ctx context.Context, id ulid.ULID, average float64, total int) error {
	args := m.Called(ctx, id, average, total)
	return args.Error(0)
}

var _ catalog.FilmRepository = (*MockFilmRepository)(nil)
