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

// MockCommentRepository is a mock implementation of catalog.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

// NewMockCommentRepository creates a MockCommentRepository bound to the test.
func NewMockCommentRepository(t *testing.T) *MockCommentRepository {
	m := &MockCommentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *catalog.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Comment, error) {
	args := m.Called(ctx, id)
	if comment := args.Get(0); comment != nil {
		return comment.(*catalog.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentRepository) ListByFilm(ctx context.Context, filmID ulid.ULID, limit, offset int) ([]*catalog.Comment, error) {
	args := m.Called(ctx, filmID, limit, offset)
	if comments := args.Get(0); comments != nil {
		return comments.([]*catalog.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id ulid.ULID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ catalog.CommentRepository = (*MockCommentRepository)(nil)
