// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/cinedex/cinedex/internal/auth"
)

// MockTokenIssuer is a mock implementation of auth.TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

// NewMockTokenIssuer creates a MockTokenIssuer bound to the test.
func NewMockTokenIssuer(t *testing.T) *MockTokenIssuer {
	m := &MockTokenIssuer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTokenIssuer) Issue(user *auth.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) Validate(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if claims := args.Get(0); claims != nil {
		return claims.(*auth.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

var _ auth.TokenIssuer = (*MockTokenIssuer)(nil)
