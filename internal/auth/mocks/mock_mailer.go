// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package mocks

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/cinedex/cinedex/internal/auth"
)

// MockMailer is a mock implementation of auth.Mailer.
type MockMailer struct {
	mock.Mock
}

// NewMockMailer creates a MockMailer bound to the test.
func NewMockMailer(t *testing.T) *MockMailer {
	m := &MockMailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

// CaptureMailer records sent reset tokens instead of delivering them, for
// tests that need the plaintext token back.
type CaptureMailer struct {
	mu     sync.Mutex
	Emails []string
	Tokens []string
	Err    error
}

func (c *CaptureMailer) SendPasswordReset(_ context.Context, email, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Emails = append(c.Emails, email)
	c.Tokens = append(c.Tokens, token)
	return nil
}

// LastToken returns the most recently captured token, or "".
func (c *CaptureMailer) LastToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Tokens) == 0 {
		return ""
	}
	return c.Tokens[len(c.Tokens)-1]
}

var (
	_ auth.Mailer = (*MockMailer)(nil)
	_ auth.Mailer = (*CaptureMailer)(nil)
)
