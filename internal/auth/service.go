// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Service provides registration and authentication operations.
type Service struct {
	users  UserRepository
	resets PasswordResetRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService creates a new Service. All dependencies are required.
func NewAuthService(users UserRepository, resets PasswordResetRepository, hasher PasswordHasher, tokens TokenIssuer) (*Service, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if resets == nil {
		return nil, oops.Errorf("resets repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Errorf("token issuer is required")
	}
	return &Service{
		users:  users,
		resets: resets,
		hasher: hasher,
		tokens: tokens,
	}, nil
}

// dummyPasswordHash is used when a user doesn't exist to prevent timing attacks.
// We still run password verification to make response time consistent.
// This is NOT a real credential - it's a fake hash that will never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Register creates a new member account. The email must not already be
// registered and the password must satisfy the account policy.
func (s *Service) Register(ctx context.Context, email, name, password string) (*User, error) {
	// Validate everything before paying for the hash.
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewUser(email, name, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "persist user").
			Wrap(err)
	}

	return user, nil
}

// Login authenticates a user by email and password and issues a bearer token.
// Returns the user, the signed token, and any error.
// Uses constant-time operations to prevent timing-based email enumeration.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	// Look up user by email
	user, lookupErr := s.users.GetByEmail(ctx, email)

	// Determine which hash to verify against (real or dummy for timing attack prevention)
	var targetHash string
	var userExists bool

	if lookupErr != nil {
		if errors.Is(lookupErr, ErrNotFound) {
			// Use dummy hash - still perform verification to maintain constant time
			targetHash = dummyPasswordHash
			userExists = false
		} else {
			return nil, "", oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get user by email").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	// Always verify password (constant-time operation for timing attack prevention)
	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		// For dummy hash verification errors, just treat as invalid
		if !userExists {
			return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid email or password")
		}
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}

	// If user doesn't exist OR password invalid, return same error
	if !userExists || !valid {
		return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid email or password")
	}

	// Check if password needs upgrade (e.g., from bcrypt to argon2id)
	if s.hasher.NeedsUpgrade(user.PasswordHash) {
		if newHash, hashErr := s.hasher.Hash(password); hashErr == nil {
			user.PasswordHash = newHash
			user.UpdatedAt = time.Now()
			// Ignore errors - login should succeed even if upgrade fails
			_ = s.users.Update(ctx, user) //nolint:errcheck // Best effort, login succeeds regardless
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	return user, token, nil
}

// Authenticate validates a bearer token and returns its claims.
func (s *Service) Authenticate(token string) (*Claims, error) {
	if token == "" {
		return nil, oops.Code("AUTH_INVALID_TOKEN").Errorf("token cannot be empty")
	}
	return s.tokens.Validate(token)
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, id ulid.ULID) (*User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("USER_NOT_FOUND").
				With("user_id", id.String()).
				Wrap(err)
		}
		return nil, oops.Code("USER_GET_FAILED").
			With("operation", "get user by id").
			Wrap(err)
	}
	return user, nil
}

// UpdateProfile updates a user's display name and bio.
func (s *Service) UpdateProfile(ctx context.Context, id ulid.ULID, name, bio string) (*User, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateBio(bio); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Bio = bio
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, oops.Code("USER_UPDATE_FAILED").
			With("operation", "persist profile").
			With("user_id", id.String()).
			Wrap(err)
	}
	return user, nil
}

// ChangePassword verifies the current password and replaces it with a new
// one. Outstanding reset tokens for the user are invalidated on success.
func (s *Service) ChangePassword(ctx context.Context, id ulid.ULID, current, next string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	valid, err := s.hasher.Verify(current, user.PasswordHash)
	if err != nil {
		return oops.Code("AUTH_CHANGE_PASSWORD_FAILED").
			With("operation", "verify current password").
			Wrap(err)
	}
	if !valid {
		return oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("current password is incorrect")
	}

	if err := ValidatePassword(next); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return oops.Code("AUTH_CHANGE_PASSWORD_FAILED").
			With("operation", "hash new password").
			Wrap(err)
	}

	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return oops.Code("AUTH_CHANGE_PASSWORD_FAILED").
			With("operation", "persist new password").
			With("user_id", id.String()).
			Wrap(err)
	}

	// A changed password obsoletes any outstanding reset tokens.
	// Ignore errors - the password change itself already succeeded.
	_ = s.resets.DeleteByUser(ctx, id) //nolint:errcheck // Best effort

	return nil
}
