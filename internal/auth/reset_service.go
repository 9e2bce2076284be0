// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"github.com/cinedex/cinedex/internal/observability"
)

// Mailer delivers reset tokens to account holders. Implementations live in
// the notify package.
type Mailer interface {
	// SendPasswordReset delivers the plaintext reset token to the address.
	SendPasswordReset(ctx context.Context, email, token string) error
}

// PasswordResetService handles the forgot-password flow.
type PasswordResetService struct {
	userRepo  UserRepository
	resetRepo PasswordResetRepository
	hasher    PasswordHasher
	tx        Transactor
	mailer    Mailer
	logger    *slog.Logger
}

// NewPasswordResetService creates a new PasswordResetService. A nil logger
// falls back to slog.Default; everything else is required.
func NewPasswordResetService(
	userRepo UserRepository,
	resetRepo PasswordResetRepository,
	hasher PasswordHasher,
	tx Transactor,
	mailer Mailer,
	logger *slog.Logger,
) (*PasswordResetService, error) {
	if userRepo == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if resetRepo == nil {
		return nil, oops.Errorf("resets repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if tx == nil {
		return nil, oops.Errorf("transactor is required")
	}
	if mailer == nil {
		return nil, oops.Errorf("mailer is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PasswordResetService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		hasher:    hasher,
		tx:        tx,
		mailer:    mailer,
		logger:    logger,
	}, nil
}

// RequestReset starts a password reset for the account registered under
// email. If the account exists, a reset token is generated, its hash stored,
// and the plaintext token mailed to the address. Unknown emails report
// success to prevent enumeration. A delivery failure for an existing account
// is returned to the caller; the stored reset entry is kept, so the token
// remains redeemable if the mail made it out.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	// Look up user by email
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Report success to prevent email enumeration
			s.logger.DebugContext(ctx, "reset requested for unknown email")
			return nil
		}
		return oops.Code("RESET_REQUEST_FAILED").
			With("operation", "GetByEmail").
			Wrap(err)
	}

	// Generate reset token
	token, hash, err := GenerateResetToken()
	if err != nil {
		return oops.Code("RESET_REQUEST_FAILED").
			With("operation", "GenerateResetToken").
			Wrap(err)
	}

	// Create password reset record
	reset, err := NewPasswordReset(user.ID, hash)
	if err != nil {
		return oops.Code("RESET_REQUEST_FAILED").
			With("operation", "NewPasswordReset").
			Wrap(err)
	}

	// Store the reset
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return oops.Code("RESET_REQUEST_FAILED").
			With("operation", "Create").
			Wrap(err)
	}
	observability.RecordPasswordReset("requested")

	// Mail the plaintext token. The stored reset row stays valid even when
	// delivery fails.
	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		observability.RecordMailFailure("password_reset")
		s.logger.ErrorContext(ctx, "failed to send password reset mail",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()),
		)
		return oops.Code("RESET_REQUEST_FAILED").
			With("operation", "SendPasswordReset").
			Wrap(err)
	}

	return nil
}

// ValidateToken validates a reset token and returns the pending reset.
// Returns an error if the token is unknown, already consumed, or expired.
func (s *PasswordResetService) ValidateToken(ctx context.Context, token string) (*PasswordReset, error) {
	if token == "" {
		return nil, oops.Code("RESET_TOKEN_EMPTY").Errorf("reset token cannot be empty")
	}

	// Hash the token to look it up
	hash := hashResetToken(token)

	// Look up the reset by hash
	reset, err := s.resetRepo.GetByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("RESET_TOKEN_INVALID").Errorf("reset token not found")
		}
		return nil, oops.Code("RESET_VALIDATE_FAILED").
			With("operation", "GetByTokenHash").
			Wrap(err)
	}

	if reset.Used {
		return nil, oops.Code("RESET_TOKEN_USED").Errorf("reset token was already used")
	}

	// Check if expired
	if reset.IsExpired() {
		return nil, oops.Code("RESET_TOKEN_EXPIRED").Errorf("reset token has expired")
	}

	return reset, nil
}

// ResetPassword sets a new password using a valid reset token. Consuming the
// token and writing the new password hash happen in one transaction: either
// both land or neither does. A token that loses the race to a concurrent
// consume fails with RESET_TOKEN_USED.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	// Validate the token
	reset, err := s.ValidateToken(ctx, token)
	if err != nil {
		return err // Already has appropriate error code
	}

	// Hash the new password
	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return oops.Code("RESET_PASSWORD_FAILED").
			With("operation", "Hash").
			Wrap(err)
	}

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		// MarkUsed only touches unconsumed rows, so a concurrent consume of
		// the same token makes exactly one of the transactions fail here.
		if err := s.resetRepo.MarkUsed(ctx, reset.ID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return oops.Code("RESET_TOKEN_USED").Errorf("reset token was already used")
			}
			return oops.Code("RESET_PASSWORD_FAILED").
				With("operation", "MarkUsed").
				Wrap(err)
		}

		if err := s.userRepo.UpdatePassword(ctx, reset.UserID, hashedPassword); err != nil {
			return oops.Code("RESET_PASSWORD_FAILED").
				With("operation", "UpdatePassword").
				Wrap(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	observability.RecordPasswordReset("consumed")
	return nil
}

// PruneExpired removes reset requests past their expiry. Intended to run
// periodically from the server loop.
func (s *PasswordResetService) PruneExpired(ctx context.Context) (int64, error) {
	deleted, err := s.resetRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, oops.Code("RESET_PRUNE_FAILED").
			With("operation", "DeleteExpired").
			Wrap(err)
	}
	return deleted, nil
}
