// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

// Package auth provides account and credential primitives for Cinedex.
//
// # Domain Types
//
// Domain types (User, PasswordReset) should be created using their
// respective constructors:
//   - NewUser - creates a User with validated email, name, and password hash
//   - NewPasswordReset - creates a PasswordReset with validated user and expiry
//
// Direct struct initialization bypasses validation and may create invalid state.
// Repository implementations receive pre-validated types from these constructors.
//
// # Services
//
// Service types coordinate domain operations:
//   - Service - registration, login, password changes
//   - PasswordResetService - the forgot-password flow
//
// Services are created with New*Service constructors that validate dependencies.
//
// # Tokens
//
// Bearer tokens are stateless JWTs signed with HMAC-SHA256; see TokenIssuer.
// Reset tokens are random secrets stored only as SHA-256 hashes and consumed
// exactly once.
package auth
