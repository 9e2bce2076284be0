// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package auth

import (
	"unicode"
	"unicode/utf8"

	"github.com/samber/oops"
)

// Password policy bounds.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// ValidatePassword checks a candidate password against the account policy:
// between MinPasswordLength and MaxPasswordLength characters, with at least
// one uppercase letter, one lowercase letter, one digit, and one symbol.
func ValidatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < MinPasswordLength {
		return oops.
			Code("AUTH_WEAK_PASSWORD").
			With("min_length", MinPasswordLength).
			Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if length > MaxPasswordLength {
		return oops.
			Code("AUTH_WEAK_PASSWORD").
			With("max_length", MaxPasswordLength).
			Errorf("password must be at most %d characters", MaxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsNumber(r):
			hasSymbol = true
		}
	}

	var missing string
	switch {
	case !hasUpper:
		missing = "an uppercase letter"
	case !hasLower:
		missing = "a lowercase letter"
	case !hasDigit:
		missing = "a digit"
	case !hasSymbol:
		missing = "a symbol"
	default:
		return nil
	}

	return oops.
		Code("AUTH_WEAK_PASSWORD").
		Errorf("password must contain %s", missing)
}
