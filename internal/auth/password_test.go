// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinedex/cinedex/internal/auth"
	"github.com/cinedex/cinedex/pkg/errutil"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng!pass", false},
		{"valid min length", "Aa1!bcde", false},
		{"valid with space as symbol", "Aa1 bcde", false},
		{"valid max length", "Aa1!" + strings.Repeat("x", auth.MaxPasswordLength-4), false},
		{"empty", "", true},
		{"too short", "Aa1!bcd", true},
		{"too long", "Aa1!" + strings.Repeat("x", auth.MaxPasswordLength-3), true},
		{"missing uppercase", "weak1pass!", true},
		{"missing lowercase", "WEAK1PASS!", true},
		{"missing digit", "Weakpass!!", true},
		{"missing symbol", "Weak1pass1", true},
		{"letters only", "Weakpassword", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				errutil.AssertErrorCode(t, err, "AUTH_WEAK_PASSWORD")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword_Messages(t *testing.T) {
	t.Run("too short names the minimum", func(t *testing.T) {
		err := auth.ValidatePassword("Aa1!")
		assert.Contains(t, err.Error(), "at least 8")
	})

	t.Run("missing class is named", func(t *testing.T) {
		err := auth.ValidatePassword("weak1pass!")
		assert.Contains(t, err.Error(), "uppercase")
	})

	t.Run("multibyte runes count as characters", func(t *testing.T) {
		// 8 runes but more than 8 bytes; passes the length check and
		// fails only on the missing digit.
		err := auth.ValidatePassword("Päss!wör")
		assert.Contains(t, err.Error(), "digit")
	})
}
