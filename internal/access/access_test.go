// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinedex/cinedex/internal/access"
)

func TestParseSubject(t *testing.T) {
	tests := []struct {
		name       string
		subject    string
		wantPrefix string
		wantID     string
	}{
		{
			name:       "user subject",
			subject:    "user:01ABC",
			wantPrefix: "user",
			wantID:     "01ABC",
		},
		{
			name:       "system subject",
			subject:    "system",
			wantPrefix: "system",
			wantID:     "",
		},
		{
			name:       "no separator",
			subject:    "justsomeid",
			wantPrefix: "",
			wantID:     "justsomeid",
		},
		{
			name:       "empty subject",
			subject:    "",
			wantPrefix: "",
			wantID:     "",
		},
		{
			name:       "empty id after prefix",
			subject:    "user:",
			wantPrefix: "user",
			wantID:     "",
		},
		{
			name:       "id containing colon keeps remainder intact",
			subject:    "user:01ABC:extra",
			wantPrefix: "user",
			wantID:     "01ABC:extra",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, id := access.ParseSubject(tt.subject)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
