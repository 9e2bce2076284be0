// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{"valid title", "Blade Runner", false, ""},
		{"empty title", "", true, "cannot be empty"},
		{"whitespace only", "   ", true, "cannot be empty"},
		{"title too long", strings.Repeat("a", MaxTitleLength+1), true, "exceeds maximum length"},
		{"max length title", strings.Repeat("a", MaxTitleLength), false, ""},
		{"unicode title", "七人の侍", false, ""},
		{"invalid UTF-8 bytes", "\xff\xfe", true, "must be valid UTF-8"},
		{"control char", "title\x00with null", true, "cannot contain control characters"},
		{"newline not allowed", "title\nwith newline", true, "cannot contain control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Equal(t, "title", ve.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSynopsis(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{"valid synopsis", "A blade runner must pursue replicants.", false, ""},
		{"empty synopsis", "", false, ""},
		{"synopsis too long", strings.Repeat("a", MaxSynopsisLength+1), true, "exceeds maximum length"},
		{"max length synopsis", strings.Repeat("a", MaxSynopsisLength), false, ""},
		{"newline allowed", "line1\nline2", false, ""},
		{"tab allowed", "column1\tcolumn2", false, ""},
		{"invalid UTF-8 bytes", "\xff\xfe", true, "must be valid UTF-8"},
		{"control char", "desc\x00with null", true, "cannot contain control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSynopsis(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateReleaseYear(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"classic era", 1942, false},
		{"first film year", MinReleaseYear, false},
		{"upper bound", MaxReleaseYear, false},
		{"before film existed", 1800, true},
		{"zero", 0, true},
		{"negative", -1982, true},
		{"too far out", MaxReleaseYear + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReleaseYear(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Equal(t, "release_year", ve.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateGenres(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantErr bool
		errMsg  string
	}{
		{"valid genres", []string{"drama", "sci-fi"}, false, ""},
		{"nil genres", nil, false, ""},
		{"empty genre", []string{"drama", ""}, true, "cannot be empty"},
		{"blank genre", []string{" "}, true, "cannot be empty"},
		{"too many genres", genreList(MaxGenreCount + 1), true, "exceeds maximum count"},
		{"genre too long", []string{strings.Repeat("a", MaxGenreLength+1)}, true, "exceeds maximum length"},
		{"duplicate genre", []string{"drama", "drama"}, true, "duplicate genre"},
		{"duplicate differing in case", []string{"Drama", "drama"}, true, "duplicate genre"},
		{"control char", []string{"dra\x00ma"}, true, "cannot contain control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGenres(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// genreList builds n distinct non-empty genre names.
func genreList(n int) []string {
	genres := make([]string, n)
	for i := range genres {
		genres[i] = fmt.Sprintf("genre%d", i)
	}
	return genres
}

func TestValidateRatingValue(t *testing.T) {
	for value := MinRatingValue; value <= MaxRatingValue; value++ {
		assert.NoError(t, ValidateRatingValue(value))
	}

	for _, value := range []int{-1, 6, 100} {
		err := ValidateRatingValue(value)
		require.Error(t, err)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "rate", ve.Field)
		assert.Contains(t, err.Error(), "must be between 0 and 5")
	}
}

func TestValidateCommentBody(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{"valid body", "One of the greats.", false, ""},
		{"empty body", "", true, "cannot be empty"},
		{"whitespace only", "  \n ", true, "cannot be empty"},
		{"body too long", strings.Repeat("a", MaxCommentLength+1), true, "exceeds maximum length"},
		{"max length body", strings.Repeat("a", MaxCommentLength), false, ""},
		{"newline allowed", "line1\nline2", false, ""},
		{"invalid UTF-8 bytes", "\xff\xfe", true, "must be valid UTF-8"},
		{"control char", "body\x00with null", true, "cannot contain control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommentBody(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
