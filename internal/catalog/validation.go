// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation limits for catalog types.
const (
	MaxTitleLength    = 200
	MaxSynopsisLength = 4000
	MaxGenreCount     = 10
	MaxGenreLength    = 50
	MaxCommentLength  = 2000

	// Release year bounds. Film predates 1888 only in trivia questions.
	MinReleaseYear = 1888
	MaxReleaseYear = 2100
)

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateTitle checks that a film title is valid.
// Titles must be non-empty, valid UTF-8, no control characters, and within length limit.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if !utf8.ValidString(title) {
		return &ValidationError{Field: "title", Message: "must be valid UTF-8"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("exceeds maximum length of %d", MaxTitleLength)}
	}
	if hasControlChars(title) {
		return &ValidationError{Field: "title", Message: "cannot contain control characters"}
	}
	return nil
}

// ValidateSynopsis checks that a synopsis is valid.
// Synopses may be empty, must be valid UTF-8, no control characters (except newline/tab), and within length limit.
func ValidateSynopsis(synopsis string) error {
	if synopsis == "" {
		return nil // Synopsis may be empty
	}
	if !utf8.ValidString(synopsis) {
		return &ValidationError{Field: "synopsis", Message: "must be valid UTF-8"}
	}
	if utf8.RuneCountInString(synopsis) > MaxSynopsisLength {
		return &ValidationError{Field: "synopsis", Message: fmt.Sprintf("exceeds maximum length of %d", MaxSynopsisLength)}
	}
	if hasControlCharsExceptWhitespace(synopsis) {
		return &ValidationError{Field: "synopsis", Message: "cannot contain control characters (except newline/tab)"}
	}
	return nil
}

// ValidateReleaseYear checks that a release year is within the accepted range.
func ValidateReleaseYear(year int) error {
	if year < MinReleaseYear || year > MaxReleaseYear {
		return &ValidationError{Field: "release_year", Message: fmt.Sprintf("must be between %d and %d", MinReleaseYear, MaxReleaseYear)}
	}
	return nil
}

// ValidateGenres checks that a genre list is valid.
// Each genre must be non-empty, valid UTF-8, no control characters, and
// within length limit. Duplicates (case-insensitive) are rejected.
func ValidateGenres(genres []string) error {
	if len(genres) > MaxGenreCount {
		return &ValidationError{Field: "genres", Message: fmt.Sprintf("exceeds maximum count of %d", MaxGenreCount)}
	}
	seen := make(map[string]bool, len(genres))
	for i, genre := range genres {
		if strings.TrimSpace(genre) == "" {
			return &ValidationError{Field: "genres", Message: fmt.Sprintf("genre %d cannot be empty", i)}
		}
		if !utf8.ValidString(genre) {
			return &ValidationError{Field: "genres", Message: fmt.Sprintf("genre %d must be valid UTF-8", i)}
		}
		if utf8.RuneCountInString(genre) > MaxGenreLength {
			return &ValidationError{Field: "genres", Message: fmt.Sprintf("genre %d exceeds maximum length of %d", i, MaxGenreLength)}
		}
		if hasControlChars(genre) {
			return &ValidationError{Field: "genres", Message: fmt.Sprintf("genre %d cannot contain control characters", i)}
		}
		key := strings.ToLower(genre)
		if seen[key] {
			return &ValidationError{Field: "genres", Message: fmt.Sprintf("duplicate genre: %s", genre)}
		}
		seen[key] = true
	}
	return nil
}

// ValidateRatingValue checks that a rating value is within bounds.
func ValidateRatingValue(value int) error {
	if value < MinRatingValue || value > MaxRatingValue {
		return &ValidationError{Field: "rate", Message: fmt.Sprintf("must be between %d and %d", MinRatingValue, MaxRatingValue)}
	}
	return nil
}

// ValidateCommentBody checks that a comment body is valid.
// Bodies must be non-blank, valid UTF-8, no control characters (except newline/tab), and within length limit.
func ValidateCommentBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return &ValidationError{Field: "body", Message: "cannot be empty"}
	}
	if !utf8.ValidString(body) {
		return &ValidationError{Field: "body", Message: "must be valid UTF-8"}
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return &ValidationError{Field: "body", Message: fmt.Sprintf("exceeds maximum length of %d", MaxCommentLength)}
	}
	if hasControlCharsExceptWhitespace(body) {
		return &ValidationError{Field: "body", Message: "cannot contain control characters (except newline/tab)"}
	}
	return nil
}

// hasControlChars returns true if the string contains control characters.
func hasControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// hasControlCharsExceptWhitespace returns true if the string contains control characters
// other than newline, carriage return, and tab.
func hasControlCharsExceptWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return true
		}
	}
	return false
}
