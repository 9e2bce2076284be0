// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinedex/cinedex/internal/auth"
	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/pkg/errutil"
)

// errorBody is the envelope every error response uses.
type errorBody struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// writeError maps a service error onto an HTTP status and the error
// envelope. Errors the caller can act on keep a specific status and
// message; everything else becomes an opaque 500 and is logged with its
// full context server-side.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status, body := mapError(err)
	if status == http.StatusInternalServerError {
		if logger == nil {
			logger = slog.Default()
		}
		errutil.LogError(logger, "request failed", err)
	}
	c.AbortWithStatusJSON(status, body)
}

// writeFieldError writes a 400 for a request field the caller got wrong,
// in the same shape catalog validation errors produce.
func writeFieldError(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{
		Message: message,
		Details: map[string]any{"field": field},
	})
}

// mapError translates domain errors to status codes. Error codes are
// matched first so a specific condition keeps its specific response,
// then the bare sentinels catch whatever carried no code.
func mapError(err error) (int, errorBody) {
	var invalid *catalog.ValidationError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, errorBody{
			Message: invalid.Message,
			Details: map[string]any{"field": invalid.Field},
		}
	}

	switch errutil.Code(err) {
	case "AUTH_INVALID_CREDENTIALS":
		// Carries "invalid email or password" from login and "current
		// password is incorrect" from a password change.
		return http.StatusUnauthorized, errorBody{Message: err.Error()}
	case "AUTH_INVALID_TOKEN":
		return http.StatusUnauthorized, errorBody{Message: "invalid or expired token"}
	case "RESET_TOKEN_EMPTY", "RESET_TOKEN_INVALID", "RESET_TOKEN_USED", "RESET_TOKEN_EXPIRED":
		return http.StatusUnauthorized, errorBody{Message: "invalid or expired reset token"}
	case "AUTH_INVALID_EMAIL", "AUTH_INVALID_NAME", "AUTH_INVALID_BIO", "AUTH_WEAK_PASSWORD":
		// These carry messages written for end users; pass them through.
		return http.StatusBadRequest, errorBody{Message: err.Error()}
	case "USER_EMAIL_TAKEN":
		return http.StatusConflict, errorBody{Message: "email is already registered"}
	case "RATING_EXISTS":
		return http.StatusConflict, errorBody{Message: "film is already rated"}
	case "USER_NOT_FOUND", "FILM_NOT_FOUND", "RATING_NOT_FOUND", "COMMENT_NOT_FOUND", "FAVORITE_NOT_FOUND":
		return http.StatusNotFound, errorBody{Message: "not found"}
	}

	switch {
	case errors.Is(err, catalog.ErrPermissionDenied):
		return http.StatusForbidden, errorBody{Message: "permission denied"}
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, auth.ErrNotFound):
		return http.StatusNotFound, errorBody{Message: "not found"}
	case errors.Is(err, catalog.ErrConflict), errors.Is(err, auth.ErrConflict):
		return http.StatusConflict, errorBody{Message: "conflict"}
	}

	return http.StatusInternalServerError, errorBody{Message: "internal server error"}
}
