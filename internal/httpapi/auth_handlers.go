// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinedex/cinedex/internal/auth"
	"github.com/cinedex/cinedex/internal/observability"
)

// authHandlers serves account endpoints: registration, login, the
// password reset flow, and the caller's own profile under /me.
type authHandlers struct {
	auth   *auth.Service
	resets *auth.PasswordResetService
	logger *slog.Logger
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *authHandlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User             userResponse `json:"user"`
	Token            string       `json:"token"`
	ExpiresInSeconds int          `json:"expiresInSeconds"`
}

func (h *authHandlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		observability.RecordLogin("failure")
		writeError(c, h.logger, err)
		return
	}
	observability.RecordLogin("success")
	c.JSON(http.StatusOK, loginResponse{
		User:             toUserResponse(user),
		Token:            token,
		ExpiresInSeconds: int(auth.TokenExpiry.Seconds()),
	})
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// requestPasswordReset answers 202 for every well-formed request so the
// response cannot reveal whether the address has an account.
func (h *authHandlers) requestPasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	if err := h.resets.RequestReset(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "if the address has an account, a reset code is on its way"})
}

type passwordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *authHandlers) confirmPasswordReset(c *gin.Context) {
	var req passwordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	if err := h.resets.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *authHandlers) me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	user, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func (h *authHandlers) updateProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, req.Name, req.Bio)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *authHandlers) changePassword(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}
