// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinedex/cinedex/internal/catalog"
)

type commentHandlers struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

type commentRequest struct {
	Body string `json:"body"`
}

func (h *commentHandlers) list(c *gin.Context) {
	filmID, ok := idParam(c, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}
	// Resolve the film first so comments on an unknown film read as a
	// 404 rather than an empty page.
	if _, err := h.catalog.GetFilm(c.Request.Context(), subject(c), filmID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	comments, err := h.catalog.ListComments(c.Request.Context(), subject(c), filmID, limit, offset)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": toCommentResponses(comments)})
}

func (h *commentHandlers) create(c *gin.Context) {
	filmID, ok := idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	comment := &catalog.Comment{
		FilmID: filmID,
		UserID: userID,
		Body:   req.Body,
	}
	if err := h.catalog.CreateComment(c.Request.Context(), subject(c), comment); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

func (h *commentHandlers) remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteComment(c.Request.Context(), subject(c), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
