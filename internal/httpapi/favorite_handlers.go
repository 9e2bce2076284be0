// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinedex/cinedex/internal/catalog"
)

// favoriteHandlers serves the caller's favorites list under /me.
type favoriteHandlers struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

func (h *favoriteHandlers) list(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	films, err := h.catalog.ListFavorites(c.Request.Context(), subject(c), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"films": toFilmResponses(films)})
}

func (h *favoriteHandlers) add(c *gin.Context) {
	filmID, ok := idParam(c, "filmID")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.catalog.AddFavorite(c.Request.Context(), subject(c), userID, filmID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *favoriteHandlers) remove(c *gin.Context) {
	filmID, ok := idParam(c, "filmID")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.catalog.RemoveFavorite(c.Request.Context(), subject(c), userID, filmID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
