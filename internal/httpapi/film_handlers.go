// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cinedex/cinedex/internal/catalog"
)

type filmHandlers struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

type filmRequest struct {
	Title       string   `json:"title"`
	Synopsis    string   `json:"synopsis"`
	ReleaseYear int      `json:"releaseYear"`
	Genres      []string `json:"genres"`
}

func (h *filmHandlers) list(c *gin.Context) {
	filter, ok := filmFilter(c)
	if !ok {
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}
	films, err := h.catalog.ListFilms(c.Request.Context(), subject(c), filter, limit, offset)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"films": toFilmResponses(films)})
}

// filmFilter builds the catalog filter from query parameters. The q
// parameter uses the token syntax understood by catalog.ParseFilter; the
// title, genre, and year parameters override individual fields.
func filmFilter(c *gin.Context) (catalog.Filter, bool) {
	filter, err := catalog.ParseFilter(c.Query("q"))
	if err != nil {
		writeError(c, nil, err)
		return catalog.Filter{}, false
	}
	if title := c.Query("title"); title != "" {
		filter.Title = title
	}
	if genre := c.Query("genre"); genre != "" {
		filter.Genre = genre
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 0 {
			writeFieldError(c, "year", "year must be a non-negative integer")
			return catalog.Filter{}, false
		}
		filter.Year = year
	}
	return filter, true
}

func (h *filmHandlers) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	film, err := h.catalog.GetFilm(c.Request.Context(), subject(c), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toFilmResponse(film))
}

func (h *filmHandlers) create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req filmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	film := &catalog.Film{
		Title:       req.Title,
		Synopsis:    req.Synopsis,
		ReleaseYear: req.ReleaseYear,
		Genres:      req.Genres,
		CreatedBy:   userID,
	}
	if err := h.catalog.CreateFilm(c.Request.Context(), subject(c), film); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toFilmResponse(film))
}

func (h *filmHandlers) update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req filmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	film := &catalog.Film{
		ID:          id,
		Title:       req.Title,
		Synopsis:    req.Synopsis,
		ReleaseYear: req.ReleaseYear,
		Genres:      req.Genres,
	}
	if err := h.catalog.UpdateFilm(c.Request.Context(), subject(c), film); err != nil {
		writeError(c, h.logger, err)
		return
	}
	updated, err := h.catalog.GetFilm(c.Request.Context(), subject(c), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toFilmResponse(updated))
}

func (h *filmHandlers) remove(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteFilm(c.Request.Context(), subject(c), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
