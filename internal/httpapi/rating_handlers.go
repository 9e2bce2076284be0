// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/observability"
)

// ratingHandlers serves the caller's rating of a film. The route carries
// only the film ID; which rating is meant follows from the caller.
type ratingHandlers struct {
	ratings *catalog.RatingService
	metrics *observability.Metrics
	logger  *slog.Logger
}

type ratingRequest struct {
	// Rate is a pointer so an absent field is distinguishable from a
	// legitimate zero-star rating.
	Rate *int `json:"rate"`
}

func (h *ratingHandlers) create(c *gin.Context) {
	filmID, ok := idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	if req.Rate == nil {
		writeFieldError(c, "rate", "rate is required")
		return
	}
	rating, film, err := h.ratings.Create(c.Request.Context(), subject(c), userID, filmID, *req.Rate)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.count("create")
	c.JSON(http.StatusCreated, ratingEnvelope{Rating: toRatingResponse(rating), Film: toFilmAggregate(film)})
}

func (h *ratingHandlers) update(c *gin.Context) {
	filmID, ok := idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return
	}
	if req.Rate == nil {
		writeFieldError(c, "rate", "rate is required")
		return
	}
	rating, film, err := h.ratings.Update(c.Request.Context(), subject(c), userID, filmID, *req.Rate)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.count("update")
	c.JSON(http.StatusOK, ratingEnvelope{Rating: toRatingResponse(rating), Film: toFilmAggregate(film)})
}

func (h *ratingHandlers) remove(c *gin.Context) {
	filmID, ok := idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	film, err := h.ratings.Delete(c.Request.Context(), subject(c), userID, filmID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.count("delete")
	c.JSON(http.StatusOK, gin.H{"film": toFilmAggregate(film)})
}

func (h *ratingHandlers) count(operation string) {
	if h.metrics != nil {
		h.metrics.RatingsTotal.WithLabelValues(operation).Inc()
	}
}
