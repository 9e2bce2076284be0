// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// idParam parses a ULID path parameter. A malformed ID cannot name any
// resource, so it answers 404 like an absent one.
func idParam(c *gin.Context, name string) (ulid.ULID, bool) {
	id, err := ulid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, errorBody{Message: "not found"})
		return ulid.ULID{}, false
	}
	return id, true
}

// pagination reads the limit and offset query parameters. Both default
// to zero; the service layer turns a zero limit into its default page
// size and caps oversized ones.
func pagination(c *gin.Context) (limit, offset int, ok bool) {
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeFieldError(c, "limit", "limit must be a non-negative integer")
			return 0, 0, false
		}
		limit = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeFieldError(c, "offset", "offset must be a non-negative integer")
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}
