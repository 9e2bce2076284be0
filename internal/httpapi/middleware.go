// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gobwas/glob"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cinedex/cinedex/internal/access"
	"github.com/cinedex/cinedex/internal/auth"
	"github.com/cinedex/cinedex/internal/observability"
)

// Keys under which middleware stores per-request values in the gin context.
const (
	ctxKeyRequestID = "requestID"
	ctxKeySubject   = "subject"
	ctxKeyUserID    = "userID"
)

// headerRequestID carries a caller-supplied correlation ID. One is
// generated when absent, and the effective ID is echoed back either way.
const headerRequestID = "X-Request-ID"

// requestID ensures every request carries a correlation ID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(ctxKeyRequestID, id)
		c.Writer.Header().Set(headerRequestID, id)
		c.Next()
	}
}

// requestLogger logs one line per request after it completes.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", c.GetString(ctxKeyRequestID)),
		)
	}
}

// recovery converts handler panics into a 500 response instead of a
// dropped connection.
func recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			slog.Any("panic", recovered),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", c.GetString(ctxKeyRequestID)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Message: "internal server error"})
	})
}

// requestMetrics counts completed requests by method, route pattern, and
// status. The route label is the registered pattern, not the raw path,
// to keep the cardinality bounded.
func requestMetrics(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
	}
}

// corsMiddleware allows cross-origin browser calls from origins matching
// any of the configured glob patterns. Unmatched origins get no CORS
// headers and the browser refuses the response on its own.
func corsMiddleware(patterns []string) (gin.HandlerFunc, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, oops.In("httpapi").
				Code("CONFIG_INVALID").
				With("pattern", p).
				Wrapf(err, "invalid cors origin pattern")
		}
		globs = append(globs, g)
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		matched := false
		for _, g := range globs {
			if g.Match(origin) {
				matched = true
				break
			}
		}
		if !matched {
			c.Next()
			return
		}
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Add("Vary", "Origin")
		if c.Request.Method == http.MethodOptions {
			header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			header.Set("Access-Control-Max-Age", "86400")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}, nil
}

// tokenAuthenticator validates bearer tokens. Satisfied by auth.Service.
type tokenAuthenticator interface {
	Authenticate(token string) (*auth.Claims, error)
}

// requireAuth rejects requests without a valid bearer token and binds
// the caller's subject, user ID, and role for downstream handlers.
func requireAuth(tokens tokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "authorization required"})
			return
		}
		if !bindToken(c, tokens, token) {
			return
		}
		c.Next()
	}
}

// optionalAuth binds a valid bearer token like requireAuth but lets
// tokenless requests through as guests. A presented token must still be
// valid; only its absence selects the guest subject.
func optionalAuth(tokens tokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Set(ctxKeySubject, access.SubjectGuest)
			c.Request = c.Request.WithContext(access.WithRole(c.Request.Context(), access.RoleGuest))
			c.Next()
			return
		}
		if !bindToken(c, tokens, token) {
			return
		}
		c.Next()
	}
}

// bindToken authenticates the token and stores the caller's identity on
// the context. On failure it writes a 401, aborts, and returns false.
func bindToken(c *gin.Context, tokens tokenAuthenticator, token string) bool {
	claims, err := tokens.Authenticate(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "invalid or expired token"})
		return false
	}
	userID, err := claims.UserID()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "invalid or expired token"})
		return false
	}
	c.Set(ctxKeySubject, access.UserSubject(userID.String()))
	c.Set(ctxKeyUserID, userID)
	c.Request = c.Request.WithContext(access.WithRole(c.Request.Context(), claims.Role))
	return true
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// subject returns the access-control subject bound by the auth
// middleware, or empty on routes without one.
func subject(c *gin.Context) string {
	return c.GetString(ctxKeySubject)
}

// callerID returns the authenticated user's ID. It writes a 401 and
// returns false when the middleware did not bind one, which only happens
// if a route that needs it was registered outside requireAuth.
func callerID(c *gin.Context) (ulid.ULID, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "authorization required"})
		return ulid.ULID{}, false
	}
	id, ok := v.(ulid.ULID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "authorization required"})
		return ulid.ULID{}, false
	}
	return id, true
}
