// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

// Package httpapi serves the Cinedex REST API.
//
// All routes live under /api/v1 and speak JSON. Authentication is a
// bearer token issued by the auth service; film browsing works without
// one, everything else requires one. Errors share a single
// {"message": ...} envelope regardless of where they originate.
package httpapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"github.com/cinedex/cinedex/internal/auth"
	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/observability"
)

// Config holds everything the API server needs. Addr and the four
// services are required. Logger falls back to slog.Default, Metrics may
// be nil to disable request counting, and an empty CORSOrigins disables
// cross-origin handling entirely.
type Config struct {
	Addr        string
	CORSOrigins []string

	Auth    *auth.Service
	Resets  *auth.PasswordResetService
	Catalog *catalog.Service
	Ratings *catalog.RatingService

	Metrics *observability.Metrics
	Logger  *slog.Logger
}

// Server is the public-facing HTTP API server.
type Server struct {
	addr       string
	engine     *gin.Engine
	listener   net.Listener
	httpServer *http.Server
	logger     *slog.Logger
	running    atomic.Bool
}

// NewServer assembles the router and returns a server ready to Start.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Auth == nil || cfg.Resets == nil || cfg.Catalog == nil || cfg.Ratings == nil {
		return nil, oops.In("httpapi").Errorf("all services are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(requestID(), requestLogger(logger), recovery(logger))
	if cfg.Metrics != nil {
		engine.Use(requestMetrics(cfg.Metrics))
	}
	if len(cfg.CORSOrigins) > 0 {
		cors, err := corsMiddleware(cfg.CORSOrigins)
		if err != nil {
			return nil, err
		}
		engine.Use(cors)
	}
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Message: "not found"})
	})

	s := &Server{addr: cfg.Addr, engine: engine, logger: logger}
	s.registerRoutes(cfg)
	return s, nil
}

func (s *Server) registerRoutes(cfg Config) {
	account := &authHandlers{auth: cfg.Auth, resets: cfg.Resets, logger: s.logger}
	films := &filmHandlers{catalog: cfg.Catalog, logger: s.logger}
	ratings := &ratingHandlers{ratings: cfg.Ratings, metrics: cfg.Metrics, logger: s.logger}
	comments := &commentHandlers{catalog: cfg.Catalog, logger: s.logger}
	favorites := &favoriteHandlers{catalog: cfg.Catalog, logger: s.logger}

	v1 := s.engine.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", account.register)
	authGroup.POST("/login", account.login)
	authGroup.POST("/password-reset", account.requestPasswordReset)
	authGroup.POST("/password-reset/confirm", account.confirmPasswordReset)

	// Browsing is public. A token, when presented, must still be valid.
	browse := v1.Group("/films", optionalAuth(cfg.Auth))
	browse.GET("", films.list)
	browse.GET("/:id", films.get)

	private := v1.Group("", requireAuth(cfg.Auth))

	me := private.Group("/me")
	me.GET("", account.me)
	me.PUT("", account.updateProfile)
	me.PUT("/password", account.changePassword)
	me.GET("/favorites", favorites.list)
	me.PUT("/favorites/:filmID", favorites.add)
	me.DELETE("/favorites/:filmID", favorites.remove)

	filmGroup := private.Group("/films")
	filmGroup.POST("", films.create)
	filmGroup.PUT("/:id", films.update)
	filmGroup.DELETE("/:id", films.remove)
	filmGroup.POST("/:id/ratings", ratings.create)
	filmGroup.PUT("/:id/ratings", ratings.update)
	filmGroup.DELETE("/:id/ratings", ratings.remove)
	filmGroup.GET("/:id/comments", comments.list)
	filmGroup.POST("/:id/comments", comments.create)

	private.DELETE("/comments/:id", comments.remove)
}

// Start begins serving the API. It returns an error channel that will
// receive any error from the serving goroutine after startup; the
// channel is closed when the server stops gracefully. Callers should
// monitor it to detect server failures.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.In("httpapi").Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.In("httpapi").With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts the server down, draining in-flight requests
// until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return oops.In("httpapi").With("operation", "shutdown").Wrap(err)
	}
	s.logger.Info("api server stopped")
	return nil
}

// Addr returns the bound listen address once started, and the configured
// address before that. Useful when listening on port 0.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Handler exposes the assembled router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
