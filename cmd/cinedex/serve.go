// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/internal/access"
	"github.com/cinedex/cinedex/internal/auth"
	authpg "github.com/cinedex/cinedex/internal/auth/postgres"
	"github.com/cinedex/cinedex/internal/catalog"
	catalogpg "github.com/cinedex/cinedex/internal/catalog/postgres"
	"github.com/cinedex/cinedex/internal/config"
	"github.com/cinedex/cinedex/internal/httpapi"
	"github.com/cinedex/cinedex/internal/logging"
	"github.com/cinedex/cinedex/internal/notify"
	"github.com/cinedex/cinedex/internal/observability"
	"github.com/cinedex/cinedex/internal/store"
)

// How long graceful shutdown may drain in-flight requests.
const shutdownTimeout = 5 * time.Second

// How often expired password-reset requests are pruned.
const resetPruneInterval = time.Hour

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Cinedex API server",
		Long: `Start the HTTP API server and, unless disabled, the metrics/health
server. Configuration comes from defaults, the optional --config file,
flags, and environment variables (DATABASE_URL, CINEDEX_JWT_SECRET,
CINEDEX_SMTP_PASSWORD).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeWithDeps(cmd.Context(), cmd, nil)
		},
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

// runServeWithDeps starts the server with injectable dependencies.
// If deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cmd *cobra.Command, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	if deps.ConnectDB == nil {
		deps.ConnectDB = store.Connect
	}
	if deps.NewAPIServer == nil {
		deps.NewAPIServer = func(cfg httpapi.Config) (APIServer, error) {
			return httpapi.NewServer(cfg)
		}
	}
	if deps.NewObservabilityServer == nil {
		deps.NewObservabilityServer = func(addr string, ready observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, ready)
		}
	}

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.SetDefault("cinedex", version, cfg.LogFormat, cfg.LogLevel)

	slog.Info("starting cinedex server",
		"addr", cfg.Addr,
		"metrics_addr", cfg.MetricsAddr,
		"log_format", cfg.LogFormat,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := deps.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	slog.Info("connected to database")

	users := authpg.NewUserRepository(pool)
	resets := authpg.NewPasswordResetRepository(pool)
	transactor := authpg.NewTransactor(pool)
	films := catalogpg.NewFilmRepository(pool)
	ratings := catalogpg.NewRatingRepository(pool)
	comments := catalogpg.NewCommentRepository(pool)
	favorites := catalogpg.NewFavoriteRepository(pool)

	issuer, err := auth.NewJWTIssuer([]byte(cfg.JWTSecret))
	if err != nil {
		return err
	}
	hasher := auth.NewArgon2idHasher()

	authSvc, err := auth.NewAuthService(users, resets, hasher, issuer)
	if err != nil {
		return err
	}

	var mailer auth.Mailer
	if cfg.MailEnabled() {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, slog.Default())
		slog.Info("smtp mailer configured", "host", cfg.SMTPHost, "from", cfg.SMTPFrom)
	} else {
		mailer = notify.NewLogMailer(slog.Default())
		slog.Info("no smtp host configured, reset tokens go to the log")
	}

	resetSvc, err := auth.NewPasswordResetService(users, resets, hasher, transactor, mailer, slog.Default())
	if err != nil {
		return err
	}

	accessControl := access.NewStaticAccessControl(catalog.NewOwnerResolver(films, comments))
	catalogSvc := catalog.NewService(catalog.ServiceConfig{
		FilmRepo:      films,
		CommentRepo:   comments,
		FavoriteRepo:  favorites,
		AccessControl: accessControl,
	})
	ratingSvc := catalog.NewRatingService(catalog.RatingServiceConfig{
		RatingRepo:    ratings,
		FilmRepo:      films,
		AccessControl: accessControl,
	})

	// Readiness flips once the API listener is up.
	var ready atomic.Bool

	var obsServer ObservabilityServer
	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		obsServer = deps.NewObservabilityServer(cfg.MetricsAddr, ready.Load)
		obsErrChan, obsErr := obsServer.Start()
		if obsErr != nil {
			return oops.Code("OBSERVABILITY_START_FAILED").Wrap(obsErr)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		metrics = obsServer.Metrics()
		slog.Info("observability server started", "addr", obsServer.Addr())
	}

	apiServer, err := deps.NewAPIServer(httpapi.Config{
		Addr:        cfg.Addr,
		CORSOrigins: cfg.CORSOrigins,
		Auth:        authSvc,
		Resets:      resetSvc,
		Catalog:     catalogSvc,
		Ratings:     ratingSvc,
		Metrics:     metrics,
		Logger:      slog.Default(),
	})
	if err != nil {
		stopServer(obsServer, "observability")
		return err
	}
	apiErrChan, err := apiServer.Start()
	if err != nil {
		stopServer(obsServer, "observability")
		return oops.Code("API_START_FAILED").Wrap(err)
	}
	go monitorServerErrors(ctx, cancel, apiErrChan, "api")

	ready.Store(true)

	go pruneExpiredResets(ctx, resetSvc)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("Cinedex server started")
	slog.Info("cinedex server ready", "addr", apiServer.Addr())

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	slog.Info("shutting down...")
	ready.Store(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		slog.Warn("error stopping api server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return nil
}

// monitorServerErrors cancels the run context when a server's error
// channel reports a failure. A closed channel means a graceful stop.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}

// pruneExpiredResets periodically deletes expired password-reset
// requests so abandoned tokens do not pile up.
func pruneExpiredResets(ctx context.Context, resets *auth.PasswordResetService) {
	ticker := time.NewTicker(resetPruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := resets.PruneExpired(ctx)
			if err != nil {
				slog.Warn("pruning expired password resets failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("pruned expired password resets", "count", n)
			}
		}
	}
}

// stopServer stops a server during startup cleanup, tolerating nil.
func stopServer(srv ObservabilityServer, name string) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Warn("failed to stop server during cleanup", "server", name, "error", err)
	}
}
