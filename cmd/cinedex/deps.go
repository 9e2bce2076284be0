// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinedex/cinedex/internal/httpapi"
	"github.com/cinedex/cinedex/internal/observability"
)

// ServeDeps contains injectable dependencies for the serve command.
// Nil fields fall back to their default implementations.
type ServeDeps struct {
	// ConnectDB opens the PostgreSQL pool.
	// Default: store.Connect
	ConnectDB func(ctx context.Context, dsn string) (*pgxpool.Pool, error)

	// NewAPIServer assembles the HTTP API server.
	// Default: httpapi.NewServer
	NewAPIServer func(cfg httpapi.Config) (APIServer, error)

	// NewObservabilityServer creates the metrics/health server.
	// Default: observability.NewServer
	NewObservabilityServer func(addr string, ready observability.ReadinessChecker) ObservabilityServer
}

// APIServer wraps the methods used from httpapi.Server.
type APIServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}

// ObservabilityServer wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}
