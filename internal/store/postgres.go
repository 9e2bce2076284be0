// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

// Package store provides database connection and schema management.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

const (
	// pingBackoffBase is the initial delay between connection pings.
	pingBackoffBase = 500 * time.Millisecond

	// pingMaxRetries bounds how long Connect waits for the database to
	// come up before giving up.
	pingMaxRetries = 6
)

// Connect opens a pgx connection pool and verifies it with a ping.
// The ping is retried with fibonacci backoff so the service tolerates a
// database that is still starting, which is the common case under
// container orchestration.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	backoff := retry.WithMaxRetries(pingMaxRetries, retry.NewFibonacci(pingBackoffBase))
	return connect(ctx, dsn, backoff)
}

func connect(ctx context.Context, dsn string, backoff retry.Backoff) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").With("operation", "create pool").Wrap(err)
	}

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DB_UNREACHABLE").With("operation", "ping database").Wrap(err)
	}

	return pool, nil
}
