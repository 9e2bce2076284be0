// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

// Package postgres provides PostgreSQL implementations of catalog repositories.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// poolIface abstracts the pgxpool methods repositories use. Satisfied by
// *pgxpool.Pool in production and by pgxmock pools in tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
