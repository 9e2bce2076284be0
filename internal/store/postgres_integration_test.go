// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

//go:build integration

package store_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cinedex/cinedex/internal/store"
)

// startPostgresContainer starts a PostgreSQL container and returns its
// connection string.
func startPostgresContainer() (string, func(), error) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("cinedex_test"),
		postgres.WithUsername("cinedex"),
		postgres.WithPassword("cinedex"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return "", nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return "", nil, err
	}

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return connStr, cleanup, nil
}

var _ = Describe("Connect", func() {
	var (
		connStr string
		cleanup func()
		pool    *pgxpool.Pool
	)

	BeforeEach(func() {
		var err error
		connStr, cleanup, err = startPostgresContainer()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if pool != nil {
			pool.Close()
			pool = nil
		}
		cleanup()
	})

	It("returns a usable pool", func() {
		ctx := context.Background()

		var err error
		pool, err = store.Connect(ctx, connStr)
		Expect(err).NotTo(HaveOccurred())

		var one int
		err = pool.QueryRow(ctx, "SELECT 1").Scan(&one)
		Expect(err).NotTo(HaveOccurred())
		Expect(one).To(Equal(1))
	})

	It("produces a pool the migrator can build on", func() {
		ctx := context.Background()

		migrator, err := store.NewMigrator(connStr)
		Expect(err).NotTo(HaveOccurred())
		defer migrator.Close()
		Expect(migrator.Up()).To(Succeed())

		pool, err = store.Connect(ctx, connStr)
		Expect(err).NotTo(HaveOccurred())

		var count int
		err = pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(0))
	})
})
