// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/internal/config"
	"github.com/cinedex/cinedex/internal/store"
)

// migrateConfig holds configuration for the migrate command.
type migrateConfig struct {
	down   int
	force  string
	status bool
}

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cfg := &migrateConfig{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Apply all pending database migrations against the PostgreSQL database.

With --down N, roll back the last N migrations instead. With --force V,
set the recorded schema version without running anything; use only to
recover from a dirty state after fixing the database by hand. With
--status, report applied and pending migrations and exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.down, "down", 0, "roll back this many migrations")
	cmd.Flags().StringVar(&cfg.force, "force", "", "set the schema version without running migrations")
	cmd.Flags().BoolVar(&cfg.status, "status", false, "show applied and pending migrations")

	return cmd
}

func runMigrate(cmd *cobra.Command, cfg *migrateConfig) error {
	// Argument validation happens before any connection is dialed.
	if cfg.down < 0 {
		return oops.Code("INVALID_VERSION").Errorf("--down must be non-negative, got %d", cfg.down)
	}
	var forceVersion int
	if cfg.force != "" {
		version, parseErr := parseForceVersion(cfg.force)
		if parseErr != nil {
			return parseErr
		}
		forceVersion = version
	}

	databaseURL, err := getDatabaseURL()
	if err != nil {
		return err
	}

	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			slog.Warn("error closing migrator", "error", closeErr)
		}
	}()

	switch {
	case cfg.status:
		return printMigrationStatus(cmd, migrator)

	case cfg.force != "":
		if forceErr := migrator.Force(forceVersion); forceErr != nil {
			return forceErr
		}
		cmd.Printf("Schema version forced to %d\n", forceVersion)
		return nil

	case cfg.down > 0:
		if stepsErr := migrator.Steps(-cfg.down); stepsErr != nil {
			return stepsErr
		}
		cmd.Printf("Rolled back %d migration(s)\n", cfg.down)
		return nil

	default:
		cmd.Println("Running migrations...")
		if upErr := migrator.Up(); upErr != nil {
			return upErr
		}
		cmd.Println("Migrations completed successfully")
		return nil
	}
}

// printMigrationStatus writes an applied/pending table for every known
// migration, plus a dirty-state warning when recovery is needed.
func printMigrationStatus(cmd *cobra.Command, migrator *store.Migrator) error {
	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	applied, err := migrator.AppliedMigrations()
	if err != nil {
		return err
	}
	pending, err := migrator.PendingMigrations()
	if err != nil {
		return err
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "VERSION\tNAME\tSTATE")
	for _, v := range applied {
		_, _ = fmt.Fprintf(w, "%06d\t%s\tapplied\n", v, migrationDisplayName(v))
	}
	for _, v := range pending {
		_, _ = fmt.Fprintf(w, "%06d\t%s\tpending\n", v, migrationDisplayName(v))
	}
	_ = w.Flush()
	cmd.Print(sb.String())

	if dirty {
		cmd.Printf("WARNING: version %d is dirty; fix the database by hand, then use --force\n", version)
	}
	if len(pending) == 0 {
		cmd.Println("Database is up to date")
	}
	return nil
}

// migrationDisplayName returns the migration's name without its version
// prefix, or a placeholder when the file cannot be resolved.
func migrationDisplayName(version uint) string {
	name, err := store.MigrationName(version)
	if err != nil || name == "" {
		return "(unknown)"
	}
	if _, rest, found := strings.Cut(name, "_"); found {
		return rest
	}
	return name
}

// parseForceVersion parses a --force argument. Sscanf semantics apply:
// leading whitespace is skipped and trailing characters are ignored.
func parseForceVersion(input string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(input, "%d", &version); err != nil {
		return 0, oops.Code("INVALID_VERSION").
			With("input", input).
			Wrapf(err, "version must be an integer")
	}
	return version, nil
}

// getDatabaseURL reads the database connection string from the environment.
func getDatabaseURL() (string, error) {
	databaseURL := os.Getenv(config.EnvDatabaseURL)
	if databaseURL == "" {
		return "", oops.Code("CONFIG_INVALID").
			Errorf("%s environment variable is required", config.EnvDatabaseURL)
	}
	return databaseURL, nil
}
