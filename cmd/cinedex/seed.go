// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package main

import (
	"context"
	_ "embed"
	"errors"
	"os"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cinedex/cinedex/internal/catalog"
	catalogpg "github.com/cinedex/cinedex/internal/catalog/postgres"
	"github.com/cinedex/cinedex/internal/store"
)

// Default timeout for seed command database operations.
const defaultSeedTimeout = 30 * time.Second

//go:embed seeds.yaml
var defaultSeeds []byte

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	file    string
	timeout time.Duration
}

// seedFilm is one film entry in a seed file.
type seedFilm struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Synopsis    string   `yaml:"synopsis"`
	ReleaseYear int      `yaml:"release_year"`
	Genres      []string `yaml:"genres"`
}

// seedFile is the top-level seed file structure.
type seedFile struct {
	Films []seedFilm `yaml:"films"`
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with starter films",
		Long: `Applies pending migrations and inserts the starter film catalog.
Films come from the built-in seed list, or from a YAML file given with
--file. Seed entries carry fixed IDs, so running this command more than
once skips films that already exist instead of duplicating them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.file, "file", "", "seed films from this YAML file instead of the built-in list")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string, cfg *seedConfig) error {
	databaseURL, err := getDatabaseURL()
	if err != nil {
		return err
	}

	films, err := loadSeedFilms(cfg.file)
	if err != nil {
		return err
	}

	// cmd.Context() so SIGINT/SIGTERM still interrupt the run.
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	cmd.Println("Running migrations...")
	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	if upErr := migrator.Up(); upErr != nil {
		_ = migrator.Close()
		return upErr
	}
	if closeErr := migrator.Close(); closeErr != nil {
		return closeErr
	}

	cmd.Println("Connecting to database...")
	pool, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	repo := catalogpg.NewFilmRepository(pool)

	var created, skipped int
	for _, film := range films {
		if createErr := repo.Create(ctx, film); createErr != nil {
			var pgErr *pgconn.PgError
			if errors.As(createErr, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				skipped++
				continue
			}
			return oops.Code("SEED_FAILED").
				With("title", film.Title).
				Wrap(createErr)
		}
		cmd.Printf("Created film: %s (%d)\n", film.Title, film.ReleaseYear)
		created++
	}

	cmd.Printf("Seeding complete: %d created, %d already present\n", created, skipped)
	return nil
}

// loadSeedFilms parses and validates seed data. An empty path selects
// the built-in list.
func loadSeedFilms(path string) ([]*catalog.Film, error) {
	data := defaultSeeds
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, oops.Code("SEED_FILE_READ_FAILED").With("path", path).Wrap(err)
		}
		data = fileData
	}

	var parsed seedFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, oops.Code("SEED_FILE_INVALID").With("path", path).Wrap(err)
	}
	if len(parsed.Films) == 0 {
		return nil, oops.Code("SEED_FILE_INVALID").Errorf("seed data contains no films")
	}

	now := time.Now().UTC()
	films := make([]*catalog.Film, 0, len(parsed.Films))
	for i, entry := range parsed.Films {
		id, err := ulid.Parse(entry.ID)
		if err != nil {
			return nil, oops.Code("SEED_FILE_INVALID").
				With("index", i).
				With("id", entry.ID).
				Wrapf(err, "invalid film id")
		}
		if err := validateSeedFilm(entry); err != nil {
			return nil, oops.Code("SEED_FILE_INVALID").
				With("index", i).
				With("title", entry.Title).
				Wrap(err)
		}
		films = append(films, &catalog.Film{
			ID:          id,
			Title:       entry.Title,
			Synopsis:    entry.Synopsis,
			ReleaseYear: entry.ReleaseYear,
			Genres:      entry.Genres,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return films, nil
}

// validateSeedFilm applies the catalog's field rules to a seed entry.
func validateSeedFilm(entry seedFilm) error {
	if err := catalog.ValidateTitle(entry.Title); err != nil {
		return err
	}
	if err := catalog.ValidateSynopsis(entry.Synopsis); err != nil {
		return err
	}
	if err := catalog.ValidateReleaseYear(entry.ReleaseYear); err != nil {
		return err
	}
	if err := catalog.ValidateGenres(entry.Genres); err != nil {
		return err
	}
	return nil
}
