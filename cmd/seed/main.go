// Package main provides a CLI tool that seeds the pokedex database from a
// CSV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/poketeam/pokedex-service/internal/config"
	"github.com/poketeam/pokedex-service/internal/database"
	"github.com/poketeam/pokedex-service/internal/observability"
	"github.com/poketeam/pokedex-service/internal/repository"
	"github.com/poketeam/pokedex-service/internal/seed"
	"github.com/poketeam/pokedex-service/internal/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	seedFile := flag.String("file", "seed/pokemon.csv", "Path to the pokemon seed CSV file")
	truncate := flag.Bool("truncate", false, "Drop existing pokemons before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		AddSource:  false,
		TimeFormat: time.RFC3339,
	})
	logger = logger.With().Str("component", "seed").Logger()

	start := time.Now()

	logger.Info().Str("file", *seedFile).Msg("loading pokemon seed data")
	pokemons, err := seed.LoadFile(*seedFile, validation.New())
	if err != nil {
		return fmt.Errorf("load seed data: %w", err)
	}
	logger.Info().Int("count", len(pokemons)).Msg("seed data loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, &cfg.Database, logger, nil)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	logger.Info().Msg("database connection established")

	if *truncate {
		tag, err := db.Exec(ctx, "DELETE FROM pokemons")
		if err != nil {
			return fmt.Errorf("delete existing pokemons: %w", err)
		}
		logger.Info().Int64("deleted", tag.RowsAffected()).Msg("existing pokemons dropped")
	}

	repo := repository.NewPgPokemonRepository(db, logger)
	inserted, err := repo.CreateBatch(ctx, pokemons)
	if err != nil {
		return fmt.Errorf("insert pokemons: %w", err)
	}

	logger.Info().
		Int64("count", inserted).
		Dur("elapsed", time.Since(start)).
		Msg("pokemon database seed done")
	return nil
}
