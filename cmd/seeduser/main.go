// Command seeduser migrates the schema and loads the default admin and demo
// catalog without starting the HTTP server.
// Usage: go run ./cmd/seeduser
package main

import (
	"context"
	"time"

	"retailpos/internal/config"
	"retailpos/internal/infra"
	"retailpos/internal/repository"
	"retailpos/internal/seed"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migration error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s := seed.New(
		repository.NewUserRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewProductRepository(db),
	)
	if err := s.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed error")
	}
	log.Info().Str("admin", seed.DefaultAdminEmail).Msg("seed complete")
}
