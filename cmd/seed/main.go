package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/urbanthreads-backend/pkg/config"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db"
	"github.com/angelmondragon/urbanthreads-backend/pkg/logger"
	"github.com/angelmondragon/urbanthreads-backend/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	_ = godotenv.Load()

	password := flag.String("password", "urbanthreads-demo", "password assigned to every demo user")
	force := flag.Bool("force", false, "seed even when URBANTHREADS_APP_ENV is not dev")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)
	if !cfg.App.IsDev() && !*force {
		logg.Warn(ctx, "refusing to seed outside dev; pass -force to override")
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	uow, err := dbClient.Begin(ctx)
	if err != nil {
		logg.Error(ctx, "failed to begin seed transaction", err)
		os.Exit(1)
	}
	defer uow.Rollback()

	res, err := seedDemoData(ctx, uow.Tx(), security.NewHasher(cfg.Password), *password)
	if err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}
	if err := uow.Commit(); err != nil {
		logg.Error(ctx, "failed to commit seed", err)
		os.Exit(1)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"categories": res.Categories,
		"products":   res.Products,
		"users":      res.Users,
	}), "seed complete")
}
