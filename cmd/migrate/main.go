package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"food-delivery/internal/config"
	"food-delivery/internal/db"
	"food-delivery/internal/migrate"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying")
	version := flag.Bool("version", false, "print the current schema version and exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.FromEnv()
	base, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger := base.Sugar().Named("migrate")
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatalw("connect db", "error", err)
	}
	defer pool.Close()

	switch {
	case *version:
		v, dirty, err := migrate.Version(ctx, pool)
		if err != nil {
			logger.Fatalw("read version", "error", err)
		}
		logger.Infow("schema version", "version", v, "dirty", dirty)
	case *down > 0:
		if err := migrate.Rollback(ctx, pool, *down); err != nil {
			logger.Fatalw("roll back migrations", "steps", *down, "error", err)
		}
		logger.Infow("migrations rolled back", "steps", *down)
	default:
		if err := migrate.Apply(ctx, pool); err != nil {
			logger.Fatalw("apply migrations", "error", err)
		}
		logger.Infow("migrations applied")
	}
}
