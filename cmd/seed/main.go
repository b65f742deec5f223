package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"food-delivery/internal/config"
	"food-delivery/internal/db"
	categoryrepo "food-delivery/internal/repository/category"
	companyrepo "food-delivery/internal/repository/company"
	menuitemrepo "food-delivery/internal/repository/menuitem"
	tokenrepo "food-delivery/internal/repository/token"
	userrepo "food-delivery/internal/repository/user"
	variationrepo "food-delivery/internal/repository/variation"
	"food-delivery/internal/seed"
	authsvc "food-delivery/internal/service/auth"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	base, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	logger := base.Sugar().Named("seed")
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatalw("connect db", "error", err)
	}
	defer pool.Close()

	companies := companyrepo.NewPostgres(pool)
	auth := authsvc.New(userrepo.NewPostgres(pool, logger), companies, tokenrepo.NewPostgres(pool), logger)

	created, err := seed.Apply(ctx, seed.Stores{
		Companies:  companies,
		Accounts:   auth,
		Categories: categoryrepo.NewPostgres(pool),
		Variations: variationrepo.NewPostgres(pool, logger),
		MenuItems:  menuitemrepo.NewPostgres(pool, logger),
	}, seed.Options{
		CompanyName:   cfg.SeedCompanySlug,
		AdminName:     "Administrador",
		AdminEmail:    envOr("SEED_ADMIN_EMAIL", "admin@demo.com"),
		AdminPassword: envOr("SEED_ADMIN_PASSWORD", "Admin123"),
	}, logger)
	if err != nil {
		logger.Fatalw("seed apply", "error", err)
	}
	logger.Infow("seed finished", "created", created)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
