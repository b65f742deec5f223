package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"food-delivery/internal/config"
	"food-delivery/internal/db"
	"food-delivery/internal/importer"
	categoryrepo "food-delivery/internal/repository/category"
	companyrepo "food-delivery/internal/repository/company"
	menuitemrepo "food-delivery/internal/repository/menuitem"
	variationrepo "food-delivery/internal/repository/variation"
	categorysvc "food-delivery/internal/service/category"
	menusvc "food-delivery/internal/service/menu"
	variationsvc "food-delivery/internal/service/variation"
)

func main() {
	var (
		filePath    string
		companySlug string
	)
	flag.StringVar(&filePath, "file", "", "Path to the menu CSV (items or variations)")
	flag.StringVar(&companySlug, "company", "", "Company slug to import into")
	flag.Parse()

	if filePath == "" || companySlug == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()
	base, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger := base.Sugar().Named("importer")
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatalw("connect db", "error", err)
	}
	defer pool.Close()

	company, err := companyrepo.NewPostgres(pool).GetBySlug(ctx, companySlug)
	if err != nil {
		logger.Fatalw("lookup company", "slug", companySlug, "error", err)
	}

	categories := categorysvc.New(categoryrepo.NewPostgres(pool))
	variations := variationsvc.New(variationrepo.NewPostgres(pool, logger), logger)
	items := menusvc.New(menuitemrepo.NewPostgres(pool, logger), categories, variations)

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalw("open file", "error", err)
	}
	defer f.Close()

	start := time.Now()
	count, err := importer.NewCSVImporter(f, items, variations, categories, company.ID).Run(ctx)
	if err != nil {
		logger.Fatalw("import failed", "imported", count, "error", err)
	}
	logger.Infow("import finished", "company", companySlug, "imported", count, "took", time.Since(start).Truncate(time.Millisecond))
}
