package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/decant-store/internal/app/product/queries/list_brands"
	"github.com/light-bringer/decant-store/internal/app/product/seed"
	"github.com/light-bringer/decant-store/internal/config"
	"github.com/light-bringer/decant-store/internal/pkg/cache"
	"github.com/light-bringer/decant-store/internal/pkg/committer"
	"github.com/light-bringer/decant-store/internal/pkg/logging"
	"github.com/light-bringer/decant-store/internal/services"
)

func main() {
	ctx := context.Background()
	logger := logging.New(os.Stdout, false, slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	products := seed.Products()

	switch cfg.Database.Driver {
	case config.DriverSpanner:
		client, err := spanner.NewClient(ctx, cfg.Database.SpannerDatabase)
		if err != nil {
			return fmt.Errorf("failed to create Spanner client: %w", err)
		}
		defer client.Close()

		if err := seed.LoadSpanner(ctx, committer.NewCommitter(client), products); err != nil {
			return err
		}

	case config.DriverPostgres:
		db, err := services.OpenPostgres(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := seed.LoadPostgres(ctx, db, products, time.Now().UTC()); err != nil {
			return err
		}

	default:
		return fmt.Errorf("driver %q cannot be seeded", cfg.Database.Driver)
	}
	logger.Info("catalog seeded", "driver", cfg.Database.Driver, "products", len(products))

	if cfg.Redis.URL == "" {
		return nil
	}
	client, err := cache.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Warn("brand cache not invalidated", "error", err)
		return nil
	}
	defer client.Close()

	if err := cache.NewBrandCache(client, cfg.Redis.BrandTTL).Invalidate(ctx, list_brands.KeyAll, list_brands.KeyInStock); err != nil {
		logger.Warn("brand cache not invalidated", "error", err)
	}
	return nil
}
