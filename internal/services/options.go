package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"cloud.google.com/go/spanner"
	"github.com/go-redis/redis/v8"

	"github.com/light-bringer/decant-store/internal/app/product/contracts"
	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/queries/check_health"
	"github.com/light-bringer/decant-store/internal/app/product/queries/featured_products"
	"github.com/light-bringer/decant-store/internal/app/product/queries/get_product"
	"github.com/light-bringer/decant-store/internal/app/product/queries/list_brands"
	"github.com/light-bringer/decant-store/internal/app/product/queries/list_products"
	"github.com/light-bringer/decant-store/internal/app/product/repo"
	"github.com/light-bringer/decant-store/internal/app/product/seed"
	"github.com/light-bringer/decant-store/internal/config"
	"github.com/light-bringer/decant-store/internal/pkg/cache"
	"github.com/light-bringer/decant-store/internal/pkg/clock"
	httphandler "github.com/light-bringer/decant-store/internal/transport/http"
)

// Postgres pool limits.
const (
	maxOpenConns = 10
	maxIdleConns = 5
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	PostgresDB    *sql.DB
	RedisClient   *redis.Client
	ReadModel     contracts.ReadModel
	Router        http.Handler
}

// NewServiceOptions opens the configured store and cache and wires the
// queries and HTTP handlers.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ServiceOptions, error) {
	s := &ServiceOptions{}

	// 1. Catalog store
	if err := s.openReadModel(ctx, cfg); err != nil {
		return nil, err
	}

	// 2. Optional brand cache. The catalog works without it.
	var brandCache contracts.BrandCache
	if cfg.Redis.URL != "" {
		client, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			logger.WarnContext(ctx, "brand cache disabled", "error", err)
		} else {
			s.RedisClient = client
			brandCache = cache.NewBrandCache(client, cfg.Redis.BrandTTL)
		}
	}

	// 3. Queries
	timeout := cfg.Database.QueryTimeout
	listProducts := list_products.NewQuery(s.ReadModel, timeout)
	listBrands := list_brands.NewQuery(s.ReadModel, brandCache, timeout, logger)
	getProduct := get_product.NewQuery(s.ReadModel, timeout)
	featured := featured_products.NewQuery(s.ReadModel, timeout)
	checkHealth := check_health.NewQuery(s.ReadModel, clock.System, cfg.App.Env, timeout)

	// 4. HTTP handlers
	s.Router = httphandler.NewRouter(httphandler.Handlers{
		Products: httphandler.NewProductsHandler(listProducts, getProduct, listBrands, logger),
		Health:   httphandler.NewHealthHandler(checkHealth, logger),
		Pages:    httphandler.NewPagesHandler(featured, listProducts, listBrands, domain.CurrencyEUR, logger),
	}, cfg.Telemetry.ServiceName, logger)

	return s, nil
}

func (s *ServiceOptions) openReadModel(ctx context.Context, cfg *config.Config) error {
	switch cfg.Database.Driver {
	case config.DriverSpanner:
		client, err := spanner.NewClient(ctx, cfg.Database.SpannerDatabase)
		if err != nil {
			return fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.SpannerClient = client
		s.ReadModel = repo.NewSpannerReadModel(client)

	case config.DriverPostgres:
		db, err := OpenPostgres(cfg.Database.URL)
		if err != nil {
			return err
		}
		s.PostgresDB = db
		s.ReadModel = repo.NewPostgresReadModel(db)

	case config.DriverMemory:
		s.ReadModel = repo.NewMemoryReadModel(seed.Products()...)

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	return nil
}

// OpenPostgres opens a connection pool. Connectivity is verified lazily by
// the health check.
func OpenPostgres(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	return db, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}
	if s.PostgresDB != nil {
		_ = s.PostgresDB.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
