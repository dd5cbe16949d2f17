package list_brands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/light-bringer/decant-store/internal/app/product/contracts"
	"github.com/light-bringer/decant-store/internal/app/product/search"
)

// Cache keys per filter variant.
const (
	KeyInStock = "brands:in-stock"
	KeyAll     = "brands:all"
)

// Request selects which brands to list.
type Request struct {
	InStockOnly bool
}

// Query lists distinct brand names, consulting the brand cache first when
// one is configured. Cache failures are logged and fall through to the store.
type Query struct {
	readModel contracts.ReadModel
	cache     contracts.BrandCache
	timeout   time.Duration
	logger    *slog.Logger
}

// NewQuery creates a new list brands query. cache may be nil.
func NewQuery(readModel contracts.ReadModel, cache contracts.BrandCache, timeout time.Duration, logger *slog.Logger) *Query {
	if logger == nil {
		logger = slog.Default()
	}
	return &Query{
		readModel: readModel,
		cache:     cache,
		timeout:   timeout,
		logger:    logger,
	}
}

// Execute returns the brands in ascending order.
func (q *Query) Execute(ctx context.Context, req *Request) ([]string, error) {
	key := KeyAll
	if req.InStockOnly {
		key = KeyInStock
	}

	if q.cache != nil {
		brands, ok, err := q.cache.Get(ctx, key)
		if err != nil {
			q.logger.WarnContext(ctx, "brand cache read failed", "key", key, "error", err)
		} else if ok {
			return brands, nil
		}
	}

	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	brands, err := q.readModel.ListBrands(ctx, search.Filter{InStockOnly: req.InStockOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, key, brands); err != nil {
			q.logger.WarnContext(ctx, "brand cache write failed", "key", key, "error", err)
		}
	}
	return brands, nil
}
