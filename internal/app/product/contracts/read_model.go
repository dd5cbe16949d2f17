package contracts

import (
	"context"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/search"
)

// ReadModel is the capability the catalog needs from a relational store.
// Implementations render search.Filter into their own query language and
// must select exactly the products for which Filter.Matches is true.
type ReadModel interface {
	// ListProducts returns one page of matching products ordered by
	// ordering, with their inventory and published review count loaded.
	ListProducts(ctx context.Context, filter search.Filter, ordering search.Ordering, page search.Page) ([]*domain.Product, error)

	// CountProducts returns the number of matching products.
	CountProducts(ctx context.Context, filter search.Filter) (int64, error)

	// GetProductBySlug returns a single product or domain.ErrProductNotFound.
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// ListBrands returns the distinct brands of matching products, ascending.
	ListBrands(ctx context.Context, filter search.Filter) ([]string, error)

	// Ping verifies connectivity to the store.
	Ping(ctx context.Context) error
}

// BrandCache stores brand lists between requests.
type BrandCache interface {
	// Get returns the cached list and whether it was present.
	Get(ctx context.Context, key string) ([]string, bool, error)

	// Set stores brands under key.
	Set(ctx context.Context, key string, brands []string) error
}
