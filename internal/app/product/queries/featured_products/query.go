package featured_products

import (
	"context"
	"time"

	"github.com/light-bringer/decant-store/internal/app/product/contracts"
	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/search"
)

// Query returns the home page selection: the newest in-stock products.
type Query struct {
	readModel contracts.ReadModel
	timeout   time.Duration
}

// NewQuery creates a new featured products query.
func NewQuery(readModel contracts.ReadModel, timeout time.Duration) *Query {
	return &Query{
		readModel: readModel,
		timeout:   timeout,
	}
}

// Execute retrieves up to search.FeaturedLimit products.
func (q *Query) Execute(ctx context.Context) ([]*domain.Product, error) {
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	params := search.Featured()
	ordering, page := search.Plan(params)
	return q.readModel.ListProducts(ctx, search.Compile(params), ordering, page)
}
