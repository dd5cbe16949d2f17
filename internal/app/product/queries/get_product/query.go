package get_product

import (
	"context"
	"time"

	"github.com/light-bringer/decant-store/internal/app/product/contracts"
	"github.com/light-bringer/decant-store/internal/app/product/domain"
)

// Request contains the slug of the product to retrieve.
type Request struct {
	Slug string
}

// Query handles the get product query use case.
type Query struct {
	readModel contracts.ReadModel
	timeout   time.Duration
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel, timeout time.Duration) *Query {
	return &Query{
		readModel: readModel,
		timeout:   timeout,
	}
}

// Execute retrieves a product by slug.
// Returns domain.ErrProductNotFound for unknown or empty slugs.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	if req.Slug == "" {
		return nil, domain.ErrProductNotFound
	}
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}
	return q.readModel.GetProductBySlug(ctx, req.Slug)
}
