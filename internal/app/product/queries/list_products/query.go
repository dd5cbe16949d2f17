package list_products

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/decant-store/internal/app/product/contracts"
	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/search"
)

var tracer = otel.Tracer("github.com/light-bringer/decant-store/internal/app/product/queries/list_products")

// Request contains the parsed catalog query.
type Request struct {
	Params search.SearchParams
}

// Result is one page of products and the pagination facts about it.
type Result struct {
	Products   []*domain.Product
	Total      int64
	Page       search.Page
	TotalPages int
	HasMore    bool
}

// Query handles the list products query use case.
type Query struct {
	readModel contracts.ReadModel
	timeout   time.Duration
}

// NewQuery creates a new list products query. A zero timeout leaves the
// caller's deadline in place.
func NewQuery(readModel contracts.ReadModel, timeout time.Duration) *Query {
	return &Query{
		readModel: readModel,
		timeout:   timeout,
	}
}

// Execute compiles the filter, plans the page and runs the page and count
// queries concurrently. The first failure cancels the other query.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	filter := search.Compile(req.Params)
	ordering, page := search.Plan(req.Params)

	ctx, span := tracer.Start(ctx, "list_products", trace.WithAttributes(
		attribute.Int("catalog.page", page.Number),
		attribute.Int("catalog.limit", page.Limit),
		attribute.String("catalog.sort", string(ordering.Field)+" "+ordering.Direction.String()),
		attribute.Bool("catalog.filtered", !filter.IsEmpty()),
	))
	defer span.End()

	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	var (
		products []*domain.Product
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(recovered(func() error {
		var err error
		products, err = q.readModel.ListProducts(gctx, filter, ordering, page)
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		return nil
	}))
	g.Go(recovered(func() error {
		var err error
		total, err = q.readModel.CountProducts(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		return nil
	}))
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if products == nil {
		products = []*domain.Product{}
	}
	span.SetAttributes(attribute.Int64("catalog.total", total))

	return &Result{
		Products:   products,
		Total:      total,
		Page:       page,
		TotalPages: page.TotalPages(total),
		HasMore:    page.HasMore(total),
	}, nil
}

// recovered turns a panic in fn into an error.
func recovered(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("read model panic: %v", r)
			}
		}()
		return fn()
	}
}
