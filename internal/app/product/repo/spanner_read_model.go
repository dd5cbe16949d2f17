package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/decant-store/internal/app/product/contracts"
	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/search"
	"github.com/light-bringer/decant-store/internal/models/m_inventory"
	"github.com/light-bringer/decant-store/internal/models/m_product"
	"github.com/light-bringer/decant-store/internal/models/m_review"
	"github.com/light-bringer/decant-store/internal/pkg/query"
)

// SpannerReadModel implements ReadModel for Spanner.
type SpannerReadModel struct {
	client *spanner.Client
}

// NewSpannerReadModel creates a new SpannerReadModel.
func NewSpannerReadModel(client *spanner.Client) contracts.ReadModel {
	return &SpannerReadModel{
		client: client,
	}
}

// SpannerConditions renders filter as WHERE conditions, one per present
// constraint. Price bounds become two separate OR groups over the tiers so
// that both must hold.
func SpannerConditions(filter search.Filter) []query.Condition {
	var conditions []query.Condition

	if filter.Search != "" {
		conditions = append(conditions, query.Or(
			query.ContainsFold(m_product.Name, filter.Search),
			query.ContainsFold(m_product.Brand, filter.Search),
			query.ContainsFold(m_product.Description, filter.Search),
		))
	}
	if filter.Brand != "" {
		conditions = append(conditions, query.EqFold(m_product.Brand, filter.Brand))
	}
	if filter.Category != "" {
		conditions = append(conditions, query.Eq(m_product.Category, string(filter.Category)))
	}
	if filter.Gender != "" {
		conditions = append(conditions, query.Eq(m_product.Gender, string(filter.Gender)))
	}
	if filter.InStockOnly {
		conditions = append(conditions, query.Eq(m_product.InStock, true))
	}
	if filter.PriceMin != nil {
		tiers := make([]query.Condition, 0, len(m_product.PriceColumns))
		for _, col := range m_product.PriceColumns {
			tiers = append(tiers, query.Gte(col, *filter.PriceMin))
		}
		conditions = append(conditions, query.Or(tiers...))
	}
	if filter.PriceMax != nil {
		tiers := make([]query.Condition, 0, len(m_product.PriceColumns))
		for _, col := range m_product.PriceColumns {
			tiers = append(tiers, query.Lte(col, *filter.PriceMax))
		}
		conditions = append(conditions, query.Or(tiers...))
	}

	return conditions
}

// ListProducts retrieves one page of matching products with their relations.
// All reads share a read-only transaction so the page and its relations
// come from the same snapshot.
func (rm *SpannerReadModel) ListProducts(ctx context.Context, filter search.Filter, ordering search.Ordering, page search.Page) ([]*domain.Product, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.Columns...).
		WhereAll(SpannerConditions(filter)).
		OrderBy(ordering.Column(), ordering.Direction).
		ThenBy(m_product.ID, query.Asc).
		Limit(int64(page.Limit)).
		Offset(int64(page.Offset())).
		Build()

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	products, err := rm.queryProducts(ctx, txn, stmt, page.Limit)
	if err != nil {
		return nil, err
	}
	if err := rm.loadRelations(ctx, txn, products); err != nil {
		return nil, err
	}
	return products, nil
}

// CountProducts returns the number of matching products.
func (rm *SpannerReadModel) CountProducts(ctx context.Context, filter search.Filter) (int64, error) {
	stmt := query.From(m_product.TableName).
		WhereAll(SpannerConditions(filter)).
		Count().
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse product count: %w", err)
	}
	return count, nil
}

// GetProductBySlug retrieves a single product with its relations.
func (rm *SpannerReadModel) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.Columns...).
		Where(query.Eq(m_product.Slug, slug)).
		Limit(1).
		Build()

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	products, err := rm.queryProducts(ctx, txn, stmt, 1)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrProductNotFound
	}
	if err := rm.loadRelations(ctx, txn, products); err != nil {
		return nil, err
	}
	return products[0], nil
}

// ListBrands returns the distinct brands of matching products, ascending.
func (rm *SpannerReadModel) ListBrands(ctx context.Context, filter search.Filter) ([]string, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.Brand).
		Distinct().
		WhereAll(SpannerConditions(filter)).
		OrderBy(m_product.Brand, query.Asc).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	brands := []string{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate brands: %w", err)
		}

		var brand string
		if err := row.Columns(&brand); err != nil {
			return nil, fmt.Errorf("failed to parse brand: %w", err)
		}
		brands = append(brands, brand)
	}
	return brands, nil
}

// Ping runs a trivial query against the database.
func (rm *SpannerReadModel) Ping(ctx context.Context) error {
	iter := rm.client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()

	if _, err := iter.Next(); err != nil {
		return fmt.Errorf("failed to ping spanner: %w", err)
	}
	return nil
}

func (rm *SpannerReadModel) queryProducts(ctx context.Context, txn *spanner.ReadOnlyTransaction, stmt spanner.Statement, sizeHint int) ([]*domain.Product, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	products := make([]*domain.Product, 0, sizeHint)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		products = append(products, dataToDomain(&data))
	}
	return products, nil
}

// loadRelations attaches inventory rows, oldest bottle first, and the number
// of published reviews to each product.
func (rm *SpannerReadModel) loadRelations(ctx context.Context, txn *spanner.ReadOnlyTransaction, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := productIDs(products)
	byID := indexByID(products)

	inventoryStmt := query.From(m_inventory.TableName).
		Select(m_inventory.Columns...).
		Where(query.In(m_inventory.ProductID, ids)).
		OrderBy(m_inventory.CreatedAt, query.Asc).
		ThenBy(m_inventory.ID, query.Asc).
		Build()

	iter := txn.Query(ctx, inventoryStmt)
	err := iter.Do(func(row *spanner.Row) error {
		var data m_inventory.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse inventory: %w", err)
		}
		if p, ok := byID[data.ProductID]; ok {
			p.Inventory = append(p.Inventory, inventoryToDomain(&data))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	reviewStmt := query.From(m_review.TableName).
		Select(m_review.ProductID, "COUNT(*) AS reviews").
		Where(query.In(m_review.ProductID, ids)).
		Where(query.Eq(m_review.IsPublished, true)).
		GroupBy(m_review.ProductID).
		Build()

	iter = txn.Query(ctx, reviewStmt)
	err = iter.Do(func(row *spanner.Row) error {
		var productID string
		var count int64
		if err := row.Columns(&productID, &count); err != nil {
			return fmt.Errorf("failed to parse review count: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Count.Reviews = count
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load review counts: %w", err)
	}
	return nil
}
