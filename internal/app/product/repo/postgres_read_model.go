package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/light-bringer/decant-store/internal/app/product/contracts"
	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/search"
	"github.com/light-bringer/decant-store/internal/models/m_inventory"
	"github.com/light-bringer/decant-store/internal/models/m_product"
	"github.com/light-bringer/decant-store/internal/models/m_review"
	"github.com/light-bringer/decant-store/internal/pkg/query"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresReadModel implements ReadModel for PostgreSQL.
type PostgresReadModel struct {
	db *sql.DB
}

// NewPostgresReadModel creates a new PostgresReadModel.
func NewPostgresReadModel(db *sql.DB) contracts.ReadModel {
	return &PostgresReadModel{db: db}
}

// PostgresConditions renders filter as squirrel predicates, one per present
// constraint. LIKE wildcards in the search term are escaped with a backslash,
// which is the PostgreSQL default escape character.
func PostgresConditions(filter search.Filter) []squirrel.Sqlizer {
	var conditions []squirrel.Sqlizer

	if filter.Search != "" {
		pattern := "%" + query.EscapeLike(filter.Search) + "%"
		conditions = append(conditions, squirrel.Or{
			squirrel.ILike{m_product.Name: pattern},
			squirrel.ILike{m_product.Brand: pattern},
			squirrel.ILike{m_product.Description: pattern},
		})
	}
	if filter.Brand != "" {
		conditions = append(conditions, squirrel.Expr("LOWER("+m_product.Brand+") = LOWER(?)", filter.Brand))
	}
	if filter.Category != "" {
		conditions = append(conditions, squirrel.Eq{m_product.Category: string(filter.Category)})
	}
	if filter.Gender != "" {
		conditions = append(conditions, squirrel.Eq{m_product.Gender: string(filter.Gender)})
	}
	if filter.InStockOnly {
		conditions = append(conditions, squirrel.Eq{m_product.InStock: true})
	}
	if filter.PriceMin != nil {
		tiers := squirrel.Or{}
		for _, col := range m_product.PriceColumns {
			tiers = append(tiers, squirrel.GtOrEq{col: *filter.PriceMin})
		}
		conditions = append(conditions, tiers)
	}
	if filter.PriceMax != nil {
		tiers := squirrel.Or{}
		for _, col := range m_product.PriceColumns {
			tiers = append(tiers, squirrel.LtOrEq{col: *filter.PriceMax})
		}
		conditions = append(conditions, tiers)
	}

	return conditions
}

// byteOrder compares text by code point, matching Spanner and Ordering.Compare.
const byteOrder = ` COLLATE "C"`

// orderByClause renders ordering with the id tie-breaker. Text columns sort
// by byte order. NULL prices are placed where Spanner puts them: first
// ascending, last descending.
func orderByClause(ordering search.Ordering) []string {
	column := ordering.Column()
	if ordering.Field == search.SortName || ordering.Field == search.SortBrand {
		column += byteOrder
	}
	term := column + " " + ordering.Direction.String()
	if ordering.Field == search.SortPrice {
		if ordering.Direction == query.Asc {
			term += " NULLS FIRST"
		} else {
			term += " NULLS LAST"
		}
	}
	return []string{term, m_product.ID + byteOrder + " ASC"}
}

func whereFilter(b squirrel.SelectBuilder, filter search.Filter) squirrel.SelectBuilder {
	for _, cond := range PostgresConditions(filter) {
		b = b.Where(cond)
	}
	return b
}

// ListProducts retrieves one page of matching products with their relations
// inside a read-only transaction.
func (rm *PostgresReadModel) ListProducts(ctx context.Context, filter search.Filter, ordering search.Ordering, page search.Page) ([]*domain.Product, error) {
	b := whereFilter(psql.Select(m_product.Columns...).From(m_product.TableName), filter).
		OrderBy(orderByClause(ordering)...).
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset()))

	var products []*domain.Product
	err := rm.readOnly(ctx, func(tx *sql.Tx) error {
		var err error
		products, err = queryPostgresProducts(ctx, tx, b, page.Limit)
		if err != nil {
			return err
		}
		return loadPostgresRelations(ctx, tx, products)
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// CountProducts returns the number of matching products.
func (rm *PostgresReadModel) CountProducts(ctx context.Context, filter search.Filter) (int64, error) {
	var count int64
	err := whereFilter(psql.Select("COUNT(*)").From(m_product.TableName), filter).
		RunWith(rm.db).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// GetProductBySlug retrieves a single product with its relations.
func (rm *PostgresReadModel) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	b := psql.Select(m_product.Columns...).
		From(m_product.TableName).
		Where(squirrel.Eq{m_product.Slug: slug}).
		Limit(1)

	var product *domain.Product
	err := rm.readOnly(ctx, func(tx *sql.Tx) error {
		products, err := queryPostgresProducts(ctx, tx, b, 1)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return domain.ErrProductNotFound
		}
		product = products[0]
		return loadPostgresRelations(ctx, tx, products)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ListBrands returns the distinct brands of matching products, ascending.
func (rm *PostgresReadModel) ListBrands(ctx context.Context, filter search.Filter) ([]string, error) {
	rows, err := whereFilter(psql.Select(m_product.Brand).From(m_product.TableName), filter).
		GroupBy(m_product.Brand).
		OrderBy(m_product.Brand + byteOrder + " ASC").
		RunWith(rm.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	brands := []string{}
	for rows.Next() {
		var brand string
		if err := rows.Scan(&brand); err != nil {
			return nil, fmt.Errorf("failed to parse brand: %w", err)
		}
		brands = append(brands, brand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate brands: %w", err)
	}
	return brands, nil
}

// Ping verifies the connection pool can reach the server.
func (rm *PostgresReadModel) Ping(ctx context.Context) error {
	if err := rm.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	return nil
}

func (rm *PostgresReadModel) readOnly(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := rm.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return fmt.Errorf("failed to begin read-only transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func queryPostgresProducts(ctx context.Context, tx *sql.Tx, b squirrel.SelectBuilder, sizeHint int) ([]*domain.Product, error) {
	rows, err := b.RunWith(tx).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0, sizeHint)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// scanProduct reads one row selected with m_product.Columns.
func scanProduct(rows *sql.Rows) (*domain.Product, error) {
	var p domain.Product
	var description, category, gender, imageURL sql.NullString
	var price2ml, price5ml, price10ml sql.NullString
	var topNotes, middleNotes, baseNotes pq.StringArray

	err := rows.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Brand,
		&description,
		&topNotes,
		&middleNotes,
		&baseNotes,
		&price2ml,
		&price5ml,
		&price10ml,
		&category,
		&gender,
		&imageURL,
		&p.InStock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Description = description.String
	p.TopNotes = nonNil(topNotes)
	p.MiddleNotes = nonNil(middleNotes)
	p.BaseNotes = nonNil(baseNotes)
	p.Category = domain.Category(category.String)
	p.Gender = domain.Gender(gender.String)
	p.ImageURL = imageURL.String
	p.Inventory = []domain.Inventory{}

	for _, tier := range []struct {
		raw sql.NullString
		dst **domain.Money
	}{
		{price2ml, &p.Price2ml},
		{price5ml, &p.Price5ml},
		{price10ml, &p.Price10ml},
	} {
		if !tier.raw.Valid {
			continue
		}
		m, err := domain.ParseMoney(tier.raw.String)
		if err != nil {
			return nil, err
		}
		*tier.dst = m
	}
	return &p, nil
}

func loadPostgresRelations(ctx context.Context, tx *sql.Tx, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := productIDs(products)
	byID := indexByID(products)

	rows, err := psql.Select(m_inventory.ProductID, m_inventory.BottleSizeMl, m_inventory.TotalVolume,
		m_inventory.UsedVolume, m_inventory.LowStockAlert).
		From(m_inventory.TableName).
		Where(squirrel.Eq{m_inventory.ProductID: ids}).
		OrderBy(m_inventory.CreatedAt+" ASC", m_inventory.ID+" ASC").
		RunWith(tx).
		QueryContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	for rows.Next() {
		var data m_inventory.Data
		if err := rows.Scan(&data.ProductID, &data.BottleSizeMl, &data.TotalVolume, &data.UsedVolume, &data.LowStockAlert); err != nil {
			rows.Close()
			return fmt.Errorf("failed to parse inventory: %w", err)
		}
		if p, ok := byID[data.ProductID]; ok {
			p.Inventory = append(p.Inventory, inventoryToDomain(&data))
		}
	}
	if err := errors.Join(rows.Err(), rows.Close()); err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	rows, err = psql.Select(m_review.ProductID, "COUNT(*)").
		From(m_review.TableName).
		Where(squirrel.Eq{m_review.ProductID: ids, m_review.IsPublished: true}).
		GroupBy(m_review.ProductID).
		RunWith(tx).
		QueryContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to load review counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID string
		var count int64
		if err := rows.Scan(&productID, &count); err != nil {
			return fmt.Errorf("failed to parse review count: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Count.Reviews = count
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load review counts: %w", err)
	}
	return nil
}
