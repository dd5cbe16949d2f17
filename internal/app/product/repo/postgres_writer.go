package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/models/m_inventory"
	"github.com/light-bringer/decant-store/internal/models/m_product"
	"github.com/light-bringer/decant-store/internal/models/m_review"
)

// UpsertProduct writes a product row, replacing an existing row with the same id.
func UpsertProduct(ctx context.Context, runner squirrel.BaseRunner, p *domain.Product, now time.Time) error {
	createdAt, updatedAt := p.CreatedAt, p.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	_, err := psql.Insert(m_product.TableName).
		SetMap(map[string]interface{}{
			m_product.ID:          p.ID,
			m_product.Slug:        p.Slug,
			m_product.Name:        p.Name,
			m_product.Brand:       p.Brand,
			m_product.Description: nullable(p.Description),
			m_product.TopNotes:    pq.Array(nonNil(p.TopNotes)),
			m_product.MiddleNotes: pq.Array(nonNil(p.MiddleNotes)),
			m_product.BaseNotes:   pq.Array(nonNil(p.BaseNotes)),
			m_product.Price2ml:    moneyValue(p.Price2ml),
			m_product.Price5ml:    moneyValue(p.Price5ml),
			m_product.Price10ml:   moneyValue(p.Price10ml),
			m_product.Category:    nullable(string(p.Category)),
			m_product.Gender:      nullable(string(p.Gender)),
			m_product.ImageURL:    nullable(p.ImageURL),
			m_product.InStock:     p.InStock,
			m_product.CreatedAt:   createdAt,
			m_product.UpdatedAt:   updatedAt,
		}).
		Suffix("ON CONFLICT (" + m_product.ID + ") DO UPDATE SET " +
			"slug = EXCLUDED.slug, name = EXCLUDED.name, brand = EXCLUDED.brand, " +
			"description = EXCLUDED.description, top_notes = EXCLUDED.top_notes, " +
			"middle_notes = EXCLUDED.middle_notes, base_notes = EXCLUDED.base_notes, " +
			"price_2ml = EXCLUDED.price_2ml, price_5ml = EXCLUDED.price_5ml, price_10ml = EXCLUDED.price_10ml, " +
			"category = EXCLUDED.category, gender = EXCLUDED.gender, image_url = EXCLUDED.image_url, " +
			"in_stock = EXCLUDED.in_stock, updated_at = EXCLUDED.updated_at").
		RunWith(runner).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upserting product %s: %w", p.ID, err)
	}
	return nil
}

// UpsertInventory writes an inventory row.
func UpsertInventory(ctx context.Context, runner squirrel.BaseRunner, data *m_inventory.Data, now time.Time) error {
	createdAt := data.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := psql.Insert(m_inventory.TableName).
		Columns(m_inventory.Columns...).
		Values(data.ID, data.ProductID, data.BottleSizeMl, data.TotalVolume, data.UsedVolume, data.LowStockAlert, createdAt).
		Suffix("ON CONFLICT (" + m_inventory.ID + ") DO UPDATE SET " +
			"total_volume = EXCLUDED.total_volume, used_volume = EXCLUDED.used_volume, " +
			"low_stock_alert = EXCLUDED.low_stock_alert").
		RunWith(runner).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upserting inventory %s: %w", data.ID, err)
	}
	return nil
}

// UpsertReview writes a review row.
func UpsertReview(ctx context.Context, runner squirrel.BaseRunner, data *m_review.Data, now time.Time) error {
	_, err := psql.Insert(m_review.TableName).
		Columns(m_review.ID, m_review.ProductID, m_review.Rating, m_review.Body, m_review.IsPublished, m_review.CreatedAt).
		Values(data.ID, data.ProductID, data.Rating, nullable(data.Body.StringVal), data.IsPublished, now).
		Suffix("ON CONFLICT (" + m_review.ID + ") DO UPDATE SET " +
			"rating = EXCLUDED.rating, body = EXCLUDED.body, is_published = EXCLUDED.is_published").
		RunWith(runner).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upserting review %s: %w", data.ID, err)
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func moneyValue(m *domain.Money) interface{} {
	if m == nil {
		return nil
	}
	return m.Rat().FloatString(2)
}
