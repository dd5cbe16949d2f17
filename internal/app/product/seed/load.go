package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/repo"
	"github.com/light-bringer/decant-store/internal/models/m_inventory"
	"github.com/light-bringer/decant-store/internal/models/m_product"
	"github.com/light-bringer/decant-store/internal/models/m_review"
	"github.com/light-bringer/decant-store/internal/pkg/committer"
)

// InventoryRows returns the inventory rows of p. Row i is created i seconds
// after the product so the first bottle stays first when read back.
func InventoryRows(p *domain.Product) []*m_inventory.Data {
	rows := make([]*m_inventory.Data, 0, len(p.Inventory))
	for i, inv := range p.Inventory {
		rows = append(rows, &m_inventory.Data{
			ID:            fmt.Sprintf("%s-inv-%d", p.ID, i+1),
			ProductID:     p.ID,
			BottleSizeMl:  inv.BottleSizeMl,
			TotalVolume:   inv.TotalVolume,
			UsedVolume:    inv.UsedVolume,
			LowStockAlert: inv.LowStockAlert,
			CreatedAt:     p.CreatedAt.Add(time.Duration(i) * time.Second),
		})
	}
	return rows
}

// ReviewRows returns one published review per counted review of p, plus one
// unpublished review that must not be counted.
func ReviewRows(p *domain.Product) []*m_review.Data {
	rows := make([]*m_review.Data, 0, p.Count.Reviews+1)
	for i := int64(0); i <= p.Count.Reviews; i++ {
		rows = append(rows, &m_review.Data{
			ID:          fmt.Sprintf("%s-rev-%d", p.ID, i+1),
			ProductID:   p.ID,
			Rating:      5 - i%3,
			Body:        spanner.NullString{StringVal: "Lasts all day.", Valid: true},
			IsPublished: i < p.Count.Reviews,
		})
	}
	return rows
}

// SpannerPlan collects the mutations writing products and their relations.
// Inventory rows are interleaved, so each product precedes its children.
func SpannerPlan(products []*domain.Product) *committer.CommitPlan {
	model := m_product.NewModel()
	plan := committer.NewPlan()
	for _, p := range products {
		plan.Add(model.InsertMut(repo.ProductToData(p)))
		for _, inv := range InventoryRows(p) {
			plan.Add(m_inventory.InsertMut(inv))
		}
		for _, rev := range ReviewRows(p) {
			plan.Add(m_review.InsertMut(rev))
		}
	}
	return plan
}

// LoadSpanner writes products to Spanner in a single commit.
func LoadSpanner(ctx context.Context, c *committer.Committer, products []*domain.Product) error {
	if err := c.Apply(ctx, SpannerPlan(products)); err != nil {
		return fmt.Errorf("failed to seed spanner: %w", err)
	}
	return nil
}

// LoadPostgres upserts products and their relations in one transaction.
func LoadPostgres(ctx context.Context, db *sql.DB, products []*domain.Product, now time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}

	if err := loadPostgres(ctx, tx, products, now); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}

func loadPostgres(ctx context.Context, tx *sql.Tx, products []*domain.Product, now time.Time) error {
	for _, p := range products {
		if err := repo.UpsertProduct(ctx, tx, p, now); err != nil {
			return err
		}
		for _, inv := range InventoryRows(p) {
			if err := repo.UpsertInventory(ctx, tx, inv, now); err != nil {
				return err
			}
		}
		for _, rev := range ReviewRows(p) {
			if err := repo.UpsertReview(ctx, tx, rev, now); err != nil {
				return err
			}
		}
	}
	return nil
}
