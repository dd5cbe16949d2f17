package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/seed"
	"github.com/light-bringer/decant-store/internal/pkg/committer"
)

// FixtureEpoch is the creation time of the oldest fixture product.
var FixtureEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// CatalogFixture returns five Dior products created one hour apart (dior-1
// oldest) and five products from other houses that exercise search
// wildcards, absent prices, stock and inventory edge cases.
func CatalogFixture() []*domain.Product {
	var products []*domain.Product
	for i := 1; i <= 5; i++ {
		gender := domain.GenderMasculine
		if i%2 == 0 {
			gender = domain.GenderFeminine
		}
		products = append(products, &domain.Product{
			ID:          fmt.Sprintf("dior-%d", i),
			Slug:        fmt.Sprintf("dior-%d", i),
			Name:        fmt.Sprintf("Dior No. %d", i),
			Brand:       "Dior",
			Description: "Bright citrus opening",
			TopNotes:    []string{"Bergamot", "Lemon"},
			MiddleNotes: []string{"Lavender"},
			BaseNotes:   []string{"Ambroxan"},
			Price2ml:    domain.MustMoney(int64(500+50*i), 100),
			Price5ml:    domain.MustMoney(int64(1200+100*i), 100),
			Price10ml:   domain.MustMoney(int64(2200+200*i), 100),
			Category:    domain.CategoryDesigner,
			Gender:      gender,
			InStock:     i != 4,
			CreatedAt:   FixtureEpoch.Add(time.Duration(i) * time.Hour),
			UpdatedAt:   FixtureEpoch.Add(time.Duration(i) * time.Hour),
			Inventory:   []domain.Inventory{{BottleSizeMl: 100, TotalVolume: 100, UsedVolume: int64(10 * i), LowStockAlert: i == 5}},
			Count:       domain.ReviewCount{Reviews: int64(i)},
		})
	}

	products = append(products,
		&domain.Product{
			ID: "chanel-1", Slug: "bleu", Name: "Bleu", Brand: "CHANEL",
			Description: "Woody aromatic with a 100% natural incense accord",
			Price2ml:    domain.MustMoney(7, 1), Price10ml: domain.MustMoney(28, 1),
			Category: domain.CategoryDesigner, Gender: domain.GenderMasculine, InStock: true,
			CreatedAt: FixtureEpoch, UpdatedAt: FixtureEpoch,
			Inventory: []domain.Inventory{},
			Count:     domain.ReviewCount{Reviews: 2},
		},
		&domain.Product{
			ID: "creed-1", Slug: "aventus", Name: "Aventus", Brand: "Creed",
			Price2ml: domain.MustMoney(12, 1), Price5ml: domain.MustMoney(27, 1), Price10ml: domain.MustMoney(50, 1),
			Category: domain.CategoryNiche, Gender: domain.GenderMasculine, InStock: false,
			CreatedAt: FixtureEpoch, UpdatedAt: FixtureEpoch,
			Inventory: []domain.Inventory{},
		},
		&domain.Product{
			ID: "tf-1", Slug: "oud-wood", Name: "Oud_Wood", Brand: "Tom Ford",
			Price5ml: domain.MustMoney(25, 1),
			Category: domain.CategoryOriental, Gender: domain.GenderUnisex, InStock: true,
			CreatedAt: FixtureEpoch, UpdatedAt: FixtureEpoch,
			Inventory: []domain.Inventory{
				{BottleSizeMl: 50, TotalVolume: 50, UsedVolume: 46, LowStockAlert: true},
				{BottleSizeMl: 100, TotalVolume: 100, UsedVolume: 0, LowStockAlert: false},
			},
			Count: domain.ReviewCount{Reviews: 4},
		},
		&domain.Product{
			ID: "adp-1", Slug: "colonia", Name: "Colonia", Brand: "Acqua di Parma",
			Description: "Citrus cologne",
			Category:    domain.CategoryFresh, InStock: true,
			CreatedAt: FixtureEpoch.Add(30 * time.Minute), UpdatedAt: FixtureEpoch.Add(30 * time.Minute),
			Inventory: []domain.Inventory{},
		},
		&domain.Product{
			ID: "mfk-1", Slug: "br540", Name: "Baccarat Rouge 540", Brand: "Maison Francis Kurkdjian",
			Price2ml: domain.MustMoney(14, 1), Price5ml: domain.MustMoney(32, 1), Price10ml: domain.MustMoney(60, 1),
			Category: domain.CategoryNiche, Gender: domain.GenderUnisex, InStock: true,
			CreatedAt: FixtureEpoch.Add(10 * time.Hour), UpdatedAt: FixtureEpoch.Add(10 * time.Hour),
			Inventory: []domain.Inventory{},
			Count:     domain.ReviewCount{Reviews: 1},
		},
	)
	return products
}

// SeedSpanner writes products and their relations to Spanner.
func SeedSpanner(t *testing.T, client *spanner.Client, products []*domain.Product) {
	t.Helper()
	require.NoError(t, seed.LoadSpanner(context.Background(), committer.NewCommitter(client), products))
}

// SeedPostgres writes products and their relations to PostgreSQL.
func SeedPostgres(t *testing.T, db *sql.DB, products []*domain.Product) {
	t.Helper()
	require.NoError(t, seed.LoadPostgres(context.Background(), db, products, FixtureEpoch))
}
