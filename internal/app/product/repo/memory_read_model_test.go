package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/search"
	"github.com/light-bringer/decant-store/internal/pkg/query"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// diorFixture holds five Dior products created one hour apart (dior-1 oldest)
// and three products from other houses.
func diorFixture() []*domain.Product {
	var products []*domain.Product
	for i := 1; i <= 5; i++ {
		products = append(products, &domain.Product{
			ID:        fmt.Sprintf("dior-%d", i),
			Slug:      fmt.Sprintf("dior-%d", i),
			Name:      fmt.Sprintf("Dior %d", i),
			Brand:     "Dior",
			InStock:   true,
			Price2ml:  domain.MustMoney(int64(5+i), 1),
			CreatedAt: baseTime.Add(time.Duration(i) * time.Hour),
		})
	}
	products = append(products,
		&domain.Product{ID: "chanel-1", Slug: "bleu", Name: "Bleu", Brand: "Chanel", InStock: true, CreatedAt: baseTime},
		&domain.Product{ID: "creed-1", Slug: "aventus", Name: "Aventus", Brand: "Creed", InStock: false, CreatedAt: baseTime},
		&domain.Product{ID: "tf-1", Slug: "oud-wood", Name: "Oud Wood", Brand: "Tom Ford", InStock: true, CreatedAt: baseTime,
			Inventory: []domain.Inventory{{BottleSizeMl: 100, TotalVolume: 100, UsedVolume: 95, LowStockAlert: true}}},
	)
	return products
}

func ids(products []*domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestMemoryReadModel_BrandSecondPage(t *testing.T) {
	ctx := context.Background()
	rm := NewMemoryReadModel(diorFixture()...)

	params := search.SearchParams{Brand: "Dior", Page: 2, Limit: 2}
	filter := search.Compile(params)
	ordering, page := search.Plan(params)

	products, err := rm.ListProducts(ctx, filter, ordering, page)
	require.NoError(t, err)
	assert.Equal(t, []string{"dior-3", "dior-2"}, ids(products))

	total, err := rm.CountProducts(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.True(t, page.HasMore(total))
}

func TestMemoryReadModel_PageBeyondEndIsEmpty(t *testing.T) {
	rm := NewMemoryReadModel(diorFixture()...)

	products, err := rm.ListProducts(context.Background(), search.Filter{}, search.DefaultOrdering, search.Page{Number: 9, Limit: 12})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestMemoryReadModel_InvalidPageWindowDoesNotPanic(t *testing.T) {
	rm := NewMemoryReadModel(diorFixture()...)

	products, err := rm.ListProducts(context.Background(), search.Filter{}, search.DefaultOrdering, search.Page{Number: -4, Limit: 12})
	require.NoError(t, err)
	assert.Len(t, products, 8)

	products, err = rm.ListProducts(context.Background(), search.Filter{}, search.DefaultOrdering, search.Page{Number: 2, Limit: -12})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMemoryReadModel_OrderingTieBreaksOnID(t *testing.T) {
	rm := NewMemoryReadModel(diorFixture()...)

	products, err := rm.ListProducts(context.Background(), search.Filter{}, search.Ordering{Field: search.SortCreatedAt, Direction: query.Asc}, search.Page{Number: 1, Limit: 50})
	require.NoError(t, err)

	// chanel-1, creed-1 and tf-1 share a timestamp and order by id.
	assert.Equal(t, []string{"chanel-1", "creed-1", "tf-1", "dior-1", "dior-2", "dior-3", "dior-4", "dior-5"}, ids(products))
}

func TestMemoryReadModel_ReturnsCopies(t *testing.T) {
	rm := NewMemoryReadModel(diorFixture()...)
	ctx := context.Background()

	p, err := rm.GetProductBySlug(ctx, "oud-wood")
	require.NoError(t, err)
	p.Name = "changed"
	p.Inventory[0].UsedVolume = 0

	again, err := rm.GetProductBySlug(ctx, "oud-wood")
	require.NoError(t, err)
	assert.Equal(t, "Oud Wood", again.Name)
	assert.Equal(t, int64(95), again.Inventory[0].UsedVolume)
	assert.NotNil(t, again.TopNotes)
}

func TestMemoryReadModel_GetProductBySlugNotFound(t *testing.T) {
	rm := NewMemoryReadModel(diorFixture()...)

	_, err := rm.GetProductBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryReadModel_ListBrands(t *testing.T) {
	rm := NewMemoryReadModel(diorFixture()...)
	ctx := context.Background()

	brands, err := rm.ListBrands(ctx, search.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chanel", "Creed", "Dior", "Tom Ford"}, brands)

	brands, err = rm.ListBrands(ctx, search.Filter{InStockOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chanel", "Dior", "Tom Ford"}, brands)
}

func TestMemoryReadModel_AddReplacesByID(t *testing.T) {
	rm := NewMemoryReadModel(diorFixture()...)
	rm.Add(&domain.Product{ID: "creed-1", Slug: "aventus", Name: "Aventus", Brand: "Creed", InStock: true})

	total, err := rm.CountProducts(context.Background(), search.Filter{InStockOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
}

func TestMemoryReadModel_Fail(t *testing.T) {
	rm := NewMemoryReadModel(diorFixture()...)
	ctx := context.Background()
	boom := errors.New("connection refused")

	rm.Fail(boom)
	_, err := rm.ListProducts(ctx, search.Filter{}, search.DefaultOrdering, search.Page{Number: 1, Limit: 12})
	assert.ErrorIs(t, err, boom)
	_, err = rm.CountProducts(ctx, search.Filter{})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, rm.Ping(ctx), boom)

	rm.Fail(nil)
	assert.NoError(t, rm.Ping(ctx))
}

func TestMemoryReadModel_CancelledContext(t *testing.T) {
	rm := NewMemoryReadModel(diorFixture()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rm.CountProducts(ctx, search.Filter{})
	assert.ErrorIs(t, err, context.Canceled)
}
