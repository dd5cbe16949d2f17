package list_products

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/repo"
	"github.com/light-bringer/decant-store/internal/app/product/search"
)

func catalog() []*domain.Product {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var products []*domain.Product
	for i := 1; i <= 5; i++ {
		products = append(products, &domain.Product{
			ID:        fmt.Sprintf("dior-%d", i),
			Slug:      fmt.Sprintf("dior-%d", i),
			Name:      fmt.Sprintf("Dior %d", i),
			Brand:     "Dior",
			InStock:   true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	for i := 1; i <= 3; i++ {
		products = append(products, &domain.Product{
			ID:        fmt.Sprintf("other-%d", i),
			Slug:      fmt.Sprintf("other-%d", i),
			Name:      fmt.Sprintf("Other %d", i),
			Brand:     "Guerlain",
			InStock:   i != 3,
			CreatedAt: base.Add(time.Duration(10+i) * time.Minute),
		})
	}
	return products
}

func execute(t *testing.T, q *Query, rawQuery string) (*Result, error) {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	return q.Execute(context.Background(), &Request{Params: search.ParseSearchParams(values)})
}

func TestExecute_BrandPage(t *testing.T) {
	q := NewQuery(repo.NewMemoryReadModel(catalog()...), time.Second)

	result, err := execute(t, q, "brand=Dior&page=2&limit=2")
	require.NoError(t, err)

	require.Len(t, result.Products, 2)
	assert.Equal(t, "dior-3", result.Products[0].ID)
	assert.Equal(t, "dior-2", result.Products[1].ID)
	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasMore)
	assert.Equal(t, search.Page{Number: 2, Limit: 2}, result.Page)
}

func TestExecute_LastPageHasNoMore(t *testing.T) {
	q := NewQuery(repo.NewMemoryReadModel(catalog()...), 0)

	result, err := execute(t, q, "brand=dior&page=3&limit=2")
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "dior-1", result.Products[0].ID)
	assert.False(t, result.HasMore)
}

func TestExecute_NoMatchesIsEmptyNotNil(t *testing.T) {
	q := NewQuery(repo.NewMemoryReadModel(catalog()...), 0)

	result, err := execute(t, q, "search=nothing-like-this")
	require.NoError(t, err)
	assert.NotNil(t, result.Products)
	assert.Empty(t, result.Products)
	assert.Zero(t, result.Total)
	assert.Zero(t, result.TotalPages)
	assert.False(t, result.HasMore)
}

func TestExecute_InStockAndSort(t *testing.T) {
	q := NewQuery(repo.NewMemoryReadModel(catalog()...), 0)

	result, err := execute(t, q, "brand=Guerlain&inStock=true&sortBy=name&sortOrder=asc")
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "Other 1", result.Products[0].Name)
	assert.Equal(t, "Other 2", result.Products[1].Name)
}

func TestExecute_StoreFailure(t *testing.T) {
	rm := repo.NewMemoryReadModel(catalog()...)
	rm.Fail(errors.New("connection reset"))
	q := NewQuery(rm, 0)

	result, err := execute(t, q, "")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

// blockingReadModel lists only once its context is cancelled and fails counting.
type blockingReadModel struct {
	*repo.MemoryReadModel
	countErr error
}

func (b *blockingReadModel) ListProducts(ctx context.Context, _ search.Filter, _ search.Ordering, _ search.Page) ([]*domain.Product, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingReadModel) CountProducts(context.Context, search.Filter) (int64, error) {
	return 0, b.countErr
}

func TestExecute_FailureCancelsSiblingQuery(t *testing.T) {
	countErr := errors.New("count timed out")
	q := NewQuery(&blockingReadModel{MemoryReadModel: repo.NewMemoryReadModel(), countErr: countErr}, 0)

	done := make(chan error, 1)
	go func() {
		_, err := q.Execute(context.Background(), &Request{Params: search.ParseSearchParams(url.Values{})})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, countErr)
	case <-time.After(5 * time.Second):
		t.Fatal("list query was not cancelled after the count failed")
	}
}

func TestExecute_Timeout(t *testing.T) {
	q := NewQuery(&blockingReadModel{MemoryReadModel: repo.NewMemoryReadModel(), countErr: nil}, 20*time.Millisecond)

	_, err := execute(t, q, "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type panickingReadModel struct {
	*repo.MemoryReadModel
}

func (panickingReadModel) ListProducts(context.Context, search.Filter, search.Ordering, search.Page) ([]*domain.Product, error) {
	panic("slice bounds out of range")
}

func TestExecute_PanicBecomesError(t *testing.T) {
	q := NewQuery(panickingReadModel{repo.NewMemoryReadModel(catalog()...)}, time.Second)

	var (
		result *Result
		err    error
	)
	require.NotPanics(t, func() {
		result, err = execute(t, q, "")
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "slice bounds out of range")
}

func TestExecute_HugePageIsEmpty(t *testing.T) {
	q := NewQuery(repo.NewMemoryReadModel(catalog()...), time.Second)

	result, err := execute(t, q, "page=9223372036854775807")
	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.NotNil(t, result.Products)
	assert.Equal(t, int64(8), result.Total)
	assert.Equal(t, search.MaxPage, result.Page.Number)
	assert.False(t, result.HasMore)
}
