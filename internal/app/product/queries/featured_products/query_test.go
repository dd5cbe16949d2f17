package featured_products

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/repo"
)

func TestExecute_NewestInStockFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rm := repo.NewMemoryReadModel()
	for i := 0; i < 9; i++ {
		rm.Add(&domain.Product{
			ID:        fmt.Sprintf("p%d", i),
			Name:      fmt.Sprintf("Product %d", i),
			Brand:     "House",
			InStock:   i%4 != 0,
			CreatedAt: base.AddDate(0, 0, i),
		})
	}

	products, err := NewQuery(rm, time.Second).Execute(context.Background())
	require.NoError(t, err)

	var got []string
	for _, p := range products {
		got = append(got, p.ID)
	}
	// Every fourth product is out of stock.
	assert.Equal(t, []string{"p7", "p6", "p5", "p3", "p2", "p1"}, got)
}

func TestExecute_Failure(t *testing.T) {
	rm := repo.NewMemoryReadModel()
	rm.Fail(errors.New("down"))

	_, err := NewQuery(rm, 0).Execute(context.Background())
	assert.EqualError(t, err, "down")
}
