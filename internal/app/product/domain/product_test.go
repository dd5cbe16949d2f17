package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryAndGender(t *testing.T) {
	c, err := ParseCategory("niche")
	require.NoError(t, err)
	assert.Equal(t, CategoryNiche, c)

	_, err = ParseCategory("Niche")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	g, err := ParseGender("unisex")
	require.NoError(t, err)
	assert.Equal(t, GenderUnisex, g)

	_, err = ParseGender("men")
	assert.ErrorIs(t, err, ErrInvalidGender)
}

func TestProduct_PriceFor(t *testing.T) {
	p := &Product{Price2ml: MustMoney(8, 1), Price10ml: MustMoney(30, 1)}

	price, err := p.PriceFor(Size2ml)
	require.NoError(t, err)
	assert.Equal(t, "8.00", price.String())

	_, err = p.PriceFor(Size5ml)
	assert.ErrorIs(t, err, ErrSizeUnavailable)

	_, err = p.PriceFor(7)
	assert.ErrorIs(t, err, ErrInvalidSize)

	assert.Len(t, p.Prices(), 2)
}

func TestProduct_LowStock(t *testing.T) {
	p := &Product{}
	low, tracked := p.LowStock()
	assert.False(t, low)
	assert.False(t, tracked)

	p.Inventory = []Inventory{{LowStockAlert: true}, {LowStockAlert: false}}
	low, tracked = p.LowStock()
	assert.True(t, low, "first bottle decides")
	assert.True(t, tracked)
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{Name: "Aventus", Brand: "Creed", Category: CategoryNiche, Gender: GenderMasculine, Price2ml: MustMoney(9, 1)}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *Product)
		want   error
	}{
		{"empty name", func(p *Product) { p.Name = "" }, ErrEmptyName},
		{"empty brand", func(p *Product) { p.Brand = "" }, ErrEmptyBrand},
		{"negative price", func(p *Product) { p.Price5ml = MustMoney(-1, 1) }, ErrInvalidPrice},
		{"unknown category", func(p *Product) { p.Category = "chypre" }, ErrInvalidCategory},
		{"unknown gender", func(p *Product) { p.Gender = "kids" }, ErrInvalidGender},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), tt.want)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "12,50 €", FormatPrice(MustMoney(1250, 100), CurrencyEUR))
	assert.Equal(t, "45,00 RON", FormatPrice(MustMoney(45, 1), CurrencyRON))
	assert.Equal(t, "7,00 €", FormatPrice(MustMoney(7, 1), "USD"))
	assert.Equal(t, "N/A", FormatPrice(nil, CurrencyEUR))
}
