package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() *Product {
	return &Product{
		ID:        "p-1",
		Slug:      "creed-aventus",
		Name:      "Aventus",
		Brand:     "Creed",
		Price2ml:  MustMoney(9, 1),
		Price5ml:  MustMoney(1950, 100),
		Price10ml: MustMoney(35, 1),
	}
}

func TestNewCart_TotalsAndMerge(t *testing.T) {
	p := testProduct()
	small, err := NewCartItem(p, Size2ml, 2)
	require.NoError(t, err)
	medium, err := NewCartItem(p, Size5ml, 1)
	require.NoError(t, err)
	again, err := NewCartItem(p, Size2ml, 1)
	require.NoError(t, err)

	cart, err := NewCart([]CartItem{small, medium, again})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 4, cart.ItemCount)
	assert.Equal(t, "46.50", cart.Total.String())
}

func TestNewCart_KeepsLinesWithDifferentUnitPrices(t *testing.T) {
	p := testProduct()
	before, err := NewCartItem(p, Size2ml, 2)
	require.NoError(t, err)

	p.Price2ml = MustMoney(11, 1)
	after, err := NewCartItem(p, Size2ml, 1)
	require.NoError(t, err)

	cart, err := NewCart([]CartItem{before, after})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.ItemCount)
	assert.Equal(t, "29.00", cart.Total.String())

	sum := MustMoney(0, 1)
	for _, item := range cart.Items {
		sum = sum.Add(item.Subtotal())
	}
	assert.True(t, sum.Equals(cart.Total))
}

func TestNewCartItem_Errors(t *testing.T) {
	p := testProduct()
	p.Price10ml = nil

	_, err := NewCartItem(p, Size10ml, 1)
	assert.ErrorIs(t, err, ErrSizeUnavailable)

	_, err = NewCartItem(p, Size2ml, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNewCart_RejectsInvalidLines(t *testing.T) {
	_, err := NewCart([]CartItem{{ProductID: "x", SizeMl: 3, Quantity: 1, UnitPrice: MustMoney(1, 1)}})
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewCart([]CartItem{{ProductID: "x", SizeMl: 2, Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCheckoutData_Validate(t *testing.T) {
	item, err := NewCartItem(testProduct(), Size10ml, 1)
	require.NoError(t, err)

	valid := CheckoutData{
		CustomerEmail:   "ana@example.ro",
		ShippingAddress: Address{Line1: "Str. Lipscani 1", City: "București", Country: "RO"},
		DeliveryType:    DeliverySameDay,
		PaymentMethod:   PaymentCashOnDelivery,
		Items:           []CartItem{item},
	}

	cart, err := valid.Validate()
	require.NoError(t, err)
	assert.Equal(t, "35.00", cart.Total.String())

	tests := []struct {
		name   string
		mutate func(c *CheckoutData)
		want   error
	}{
		{"bad email", func(c *CheckoutData) { c.CustomerEmail = "not-an-email" }, ErrInvalidEmail},
		{"missing city", func(c *CheckoutData) { c.ShippingAddress.City = " " }, ErrMissingAddress},
		{"bad delivery", func(c *CheckoutData) { c.DeliveryType = "drone" }, ErrInvalidDeliveryType},
		{"bad payment", func(c *CheckoutData) { c.PaymentMethod = "crypto" }, ErrInvalidPaymentMethod},
		{"no items", func(c *CheckoutData) { c.Items = nil }, ErrEmptyCart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			_, err := c.Validate()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
