package domain

import (
	"net/mail"
	"strings"
)

// CartItem is one line of a shopping cart.
type CartItem struct {
	ProductID    string `json:"productId"`
	SizeMl       int    `json:"sizeMl"`
	Quantity     int    `json:"quantity"`
	UnitPrice    *Money `json:"unitPrice"`
	ProductName  string `json:"productName"`
	ProductBrand string `json:"productBrand"`
	ProductSlug  string `json:"productSlug"`
}

// NewCartItem prices a cart line from the product's tier for sizeMl.
func NewCartItem(p *Product, sizeMl, quantity int) (CartItem, error) {
	if quantity <= 0 {
		return CartItem{}, ErrInvalidQuantity
	}
	price, err := p.PriceFor(sizeMl)
	if err != nil {
		return CartItem{}, err
	}
	return CartItem{
		ProductID:    p.ID,
		SizeMl:       sizeMl,
		Quantity:     quantity,
		UnitPrice:    price.Copy(),
		ProductName:  p.Name,
		ProductBrand: p.Brand,
		ProductSlug:  p.Slug,
	}, nil
}

// Subtotal returns unit price times quantity.
func (i CartItem) Subtotal() *Money {
	return i.UnitPrice.MultiplyByInt(int64(i.Quantity))
}

func (i CartItem) validate() error {
	switch i.SizeMl {
	case Size2ml, Size5ml, Size10ml:
	default:
		return ErrInvalidSize
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.UnitPrice == nil || i.UnitPrice.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// Cart is a set of cart lines with derived totals.
type Cart struct {
	Items     []CartItem `json:"items"`
	Total     *Money     `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// NewCart validates items and computes the total and item count.
// Lines for the same product, size and unit price are merged.
func NewCart(items []CartItem) (*Cart, error) {
	cart := &Cart{Items: make([]CartItem, 0, len(items)), Total: MustMoney(0, 1)}
	for _, item := range items {
		if err := item.validate(); err != nil {
			return nil, err
		}
		cart.add(item)
	}
	return cart, nil
}

func (c *Cart) add(item CartItem) {
	c.Total = c.Total.Add(item.Subtotal())
	c.ItemCount += item.Quantity
	for i := range c.Items {
		existing := c.Items[i]
		if existing.ProductID == item.ProductID && existing.SizeMl == item.SizeMl && existing.UnitPrice.Equals(item.UnitPrice) {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// DeliveryType selects the shipping service.
type DeliveryType string

const (
	DeliveryStandard DeliveryType = "standard"
	DeliverySameDay  DeliveryType = "same_day"
)

// PaymentMethod selects how the order is paid.
type PaymentMethod string

const (
	PaymentStripe         PaymentMethod = "stripe"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Address is a postal shipping address.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country"`
}

// CheckoutData is the payload submitted when placing an order.
type CheckoutData struct {
	CustomerEmail   string        `json:"customerEmail"`
	CustomerName    string        `json:"customerName,omitempty"`
	CustomerPhone   string        `json:"customerPhone,omitempty"`
	ShippingAddress Address       `json:"shippingAddress"`
	DeliveryType    DeliveryType  `json:"deliveryType"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	Items           []CartItem    `json:"items"`
	Notes           string        `json:"notes,omitempty"`
}

// Validate checks the checkout payload and returns its cart.
func (c *CheckoutData) Validate() (*Cart, error) {
	if _, err := mail.ParseAddress(c.CustomerEmail); err != nil {
		return nil, ErrInvalidEmail
	}
	a := c.ShippingAddress
	if strings.TrimSpace(a.Line1) == "" || strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.Country) == "" {
		return nil, ErrMissingAddress
	}
	switch c.DeliveryType {
	case DeliveryStandard, DeliverySameDay:
	default:
		return nil, ErrInvalidDeliveryType
	}
	switch c.PaymentMethod {
	case PaymentStripe, PaymentCashOnDelivery:
	default:
		return nil, ErrInvalidPaymentMethod
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}
	return NewCart(c.Items)
}
