package domain

import (
	"fmt"
	"time"
)

// Category classifies a fragrance house or style.
type Category string

const (
	CategoryDesigner Category = "designer"
	CategoryNiche    Category = "niche"
	CategoryFresh    Category = "fresh"
	CategoryOriental Category = "oriental"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryDesigner, CategoryNiche, CategoryFresh, CategoryOriental}

// ParseCategory returns the category for s, or ErrInvalidCategory.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Gender is the audience a fragrance is marketed to.
type Gender string

const (
	GenderMasculine Gender = "masculine"
	GenderFeminine  Gender = "feminine"
	GenderUnisex    Gender = "unisex"
)

// Genders lists every known gender in display order.
var Genders = []Gender{GenderMasculine, GenderFeminine, GenderUnisex}

// ParseGender returns the gender for s, or ErrInvalidGender.
func ParseGender(s string) (Gender, error) {
	for _, g := range Genders {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
}

// Sample sizes in millilitres.
const (
	Size2ml  = 2
	Size5ml  = 5
	Size10ml = 10
)

// Inventory tracks one physical bottle the decants are poured from.
type Inventory struct {
	BottleSizeMl  int64 `json:"bottleSizeMl"`
	TotalVolume   int64 `json:"totalVolume"`
	UsedVolume    int64 `json:"usedVolume"`
	LowStockAlert bool  `json:"lowStockAlert"`
}

// ReviewCount mirrors the relation count block of the product payload.
type ReviewCount struct {
	Reviews int64 `json:"reviews"`
}

// Product is the catalog read model of a fragrance.
// Price tiers are nil when the size is not offered.
type Product struct {
	ID          string      `json:"id"`
	Slug        string      `json:"slug"`
	Name        string      `json:"name"`
	Brand       string      `json:"brand"`
	Description string      `json:"description,omitempty"`
	TopNotes    []string    `json:"topNotes"`
	MiddleNotes []string    `json:"middleNotes"`
	BaseNotes   []string    `json:"baseNotes"`
	Price2ml    *Money      `json:"price2ml"`
	Price5ml    *Money      `json:"price5ml"`
	Price10ml   *Money      `json:"price10ml"`
	Category    Category    `json:"category,omitempty"`
	Gender      Gender      `json:"gender,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	InStock     bool        `json:"inStock"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Inventory   []Inventory `json:"inventory"`
	Count       ReviewCount `json:"_count"`
}

// Prices returns the offered price tiers in size order, skipping absent ones.
func (p *Product) Prices() []*Money {
	prices := make([]*Money, 0, 3)
	for _, price := range []*Money{p.Price2ml, p.Price5ml, p.Price10ml} {
		if price != nil {
			prices = append(prices, price)
		}
	}
	return prices
}

// PriceFor returns the price of the given sample size.
func (p *Product) PriceFor(sizeMl int) (*Money, error) {
	var price *Money
	switch sizeMl {
	case Size2ml:
		price = p.Price2ml
	case Size5ml:
		price = p.Price5ml
	case Size10ml:
		price = p.Price10ml
	default:
		return nil, ErrInvalidSize
	}
	if price == nil {
		return nil, ErrSizeUnavailable
	}
	return price, nil
}

// LowStock reports the low-stock alert of the first tracked bottle.
// The second result is false when no bottle is tracked.
func (p *Product) LowStock() (low bool, tracked bool) {
	if len(p.Inventory) == 0 {
		return false, false
	}
	return p.Inventory[0].LowStockAlert, true
}

// Validate checks the record invariants.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Brand == "" {
		return ErrEmptyBrand
	}
	for _, price := range p.Prices() {
		if price.IsNegative() {
			return ErrInvalidPrice
		}
	}
	if p.Category != "" {
		if _, err := ParseCategory(string(p.Category)); err != nil {
			return err
		}
	}
	if p.Gender != "" {
		if _, err := ParseGender(string(p.Gender)); err != nil {
			return err
		}
	}
	return nil
}
