package search

import (
	"strings"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
)

// Filter is the compiled predicate over the product collection.
// A product matches when every present constraint holds:
//
//   - Search: case-insensitive substring of name, brand or description
//   - Brand: case-insensitive equality
//   - Category, Gender: exact equality
//   - InStockOnly: in-stock products only
//   - PriceMin: at least one offered tier >= PriceMin
//   - PriceMax: at least one offered tier <= PriceMax
//
// The two price bounds are checked independently and both must hold.
type Filter struct {
	Search      string
	Brand       string
	Category    domain.Category
	Gender      domain.Gender
	InStockOnly bool
	PriceMin    *float64
	PriceMax    *float64
}

// Compile builds the filter for params.
func Compile(params SearchParams) Filter {
	return Filter{
		Search:      params.Search,
		Brand:       params.Brand,
		Category:    params.Category,
		Gender:      params.Gender,
		InStockOnly: params.InStock != nil && *params.InStock,
		PriceMin:    params.PriceMin,
		PriceMax:    params.PriceMax,
	}
}

// IsEmpty reports whether the filter has no constraint at all.
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.Brand == "" && f.Category == "" && f.Gender == "" &&
		!f.InStockOnly && f.PriceMin == nil && f.PriceMax == nil
}

// Matches evaluates the filter against a single product.
// Store implementations must agree with it.
func (f Filter) Matches(p *domain.Product) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Brand), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Gender != "" && p.Gender != f.Gender {
		return false
	}
	if f.InStockOnly && !p.InStock {
		return false
	}
	if f.PriceMin != nil && !anyPrice(p, func(m *domain.Money) bool { return m.CmpFloat(*f.PriceMin) >= 0 }) {
		return false
	}
	if f.PriceMax != nil && !anyPrice(p, func(m *domain.Money) bool { return m.CmpFloat(*f.PriceMax) <= 0 }) {
		return false
	}
	return true
}

func anyPrice(p *domain.Product, ok func(*domain.Money) bool) bool {
	for _, price := range p.Prices() {
		if ok(price) {
			return true
		}
	}
	return false
}
