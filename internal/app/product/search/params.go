// Package search turns storefront query strings into a store-agnostic
// product filter, an ordering and a page window.
package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
)

// Paging bounds.
const (
	DefaultPage   = 1
	DefaultLimit  = 12
	MaxLimit      = 50
	FeaturedLimit = 6

	// MaxPage keeps (MaxPage-1)*MaxLimit inside int64 and store OFFSET range.
	MaxPage = math.MaxInt32
)

// Query string keys accepted by the catalog endpoints.
const (
	KeyPage      = "page"
	KeyLimit     = "limit"
	KeySearch    = "search"
	KeyBrand     = "brand"
	KeyCategory  = "category"
	KeyGender    = "gender"
	KeyPriceMin  = "priceMin"
	KeyPriceMax  = "priceMax"
	KeyInStock   = "inStock"
	KeySortBy    = "sortBy"
	KeySortOrder = "sortOrder"
)

// SearchParams is the per-request catalog query.
// Absent optional constraints are the zero value or nil.
type SearchParams struct {
	Page      int
	Limit     int
	Search    string
	Brand     string
	Category  domain.Category
	Gender    domain.Gender
	PriceMin  *float64
	PriceMax  *float64
	InStock   *bool
	SortBy    string
	SortOrder string
}

// ParseSearchParams reads a query string. Malformed numbers, unknown enum
// values and negative prices are treated as absent; page and limit fall back
// to their defaults and are clamped to their bounds.
func ParseSearchParams(values url.Values) SearchParams {
	params := SearchParams{
		Page:      parsePositiveInt(values.Get(KeyPage), DefaultPage),
		Limit:     parsePositiveInt(values.Get(KeyLimit), DefaultLimit),
		Search:    strings.TrimSpace(values.Get(KeySearch)),
		Brand:     strings.TrimSpace(values.Get(KeyBrand)),
		PriceMin:  parsePrice(values.Get(KeyPriceMin)),
		PriceMax:  parsePrice(values.Get(KeyPriceMax)),
		SortBy:    values.Get(KeySortBy),
		SortOrder: values.Get(KeySortOrder),
	}

	if c, err := domain.ParseCategory(values.Get(KeyCategory)); err == nil {
		params.Category = c
	}
	if g, err := domain.ParseGender(values.Get(KeyGender)); err == nil {
		params.Gender = g
	}
	if values.Get(KeyInStock) == "true" {
		inStock := true
		params.InStock = &inStock
	}

	return params.Normalize()
}

// Normalize applies defaults and clamps page to [1, MaxPage] and limit to
// [1, MaxLimit].
func (p SearchParams) Normalize() SearchParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// ForListingPage adapts params to the HTML listing: fixed page size and
// in-stock products only.
func (p SearchParams) ForListingPage() SearchParams {
	inStock := true
	p.InStock = &inStock
	p.Limit = DefaultLimit
	return p.Normalize()
}

// Featured returns the params of the home page selection: the newest
// in-stock products.
func Featured() SearchParams {
	inStock := true
	return SearchParams{Page: 1, Limit: FeaturedLimit, InStock: &inStock}
}

// Values encodes params back into a query string, omitting absent and
// default values. Used to build pagination links.
func (p SearchParams) Values() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	if p.Page > DefaultPage {
		values.Set(KeyPage, strconv.Itoa(p.Page))
	}
	if p.Limit != DefaultLimit && p.Limit > 0 {
		values.Set(KeyLimit, strconv.Itoa(p.Limit))
	}
	set(KeySearch, p.Search)
	set(KeyBrand, p.Brand)
	set(KeyCategory, string(p.Category))
	set(KeyGender, string(p.Gender))
	if p.PriceMin != nil {
		values.Set(KeyPriceMin, strconv.FormatFloat(*p.PriceMin, 'f', -1, 64))
	}
	if p.PriceMax != nil {
		values.Set(KeyPriceMax, strconv.FormatFloat(*p.PriceMax, 'f', -1, 64))
	}
	if p.InStock != nil && *p.InStock {
		values.Set(KeyInStock, "true")
	}
	set(KeySortBy, p.SortBy)
	set(KeySortOrder, p.SortOrder)
	return values
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	return &f
}
