package search

import (
	"cmp"
	"strings"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/models/m_product"
	"github.com/light-bringer/decant-store/internal/pkg/query"
)

// SortField is a sortable product attribute.
type SortField string

const (
	SortName      SortField = "name"
	SortBrand     SortField = "brand"
	SortPrice     SortField = "price"
	SortCreatedAt SortField = "createdAt"
)

// Ordering is the resolved ORDER BY of a catalog query.
// Stores add the product id as a final ascending tie-breaker.
type Ordering struct {
	Field     SortField
	Direction query.Direction
}

// DefaultOrdering lists the newest products first.
var DefaultOrdering = Ordering{Field: SortCreatedAt, Direction: query.Desc}

// Column returns the products column the ordering sorts on.
// Price sorts on the 2ml tier only.
func (o Ordering) Column() string {
	switch o.Field {
	case SortName:
		return m_product.Name
	case SortBrand:
		return m_product.Brand
	case SortPrice:
		return m_product.Price2ml
	default:
		return m_product.CreatedAt
	}
}

// Compare orders a before b the way the stores do. Text compares by byte
// order, so "Zinnia" sorts before "amber". An absent 2ml price sorts as the
// lowest value.
func (o Ordering) Compare(a, b *domain.Product) int {
	var c int
	switch o.Field {
	case SortName:
		c = strings.Compare(a.Name, b.Name)
	case SortBrand:
		c = strings.Compare(a.Brand, b.Brand)
	case SortPrice:
		c = compareMoney(a.Price2ml, b.Price2ml)
	default:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if o.Direction == query.Desc {
		c = -c
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func compareMoney(a, b *domain.Money) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Cmp(b)
}

// Page is a window over the matching products.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the number of rows skipped before this page.
func (p Page) Offset() int {
	if p.Number < 1 || p.Limit < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// TotalPages returns ceil(total / limit).
func (p Page) TotalPages(total int64) int {
	if p.Limit < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// HasMore reports whether pages follow this one.
func (p Page) HasMore(total int64) bool {
	return p.Number < p.TotalPages(total)
}

// Plan resolves the ordering and page window of params.
//
// name, brand and price sort in the requested direction, as does an
// explicit createdAt. Any other sort key, including none, falls back to
// newest first whatever direction was asked for. Direction defaults to
// descending.
func Plan(params SearchParams) (Ordering, Page) {
	params = params.Normalize()
	page := Page{Number: params.Page, Limit: params.Limit}

	direction := query.Desc
	if strings.EqualFold(params.SortOrder, "asc") {
		direction = query.Asc
	}

	switch params.SortBy {
	case string(SortName):
		return Ordering{Field: SortName, Direction: direction}, page
	case string(SortBrand):
		return Ordering{Field: SortBrand, Direction: direction}, page
	case string(SortPrice):
		return Ordering{Field: SortPrice, Direction: direction}, page
	case string(SortCreatedAt), "created_at":
		return Ordering{Field: SortCreatedAt, Direction: direction}, page
	default:
		return DefaultOrdering, page
	}
}
