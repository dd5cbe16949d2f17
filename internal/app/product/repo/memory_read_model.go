package repo

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/light-bringer/decant-store/internal/app/product/contracts"
	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/search"
)

// MemoryReadModel serves the catalog from a slice held in memory.
// It backs local development without a database and the handler tests.
type MemoryReadModel struct {
	mu       sync.RWMutex
	products []*domain.Product
	err      error
}

var _ contracts.ReadModel = (*MemoryReadModel)(nil)

// NewMemoryReadModel creates a MemoryReadModel holding products.
func NewMemoryReadModel(products ...*domain.Product) *MemoryReadModel {
	m := &MemoryReadModel{}
	m.Add(products...)
	return m
}

// Add stores products, replacing any with the same id.
func (m *MemoryReadModel) Add(products ...*domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range products {
		idx := slices.IndexFunc(m.products, func(existing *domain.Product) bool { return existing.ID == p.ID })
		if idx >= 0 {
			m.products[idx] = p
			continue
		}
		m.products = append(m.products, p)
	}
}

// Fail makes every subsequent call return err. A nil err restores service.
func (m *MemoryReadModel) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// ListProducts returns one page of matching products.
func (m *MemoryReadModel) ListProducts(ctx context.Context, filter search.Filter, ordering search.Ordering, page search.Page) ([]*domain.Product, error) {
	matched, err := m.match(ctx, filter)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(matched, ordering.Compare)

	start := min(max(page.Offset(), 0), len(matched))
	end := min(start+max(page.Limit, 0), len(matched))

	result := make([]*domain.Product, 0, end-start)
	for _, p := range matched[start:end] {
		result = append(result, copyProduct(p))
	}
	return result, nil
}

// CountProducts returns the number of matching products.
func (m *MemoryReadModel) CountProducts(ctx context.Context, filter search.Filter) (int64, error) {
	matched, err := m.match(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

// GetProductBySlug returns the product with the given slug.
func (m *MemoryReadModel) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	all, err := m.match(ctx, search.Filter{})
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.Slug == slug {
			return copyProduct(p), nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// ListBrands returns the distinct brands of matching products, ascending.
func (m *MemoryReadModel) ListBrands(ctx context.Context, filter search.Filter) ([]string, error) {
	matched, err := m.match(ctx, filter)
	if err != nil {
		return nil, err
	}

	brands := make([]string, 0, len(matched))
	for _, p := range matched {
		brands = append(brands, p.Brand)
	}
	slices.SortFunc(brands, strings.Compare)
	return slices.Compact(brands), nil
}

// Ping reports the injected failure, if any.
func (m *MemoryReadModel) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.err
}

func (m *MemoryReadModel) match(ctx context.Context, filter search.Filter) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}

	matched := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func copyProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.TopNotes = slices.Clone(nonNil(p.TopNotes))
	cp.MiddleNotes = slices.Clone(nonNil(p.MiddleNotes))
	cp.BaseNotes = slices.Clone(nonNil(p.BaseNotes))
	cp.Inventory = slices.Clone(p.Inventory)
	if cp.Inventory == nil {
		cp.Inventory = []domain.Inventory{}
	}
	return &cp
}
