package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/models/m_inventory"
	"github.com/light-bringer/decant-store/internal/models/m_product"
)

// dataToDomain converts a products row to the catalog read model.
func dataToDomain(data *m_product.Data) *domain.Product {
	return &domain.Product{
		ID:          data.ID,
		Slug:        data.Slug,
		Name:        data.Name,
		Brand:       data.Brand,
		Description: data.Description.StringVal,
		TopNotes:    nonNil(data.TopNotes),
		MiddleNotes: nonNil(data.MiddleNotes),
		BaseNotes:   nonNil(data.BaseNotes),
		Price2ml:    numericToMoney(data.Price2ml),
		Price5ml:    numericToMoney(data.Price5ml),
		Price10ml:   numericToMoney(data.Price10ml),
		Category:    domain.Category(data.Category.StringVal),
		Gender:      domain.Gender(data.Gender.StringVal),
		ImageURL:    data.ImageURL.StringVal,
		InStock:     data.InStock,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
		Inventory:   []domain.Inventory{},
	}
}

// ProductToData converts a product to its products row. Used by the seeder.
func ProductToData(p *domain.Product) *m_product.Data {
	return &m_product.Data{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: nullString(p.Description),
		TopNotes:    nonNil(p.TopNotes),
		MiddleNotes: nonNil(p.MiddleNotes),
		BaseNotes:   nonNil(p.BaseNotes),
		Price2ml:    moneyToNumeric(p.Price2ml),
		Price5ml:    moneyToNumeric(p.Price5ml),
		Price10ml:   moneyToNumeric(p.Price10ml),
		Category:    nullString(string(p.Category)),
		Gender:      nullString(string(p.Gender)),
		ImageURL:    nullString(p.ImageURL),
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func inventoryToDomain(data *m_inventory.Data) domain.Inventory {
	return domain.Inventory{
		BottleSizeMl:  data.BottleSizeMl,
		TotalVolume:   data.TotalVolume,
		UsedVolume:    data.UsedVolume,
		LowStockAlert: data.LowStockAlert,
	}
}

func numericToMoney(n spanner.NullNumeric) *domain.Money {
	if !n.Valid {
		return nil
	}
	return domain.NewMoneyFromRat(&n.Numeric)
}

func moneyToNumeric(m *domain.Money) spanner.NullNumeric {
	if m == nil {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: *m.Rat(), Valid: true}
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func productIDs(products []*domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func indexByID(products []*domain.Product) map[string]*domain.Product {
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}
