package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting or replacing a product.
// Zero timestamps are replaced by the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	var createdAt, updatedAt interface{} = data.CreatedAt, data.UpdatedAt
	if data.CreatedAt.IsZero() {
		createdAt = spanner.CommitTimestamp
	}
	if data.UpdatedAt.IsZero() {
		updatedAt = spanner.CommitTimestamp
	}

	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{
			data.ID,
			data.Slug,
			data.Name,
			data.Brand,
			data.Description,
			data.TopNotes,
			data.MiddleNotes,
			data.BaseNotes,
			data.Price2ml,
			data.Price5ml,
			data.Price10ml,
			data.Category,
			data.Gender,
			data.ImageURL,
			data.InStock,
			createdAt,
			updatedAt,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a product (hard delete).
func (m *Model) DeleteMut(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}
