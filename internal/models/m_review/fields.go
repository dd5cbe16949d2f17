package m_review

import "cloud.google.com/go/spanner"

// Field name constants for the reviews table.
const (
	TableName = "reviews"

	ID          = "id"
	ProductID   = "product_id"
	Rating      = "rating"
	Body        = "body"
	IsPublished = "is_published"
	CreatedAt   = "created_at"
)

// Data represents the database model for the reviews table.
type Data struct {
	ID          string             `spanner:"id"`
	ProductID   string             `spanner:"product_id"`
	Rating      int64              `spanner:"rating"`
	Body        spanner.NullString `spanner:"body"`
	IsPublished bool               `spanner:"is_published"`
}

// InsertMut creates a Spanner mutation for inserting or replacing a review.
func InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{ID, ProductID, Rating, Body, IsPublished, CreatedAt},
		[]interface{}{data.ID, data.ProductID, data.Rating, data.Body, data.IsPublished, spanner.CommitTimestamp},
	)
}
