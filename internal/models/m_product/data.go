package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ID          string              `spanner:"id"`
	Slug        string              `spanner:"slug"`
	Name        string              `spanner:"name"`
	Brand       string              `spanner:"brand"`
	Description spanner.NullString  `spanner:"description"`
	TopNotes    []string            `spanner:"top_notes"`
	MiddleNotes []string            `spanner:"middle_notes"`
	BaseNotes   []string            `spanner:"base_notes"`
	Price2ml    spanner.NullNumeric `spanner:"price_2ml"`
	Price5ml    spanner.NullNumeric `spanner:"price_5ml"`
	Price10ml   spanner.NullNumeric `spanner:"price_10ml"`
	Category    spanner.NullString  `spanner:"category"`
	Gender      spanner.NullString  `spanner:"gender"`
	ImageURL    spanner.NullString  `spanner:"image_url"`
	InStock     bool                `spanner:"in_stock"`
	CreatedAt   time.Time           `spanner:"created_at"`
	UpdatedAt   time.Time           `spanner:"updated_at"`
}
