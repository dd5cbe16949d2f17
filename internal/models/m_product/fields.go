package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ID          = "id"
	Slug        = "slug"
	Name        = "name"
	Brand       = "brand"
	Description = "description"
	TopNotes    = "top_notes"
	MiddleNotes = "middle_notes"
	BaseNotes   = "base_notes"
	Price2ml    = "price_2ml"
	Price5ml    = "price_5ml"
	Price10ml   = "price_10ml"
	Category    = "category"
	Gender      = "gender"
	ImageURL    = "image_url"
	InStock     = "in_stock"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

// Columns lists every column in the order read models select them.
var Columns = []string{
	ID,
	Slug,
	Name,
	Brand,
	Description,
	TopNotes,
	MiddleNotes,
	BaseNotes,
	Price2ml,
	Price5ml,
	Price10ml,
	Category,
	Gender,
	ImageURL,
	InStock,
	CreatedAt,
	UpdatedAt,
}

// PriceColumns lists the tiered price columns in size order.
var PriceColumns = []string{Price2ml, Price5ml, Price10ml}
