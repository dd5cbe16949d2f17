package m_inventory

// Field name constants for the inventory table.
const (
	TableName = "inventory"

	ID            = "id"
	ProductID     = "product_id"
	BottleSizeMl  = "bottle_size_ml"
	TotalVolume   = "total_volume"
	UsedVolume    = "used_volume"
	LowStockAlert = "low_stock_alert"
	CreatedAt     = "created_at"
)

// Columns lists every column of the inventory table.
var Columns = []string{ID, ProductID, BottleSizeMl, TotalVolume, UsedVolume, LowStockAlert, CreatedAt}
