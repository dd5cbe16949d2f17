package m_inventory

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the inventory table.
// Rows are interleaved in their product.
type Data struct {
	ID            string    `spanner:"id"`
	ProductID     string    `spanner:"product_id"`
	BottleSizeMl  int64     `spanner:"bottle_size_ml"`
	TotalVolume   int64     `spanner:"total_volume"`
	UsedVolume    int64     `spanner:"used_volume"`
	LowStockAlert bool      `spanner:"low_stock_alert"`
	CreatedAt     time.Time `spanner:"created_at"`
}

// InsertMut creates a Spanner mutation for inserting or replacing an inventory row.
func InsertMut(data *Data) *spanner.Mutation {
	var createdAt interface{} = data.CreatedAt
	if data.CreatedAt.IsZero() {
		createdAt = spanner.CommitTimestamp
	}
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{
			data.ID,
			data.ProductID,
			data.BottleSizeMl,
			data.TotalVolume,
			data.UsedVolume,
			data.LowStockAlert,
			createdAt,
		},
	)
}
