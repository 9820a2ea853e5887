package models

// Inventory represents per-product per-school stock. The database constraint
// chk_inventory_reserved enforces 0 <= reserved <= on_hand.
type Inventory struct {
	InventoryID       string `db:"inventory_id"`
	SchoolID          string `db:"school_id"`
	ProductID         string `db:"product_id"`
	OnHand            int64  `db:"on_hand"`
	Reserved          int64  `db:"reserved"`
	LowStockThreshold int64  `db:"low_stock_threshold"`
	AuditFields
}
