package domain

// Inventory tracks stock of one product for one school. The invariant
// 0 <= Reserved <= OnHand holds at all times; it is enforced by guarded
// updates in the repository, not by in-process locking.
type Inventory struct {
	InventoryID       string
	SchoolID          string
	ProductID         string
	OnHand            int64
	Reserved          int64
	LowStockThreshold int64
	AuditFields
}

// Available is the quantity that can still be sold or reserved.
func (i Inventory) Available() int64 {
	return i.OnHand - i.Reserved
}

// IsLowStock reports whether available stock sits at or below the threshold.
// A zero threshold disables the check.
func (i Inventory) IsLowStock() bool {
	return i.LowStockThreshold > 0 && i.Available() <= i.LowStockThreshold
}
