package domain

import "github.com/shopspring/decimal"

// OrderStatus is the lifecycle of a customer order (encargo).
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderReady     OrderStatus = "READY"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is a customer order against one school's catalog. Creating an order
// reserves stock for every item that requests it, all-or-nothing; cancelling
// releases exactly what was reserved; delivering fulfills it.
type Order struct {
	OrderID    string
	SchoolID   string
	ClientName string
	Status     OrderStatus
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	Items      []OrderItem
	AuditFields
}

// OrderItem is one product line of an order. QuantityReserved records exactly
// how much was taken from inventory at creation time, so cancellation can
// release precisely that amount regardless of later quantity edits. Items
// flagged made-to-order never reserve stock.
type OrderItem struct {
	OrderItemID       string
	OrderID           string
	ProductID         string
	Quantity          int64
	UnitPrice         decimal.Decimal
	ReservedFromStock bool
	QuantityReserved  int64
}

// SaleStatus is the lifecycle of a direct sale.
type SaleStatus string

const (
	SalePending   SaleStatus = "PENDING"
	SaleCompleted SaleStatus = "COMPLETED"
	SaleCancelled SaleStatus = "CANCELLED"
)

// Sale is a direct over-the-counter sale. Unlike orders, every sale item must
// come from stock, so creation reserves every line or fails entirely.
type Sale struct {
	SaleID     string
	SchoolID   string
	ClientName string
	Status     SaleStatus
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	Items      []SaleItem
	AuditFields
}

// SaleItem is one product line of a sale, with the same precise reservation
// bookkeeping as OrderItem.
type SaleItem struct {
	SaleItemID        string
	SaleID            string
	ProductID         string
	Quantity          int64
	UnitPrice         decimal.Decimal
	ReservedFromStock bool
	QuantityReserved  int64
}
