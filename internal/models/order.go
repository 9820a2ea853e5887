package models

import "github.com/shopspring/decimal"

// Order represents a customer order row.
type Order struct {
	OrderID    string          `db:"order_id"`
	SchoolID   string          `db:"school_id"`
	ClientName string          `db:"client_name"`
	Status     string          `db:"status"`
	Total      decimal.Decimal `db:"total"`
	AmountPaid decimal.Decimal `db:"amount_paid"`
	AuditFields
}

// OrderItem represents one order line. quantity_reserved records exactly what
// was taken from stock at creation time.
type OrderItem struct {
	OrderItemID       string          `db:"order_item_id"`
	OrderID           string          `db:"order_id"`
	ProductID         string          `db:"product_id"`
	Quantity          int64           `db:"quantity"`
	UnitPrice         decimal.Decimal `db:"unit_price"`
	ReservedFromStock bool            `db:"reserved_from_stock"`
	QuantityReserved  int64           `db:"quantity_reserved"`
}

// Sale represents a direct sale row.
type Sale struct {
	SaleID     string          `db:"sale_id"`
	SchoolID   string          `db:"school_id"`
	ClientName string          `db:"client_name"`
	Status     string          `db:"status"`
	Total      decimal.Decimal `db:"total"`
	AmountPaid decimal.Decimal `db:"amount_paid"`
	AuditFields
}

// SaleItem represents one sale line.
type SaleItem struct {
	SaleItemID        string          `db:"sale_item_id"`
	SaleID            string          `db:"sale_id"`
	ProductID         string          `db:"product_id"`
	Quantity          int64           `db:"quantity"`
	UnitPrice         decimal.Decimal `db:"unit_price"`
	ReservedFromStock bool            `db:"reserved_from_stock"`
	QuantityReserved  int64           `db:"quantity_reserved"`
}
