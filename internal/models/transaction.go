package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType for DB storage.
type TransactionType string

// PaymentMethod mirrors domain.PaymentMethod for DB storage.
type PaymentMethod string

// Transaction represents one balance-affecting event row. Rows are never
// updated after insert.
type Transaction struct {
	TransactionID        string          `db:"transaction_id"`
	SchoolID             *string         `db:"school_id"`
	TransactionType      TransactionType `db:"transaction_type"`
	Amount               decimal.Decimal `db:"amount"`
	PaymentMethod        PaymentMethod   `db:"payment_method"`
	AccountID            string          `db:"account_id"`
	DestinationAccountID *string         `db:"destination_account_id"`
	SaleID               *string         `db:"sale_id"`
	OrderID              *string         `db:"order_id"`
	ExpenseID            *string         `db:"expense_id"`
	Description          string          `db:"description"`
	OccurredAt           time.Time       `db:"occurred_at"`
	AuditFields
}
