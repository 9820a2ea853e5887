package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates what kind of money movement a transaction records.
type TransactionType string

const (
	Income      TransactionType = "INCOME"
	Expenditure TransactionType = "EXPENSE"
	Transfer    TransactionType = "TRANSFER"
)

// Transaction records one balance-affecting event. It is created atomically
// with its entries and never updated afterwards; a correction is always a new
// transaction.
type Transaction struct {
	TransactionID string
	Scope         Scope
	Type          TransactionType
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	// AccountID is the account affected by an income or expense, or the
	// source account of a transfer.
	AccountID string
	// DestinationAccountID is set for transfers only.
	DestinationAccountID *string
	// Optional links back to the business event that caused this transaction.
	SaleID    *string
	OrderID   *string
	ExpenseID *string
	Description string
	OccurredAt  time.Time
	AuditFields
}
