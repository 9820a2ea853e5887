package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents an expense row. school_id is NULL for business-wide
// expenses.
type Expense struct {
	ExpenseID     string          `db:"expense_id"`
	SchoolID      *string         `db:"school_id"`
	Category      string          `db:"category"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	PaymentMethod *string         `db:"payment_method"`
	AccountID     *string         `db:"account_id"`
	PaidAt        *time.Time      `db:"paid_at"`
	Status        string          `db:"status"`
	AuditFields
}

// ExpenseAdjustment represents one append-only audit row of an expense
// correction. expense adjustments reference balance entries with
// ON DELETE SET NULL so account cleanup never orphans the audit trail.
type ExpenseAdjustment struct {
	AdjustmentID string `db:"adjustment_id"`
	ExpenseID    string `db:"expense_id"`
	Reason       string `db:"reason"`
	Description  string `db:"description"`

	PreviousAmount        decimal.Decimal `db:"previous_amount"`
	PreviousAmountPaid    decimal.Decimal `db:"previous_amount_paid"`
	PreviousPaymentMethod *string         `db:"previous_payment_method"`
	PreviousAccountID     *string         `db:"previous_account_id"`

	NewAmount        decimal.Decimal `db:"new_amount"`
	NewAmountPaid    decimal.Decimal `db:"new_amount_paid"`
	NewPaymentMethod *string         `db:"new_payment_method"`
	NewAccountID     *string         `db:"new_account_id"`

	AdjustmentDelta decimal.Decimal `db:"adjustment_delta"`

	RefundEntryID     *string `db:"refund_entry_id"`
	NewPaymentEntryID *string `db:"new_payment_entry_id"`

	AdjustedBy string    `db:"adjusted_by"`
	AdjustedAt time.Time `db:"adjusted_at"`
}
