package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus tracks how much of an expense has been paid. It is derived
// purely from amount_paid vs amount, so a refund can move a paid expense back
// to partially paid, and a full reversal back to pending.
type ExpenseStatus string

const (
	ExpensePending       ExpenseStatus = "PENDING"
	ExpensePartiallyPaid ExpenseStatus = "PARTIALLY_PAID"
	ExpensePaid          ExpenseStatus = "PAID"
)

// ExpenseStatusFor derives the status from the paid-vs-owed comparison.
func ExpenseStatusFor(amount, amountPaid decimal.Decimal) ExpenseStatus {
	switch {
	case amountPaid.LessThanOrEqual(decimal.Zero):
		return ExpensePending
	case amountPaid.LessThan(amount):
		return ExpensePartiallyPaid
	default:
		return ExpensePaid
	}
}

// ExpenseCategory is the canonical tag for what an expense was for.
type ExpenseCategory string

const (
	CategoryFabric    ExpenseCategory = "FABRIC"
	CategoryPayroll   ExpenseCategory = "PAYROLL"
	CategoryRent      ExpenseCategory = "RENT"
	CategoryUtilities ExpenseCategory = "UTILITIES"
	CategorySupplies  ExpenseCategory = "SUPPLIES"
	CategoryOther     ExpenseCategory = "OTHER"
)

// Expense is a cost the business owes or has paid. Payment state is mutated
// by the expense service; historical corrections live in ExpenseAdjustment
// rows, never in-place edits.
type Expense struct {
	ExpenseID     string
	Scope         Scope
	Category      ExpenseCategory
	Description   string
	Amount        decimal.Decimal
	AmountPaid    decimal.Decimal
	PaymentMethod *PaymentMethod
	// AccountID is the balance account the expense was paid from, once paid.
	AccountID *string
	PaidAt    *time.Time
	Status    ExpenseStatus
	AuditFields
}

// AdjustmentReason tags why an expense was corrected after the fact.
type AdjustmentReason string

const (
	AmountCorrection  AdjustmentReason = "AMOUNT_CORRECTION"
	AccountCorrection AdjustmentReason = "ACCOUNT_CORRECTION"
	BothCorrection    AdjustmentReason = "BOTH_CORRECTION"
	ErrorReversal     AdjustmentReason = "ERROR_REVERSAL"
	PartialRefund     AdjustmentReason = "PARTIAL_REFUND"
)

// ExpenseAdjustment is one append-only audit record of a post-hoc expense
// correction. It snapshots the expense's money fields before and after the
// change; nothing in this history is ever edited or deleted.
type ExpenseAdjustment struct {
	AdjustmentID string
	ExpenseID    string
	Reason       AdjustmentReason
	Description  string

	PreviousAmount        decimal.Decimal
	PreviousAmountPaid    decimal.Decimal
	PreviousPaymentMethod *PaymentMethod
	PreviousAccountID     *string

	NewAmount        decimal.Decimal
	NewAmountPaid    decimal.Decimal
	NewPaymentMethod *PaymentMethod
	NewAccountID     *string

	// AdjustmentDelta is always NewAmount - PreviousAmount.
	AdjustmentDelta decimal.Decimal

	// Entries created to keep the ledger consistent with the correction.
	RefundEntryID     *string
	NewPaymentEntryID *string

	AdjustedBy string
	AdjustedAt time.Time
}
