package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to create a pending expense.
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// PayExpenseRequest defines a (possibly partial) payment against an expense.
type PayExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,paymentmethod"`
}

// AdjustExpenseRequest defines a post-hoc correction. At least one of
// NewAmount / NewPaymentMethod must be set; the reason must match what is
// being corrected.
type AdjustExpenseRequest struct {
	Reason           string           `json:"reason" binding:"required,oneof=AMOUNT_CORRECTION ACCOUNT_CORRECTION BOTH_CORRECTION amount_correction account_correction both_correction"`
	NewAmount        *decimal.Decimal `json:"newAmount"`
	NewPaymentMethod *string          `json:"newPaymentMethod"`
	Description      string           `json:"description" binding:"required"`
}

// RevertExpenseRequest defines an error-reversal request.
type RevertExpenseRequest struct {
	Description string `json:"description"`
}

// PartialRefundRequest defines a refund of part of what was paid.
type PartialRefundRequest struct {
	RefundAmount decimal.Decimal `json:"refundAmount" binding:"required"`
	Description  string          `json:"description"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string                 `json:"expenseID"`
	SchoolID      *string                `json:"schoolID"`
	Category      domain.ExpenseCategory `json:"category"`
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount"`
	AmountPaid    decimal.Decimal        `json:"amountPaid"`
	PaymentMethod *domain.PaymentMethod  `json:"paymentMethod,omitempty"`
	AccountID     *string                `json:"accountID,omitempty"`
	PaidAt        *time.Time             `json:"paidAt,omitempty"`
	Status        domain.ExpenseStatus   `json:"status"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		SchoolID:      e.Scope.NullableSchoolID(),
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		AmountPaid:    e.AmountPaid,
		PaymentMethod: e.PaymentMethod,
		AccountID:     e.AccountID,
		PaidAt:        e.PaidAt,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ExpenseAdjustmentResponse defines the data returned for one audit record.
type ExpenseAdjustmentResponse struct {
	AdjustmentID          string                  `json:"adjustmentID"`
	ExpenseID             string                  `json:"expenseID"`
	Reason                domain.AdjustmentReason `json:"reason"`
	Description           string                  `json:"description"`
	PreviousAmount        decimal.Decimal         `json:"previousAmount"`
	PreviousAmountPaid    decimal.Decimal         `json:"previousAmountPaid"`
	PreviousPaymentMethod *domain.PaymentMethod   `json:"previousPaymentMethod,omitempty"`
	PreviousAccountID     *string                 `json:"previousAccountID,omitempty"`
	NewAmount             decimal.Decimal         `json:"newAmount"`
	NewAmountPaid         decimal.Decimal         `json:"newAmountPaid"`
	NewPaymentMethod      *domain.PaymentMethod   `json:"newPaymentMethod,omitempty"`
	NewAccountID          *string                 `json:"newAccountID,omitempty"`
	AdjustmentDelta       decimal.Decimal         `json:"adjustmentDelta"`
	RefundEntryID         *string                 `json:"refundEntryID,omitempty"`
	NewPaymentEntryID     *string                 `json:"newPaymentEntryID,omitempty"`
	AdjustedBy            string                  `json:"adjustedBy"`
	AdjustedAt            time.Time               `json:"adjustedAt"`
}

// ToExpenseAdjustmentResponse converts a domain adjustment to its response shape.
func ToExpenseAdjustmentResponse(a domain.ExpenseAdjustment) ExpenseAdjustmentResponse {
	return ExpenseAdjustmentResponse{
		AdjustmentID:          a.AdjustmentID,
		ExpenseID:             a.ExpenseID,
		Reason:                a.Reason,
		Description:           a.Description,
		PreviousAmount:        a.PreviousAmount,
		PreviousAmountPaid:    a.PreviousAmountPaid,
		PreviousPaymentMethod: a.PreviousPaymentMethod,
		PreviousAccountID:     a.PreviousAccountID,
		NewAmount:             a.NewAmount,
		NewAmountPaid:         a.NewAmountPaid,
		NewPaymentMethod:      a.NewPaymentMethod,
		NewAccountID:          a.NewAccountID,
		AdjustmentDelta:       a.AdjustmentDelta,
		RefundEntryID:         a.RefundEntryID,
		NewPaymentEntryID:     a.NewPaymentEntryID,
		AdjustedBy:            a.AdjustedBy,
		AdjustedAt:            a.AdjustedAt,
	}
}

// ListExpensesParams holds pagination parameters for listing expenses.
type ListExpensesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListExpensesResponse is a page of expenses plus the next-page token.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}
