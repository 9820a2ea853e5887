package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// RecordTransactionRequest defines the data needed to record a transaction.
// The payment method resolves the affected account; for transfers it resolves
// the source and DestinationPaymentMethod resolves the destination.
type RecordTransactionRequest struct {
	Type                     string          `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER income expense transfer"`
	Amount                   decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod            string          `json:"paymentMethod" binding:"required,paymentmethod"`
	DestinationPaymentMethod *string         `json:"destinationPaymentMethod" binding:"omitempty,paymentmethod"` // transfers only
	Description              string          `json:"description"`
	SaleID                   *string         `json:"saleID"`
	OrderID                  *string         `json:"orderID"`
	ExpenseID                *string         `json:"expenseID"`
	OccurredAt               *time.Time      `json:"occurredAt"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        string                 `json:"transactionID"`
	SchoolID             *string                `json:"schoolID"`
	Type                 domain.TransactionType `json:"type"`
	Amount               decimal.Decimal        `json:"amount"`
	PaymentMethod        domain.PaymentMethod   `json:"paymentMethod"`
	AccountID            string                 `json:"accountID"`
	DestinationAccountID *string                `json:"destinationAccountID,omitempty"`
	SaleID               *string                `json:"saleID,omitempty"`
	OrderID              *string                `json:"orderID,omitempty"`
	ExpenseID            *string                `json:"expenseID,omitempty"`
	Description          string                 `json:"description"`
	OccurredAt           time.Time              `json:"occurredAt"`
	CreatedAt            time.Time              `json:"createdAt"`
	CreatedBy            string                 `json:"createdBy"`
	Entries              []EntryResponse        `json:"entries,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        t.TransactionID,
		SchoolID:             t.Scope.NullableSchoolID(),
		Type:                 t.Type,
		Amount:               t.Amount,
		PaymentMethod:        t.PaymentMethod,
		AccountID:            t.AccountID,
		DestinationAccountID: t.DestinationAccountID,
		SaleID:               t.SaleID,
		OrderID:              t.OrderID,
		ExpenseID:            t.ExpenseID,
		Description:          t.Description,
		OccurredAt:           t.OccurredAt,
		CreatedAt:            t.CreatedAt,
		CreatedBy:            t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return out
}

// ListTransactionsParams holds pagination parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions plus the next-page token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
