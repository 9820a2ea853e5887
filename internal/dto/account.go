package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// AccountResponse defines the data returned for a balance account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	SchoolID      *string            `json:"schoolID"` // nil = global ledger
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       decimal.Decimal    `json:"balance"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		SchoolID:      acc.Scope.NullableSchoolID(),
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// BalanceResponse reports the cached balance alongside the recomputed entry
// sum for reconciliation checks.
type BalanceResponse struct {
	AccountID  string          `json:"accountID"`
	Balance    decimal.Decimal `json:"balance"`
	Recomputed decimal.Decimal `json:"recomputed"`
	InSync     bool            `json:"inSync"`
}

// EntryResponse defines the data returned for one balance entry.
type EntryResponse struct {
	EntryID       string          `json:"entryID"`
	AccountID     string          `json:"accountID"`
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse.
func ToEntryResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		AccountID:     e.AccountID,
		TransactionID: e.TransactionID,
		Amount:        e.Amount,
		CreatedAt:     e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToEntryResponse(e)
	}
	return out
}

// ListEntriesParams holds pagination parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of entries plus the token for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
