package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account represents a balance account row. school_id is NULL for the
// business-wide (global) ledger.
type Account struct {
	AccountID   string          `db:"account_id"`
	SchoolID    *string         `db:"school_id"`
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	AccountType AccountType     `db:"account_type"`
	Balance     decimal.Decimal `db:"balance"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}

// Entry represents one immutable signed movement against a balance account.
type Entry struct {
	EntryID       string          `db:"entry_id"`
	AccountID     string          `db:"account_id"`
	TransactionID string          `db:"transaction_id"`
	Amount        decimal.Decimal `db:"amount"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}
