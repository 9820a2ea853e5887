package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of a balance account.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Well-known account codes. GetOrCreateAccount seeds these lazily per scope.
const (
	AccountCodeCaja  = "1101" // cash drawer
	AccountCodeBanco = "1102" // bank account
)

// Account is a named pool of money (Caja, Banco, ...) with a cached running
// balance. The balance is mutated only through the transaction service and is
// always equal to the signed sum of the account's entries.
type Account struct {
	AccountID   string
	Scope       Scope
	Code        string
	Name        string
	AccountType AccountType
	Balance     decimal.Decimal
	IsActive    bool
	AuditFields
}

// Entry is one signed movement against a balance account: positive amounts
// increase the balance, negative amounts decrease it. Entries are immutable;
// corrections are made by inserting offsetting entries, never by editing.
type Entry struct {
	EntryID       string
	AccountID     string
	TransactionID string
	Amount        decimal.Decimal
	CreatedAt     time.Time
	CreatedBy     string
}
