package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// SettleFn runs follow-up writes on the same open database transaction as a
// transaction save, so a payment and the record it settles commit together.
type SettleFn func(ctx context.Context, tx pgx.Tx) error

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a token-paginated list of transactions for a
	// ledger scope, newest first.
	ListTransactions(ctx context.Context, scope domain.Scope, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindEntriesByTransactionID retrieves the balance entries created by a
	// transaction (one for income/expense, two for transfers).
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists the transaction row, its balance entries, and
	// the cached account balance updates in ONE database transaction: either
	// all of it commits or none of it does. A non-nil settle runs on the same
	// open transaction after the ledger writes; its error aborts the commit.
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal, settle SettleFn) error
}

// TransactionRepositoryFacade combines transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
