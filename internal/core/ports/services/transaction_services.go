package services

import (
	"context"

	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// TransactionSvcFacade records and reads balance-affecting events.
type TransactionSvcFacade interface {
	// RecordTransaction validates and persists an income, expense or transfer
	// together with its balance entries, atomically.
	RecordTransaction(ctx context.Context, scope domain.Scope, req dto.RecordTransactionRequest, userID string) (*domain.Transaction, error)

	// RecordTransactionSettling is RecordTransaction with follow-up writes
	// that commit atomically with the transaction, e.g. the paid-amount bump
	// on the sale or order a payment settles. A settle error aborts the whole
	// save.
	RecordTransactionSettling(ctx context.Context, scope domain.Scope, req dto.RecordTransactionRequest, userID string, settle portsrepo.SettleFn) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction with its entries.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, []domain.Entry, error)

	// ListTransactions retrieves a token-paginated list for a ledger scope.
	ListTransactions(ctx context.Context, scope domain.Scope, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
