package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// AccountReaderSvc defines read operations over the balance account registry.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a ledger scope.
	ListAccounts(ctx context.Context, scope domain.Scope, limit int, offset int) ([]domain.Account, error)

	// ListEntries retrieves a token-paginated list of the account's entries.
	ListEntries(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// AccountRegistrySvc defines the registry operations of spec'd well-known accounts.
type AccountRegistrySvc interface {
	// GetOrCreateAccount returns the account for a well-known code within a
	// scope, creating it with a zero balance if absent.
	GetOrCreateAccount(ctx context.Context, scope domain.Scope, code string, userID string) (*domain.Account, error)

	// GetBalance returns the account's cached balance.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// RecomputeBalance re-derives the balance from the entry ledger and
	// reports it alongside the cached value. The two must always agree.
	RecomputeBalance(ctx context.Context, accountID string) (cached decimal.Decimal, recomputed decimal.Decimal, err error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// DeactivateAccount flips the active flag; accounts are never deleted so
	// historical entry links stay intact.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountRegistrySvc
	AccountWriterSvc
}
