package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// AccountReader defines read operations for balance account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves the account for a well-known code within a scope.
	FindAccountByCode(ctx context.Context, scope domain.Scope, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a ledger scope.
	ListAccounts(ctx context.Context, scope domain.Scope, limit int, offset int) ([]domain.Account, error)

	// SumEntriesByAccountID recomputes the account balance as the signed sum
	// of its entries. Used for reconciliation, not the hot path.
	SumEntriesByAccountID(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ListEntriesByAccountID retrieves a token-paginated list of entries for
	// an account, newest first.
	ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error)

	// FindAccountCodeForPaymentMethod resolves which account code money moved
	// through a payment method settles into, from the payment_method_accounts
	// lookup table.
	FindAccountCodeForPaymentMethod(ctx context.Context, method domain.PaymentMethod) (string, error)
}

// AccountWriter defines write operations for balance account data.
type AccountWriter interface {
	// SaveAccount persists a new account. Conflicting (scope, code) pairs are
	// reported as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations used inside another
// repository's database transaction.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for update.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas to the cached
	// balance column of multiple accounts.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error

	// InsertEntriesInTx appends balance entries within a transaction.
	InsertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.Entry) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
