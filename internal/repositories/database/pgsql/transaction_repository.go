package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	"github.com/uniformes-app/backoffice/internal/models"
	"github.com/uniformes-app/backoffice/internal/utils/mapping"
	"github.com/uniformes-app/backoffice/internal/utils/pagination"
)

const transactionColumns = `transaction_id, school_id, transaction_type, amount, payment_method, account_id, destination_account_id, sale_id, order_id, expense_id, description, occurred_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for transaction data.
// It depends on the account repository for the in-transaction balance work.
func newPgxTransactionRepository(pool DBPool, accountRepo portsrepo.AccountRepositoryFacade) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// insertTransactionInTx inserts one transaction row inside an open database
// transaction. Shared with the expense repository, which records compensating
// transactions atomically with adjustment rows.
func insertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.SchoolID,
		m.TransactionType,
		m.Amount,
		m.PaymentMethod,
		m.AccountID,
		m.DestinationAccountID,
		m.SaleID,
		m.OrderID,
		m.ExpenseID,
		m.Description,
		m.OccurredAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// applyLedgerChangesInTx locks the affected accounts, applies the balance
// deltas and appends the entries, all on the given open transaction.
func applyLedgerChangesInTx(ctx context.Context, tx pgx.Tx, accountRepo portsrepo.AccountRepositoryFacade, entries []domain.Entry, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	if _, err := accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for update: %w", err)
	}
	if err := accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return fmt.Errorf("failed to update account balances: %w", err)
	}
	if err := accountRepo.InsertEntriesInTx(ctx, tx, entries); err != nil {
		return fmt.Errorf("failed to insert entries: %w", err)
	}
	return nil
}

// SaveTransaction persists the transaction row, its entries and the cached
// balance updates in one database transaction. A non-nil settle runs on the
// same open transaction, after the ledger writes.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal, settle portsrepo.SettleFn) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	if err := insertTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := applyLedgerChangesInTx(ctx, tx, r.accountRepo, entries, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}
	if settle != nil {
		if err := settle(ctx, tx); err != nil {
			return fmt.Errorf("failed to settle transaction %s: %w", txn.TransactionID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.SchoolID,
		&m.TransactionType,
		&m.Amount,
		&m.PaymentMethod,
		&m.AccountID,
		&m.DestinationAccountID,
		&m.SaleID,
		&m.OrderID,
		&m.ExpenseID,
		&m.Description,
		&m.OccurredAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindTransactionByID retrieves a transaction by its identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactions retrieves a token-paginated list of transactions for a
// ledger scope, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, scope domain.Scope, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions WHERE `
	args := []any{}
	if schoolID, ok := scope.SchoolID(); ok {
		baseQuery += `school_id = $1`
		args = append(args, schoolID)
	} else {
		baseQuery += `school_id IS NULL`
	}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		occurredAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		baseQuery += fmt.Sprintf(` AND (occurred_at, transaction_id) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, occurredAt, fields[1])
	}

	baseQuery += fmt.Sprintf(` ORDER BY occurred_at DESC, transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for scope %s: %w", scope, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row for scope %s: %w", scope, err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows for scope %s: %w", scope, rows.Err())
	}

	var token *string
	if len(transactions) > limit {
		transactions = transactions[:limit]
		last := transactions[len(transactions)-1]
		t := pagination.EncodeMultiFieldToken(last.OccurredAt.Format(time.RFC3339Nano), last.TransactionID)
		token = &t
	}

	return transactions, token, nil
}

// FindEntriesByTransactionID retrieves the entries a transaction created, in
// insertion order.
func (r *PgxTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	query := `
		SELECT entry_id, account_id, transaction_id, amount, created_at, created_by
		FROM entries
		WHERE transaction_id = $1
		ORDER BY created_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var m models.Entry
		if err := rows.Scan(&m.EntryID, &m.AccountID, &m.TransactionID, &m.Amount, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan entry row for transaction %s: %w", transactionID, err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating entry rows for transaction %s: %w", transactionID, rows.Err())
	}

	return entries, nil
}
