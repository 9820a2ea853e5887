package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	"github.com/uniformes-app/backoffice/internal/models"
	"github.com/uniformes-app/backoffice/internal/utils/mapping"
	"github.com/uniformes-app/backoffice/internal/utils/pagination"
)

const accountColumns = `account_id, school_id, code, name, account_type, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for balance account data.
func newPgxAccountRepository(pool DBPool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.SchoolID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account. A conflicting (school_id, code) pair is
// reported as apperrors.ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.SchoolID,
		m.Code,
		m.Name,
		m.AccountType,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with code %s already exists in scope %s", apperrors.ErrDuplicate, m.Code, account.Scope)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountByCode retrieves the account for a well-known code within a
// ledger scope. The global ledger uses a NULL school_id.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, scope domain.Scope, code string) (*domain.Account, error) {
	var (
		m   models.Account
		err error
	)
	if schoolID, ok := scope.SchoolID(); ok {
		query := `SELECT ` + accountColumns + ` FROM accounts WHERE school_id = $1 AND code = $2;`
		m, err = scanAccount(r.Pool.QueryRow(ctx, query, schoolID, code))
	} else {
		query := `SELECT ` + accountColumns + ` FROM accounts WHERE school_id IS NULL AND code = $1;`
		m, err = scanAccount(r.Pool.QueryRow(ctx, query, code))
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s in scope %s: %w", code, scope, err)
	}

	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. The map simply
// omits IDs that were not found; the caller decides whether that is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	return accountsMap, nil
}

// ListAccounts retrieves a paginated list of active accounts for a ledger scope.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, scope domain.Scope, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var (
		rows pgx.Rows
		err  error
	)
	if schoolID, ok := scope.SchoolID(); ok {
		query := `
			SELECT ` + accountColumns + ` FROM accounts
			WHERE is_active = TRUE AND school_id = $1
			ORDER BY code
			LIMIT $2 OFFSET $3;
		`
		rows, err = r.Pool.Query(ctx, query, schoolID, limit, offset)
	} else {
		query := `
			SELECT ` + accountColumns + ` FROM accounts
			WHERE is_active = TRUE AND school_id IS NULL
			ORDER BY code
			LIMIT $1 OFFSET $2;
		`
		rows, err = r.Pool.Query(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for scope %s: %w", scope, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for scope %s: %w", scope, err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for scope %s: %w", scope, rows.Err())
	}

	return accounts, nil
}

// SumEntriesByAccountID recomputes the balance as the signed sum of the
// account's entries. Reconciliation path only; the hot path reads the cached
// balance column.
func (r *PgxAccountRepository) SumEntriesByAccountID(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM entries WHERE account_id = $1;`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}
	return sum, nil
}

// ListEntriesByAccountID retrieves a token-paginated list of entries for an
// account, newest first.
func (r *PgxAccountRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `
		SELECT entry_id, account_id, transaction_id, amount, created_at, created_by
		FROM entries
		WHERE account_id = $1
	`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		baseQuery += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, createdAt, fields[1])
	}

	// Fetch one extra row to know whether another page exists.
	baseQuery += fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var m models.Entry
		if err := rows.Scan(&m.EntryID, &m.AccountID, &m.TransactionID, &m.Amount, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row for account %s: %w", accountID, err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows for account %s: %w", accountID, rows.Err())
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.EntryID)
		token = &t
	}

	return entries, token, nil
}

// FindAccountCodeForPaymentMethod resolves the account code a payment method
// settles into from the payment_method_accounts lookup table.
func (r *PgxAccountRepository) FindAccountCodeForPaymentMethod(ctx context.Context, method domain.PaymentMethod) (string, error) {
	query := `SELECT account_code FROM payment_method_accounts WHERE payment_method = $1;`

	var code string
	if err := r.Pool.QueryRow(ctx, query, string(method)).Scan(&code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: payment method %s has no account mapping", apperrors.ErrUnknownAccount, method)
		}
		return "", fmt.Errorf("failed to resolve account code for payment method %s: %w", method, err)
	}
	return code, nil
}

// DeactivateAccount marks an account as inactive. Accounts are never deleted;
// their entries stay part of history.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the account doesn't exist or it was already inactive.
		_, findErr := r.FindAccountByID(ctx, accountID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check account status after deactivation attempt for %s: %w", accountID, findErr)
		}
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, accountID)
	}

	return nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the
// rows for update. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) FOR UPDATE;`

	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// UpdateAccountBalancesInTx applies signed balance deltas to the cached
// balance column of multiple accounts within a transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta, now, userID)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}

	return batchErr
}

// InsertEntriesInTx appends balance entries within a transaction. Entries are
// immutable from this point on.
func (r *PgxAccountRepository) InsertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO entries (entry_id, account_id, transaction_id, amount, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelEntry(e)
		batch.Queue(query, m.EntryID, m.AccountID, m.TransactionID, m.Amount, m.CreatedAt, m.CreatedBy)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert entry %s: %w", entries[i].EntryID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close entry insert batch: %w", err)
	}

	return batchErr
}
