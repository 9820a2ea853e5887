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

const expenseColumns = `expense_id, school_id, category, description, amount, amount_paid, payment_method, account_id, paid_at, status, created_at, created_by, last_updated_at, last_updated_by`

const adjustmentColumns = `adjustment_id, expense_id, reason, description, previous_amount, previous_amount_paid, previous_payment_method, previous_account_id, new_amount, new_amount_paid, new_payment_method, new_account_id, adjustment_delta, refund_entry_id, new_payment_entry_id, adjusted_by, adjusted_at`

type PgxExpenseRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxExpenseRepository creates a new repository for expense data. It needs
// the account repository because payments and adjustments move money.
func newPgxExpenseRepository(pool DBPool, accountRepo portsrepo.AccountRepositoryFacade) *PgxExpenseRepository {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row rowScanner) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.SchoolID,
		&m.Category,
		&m.Description,
		&m.Amount,
		&m.AmountPaid,
		&m.PaymentMethod,
		&m.AccountID,
		&m.PaidAt,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExpense inserts a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.SchoolID,
		m.Category,
		m.Description,
		m.Amount,
		m.AmountPaid,
		m.PaymentMethod,
		m.AccountID,
		m.PaidAt,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its identifier.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`

	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	d := mapping.ToDomainExpense(m)
	return &d, nil
}

// ListExpenses retrieves a token-paginated list of expenses for a ledger
// scope, newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, scope domain.Scope, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `SELECT ` + expenseColumns + ` FROM expenses WHERE `
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
		createdAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		baseQuery += fmt.Sprintf(` AND (created_at, expense_id) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, createdAt, fields[1])
	}

	baseQuery += fmt.Sprintf(` ORDER BY created_at DESC, expense_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses for scope %s: %w", scope, err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense row for scope %s: %w", scope, err)
		}
		expenses = append(expenses, mapping.ToDomainExpense(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating expense rows for scope %s: %w", scope, rows.Err())
	}

	var token *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.ExpenseID)
		token = &t
	}

	return expenses, token, nil
}

// ListAdjustmentsByExpenseID retrieves the full correction history of an
// expense, oldest first.
func (r *PgxExpenseRepository) ListAdjustmentsByExpenseID(ctx context.Context, expenseID string) ([]domain.ExpenseAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM expense_adjustments
		WHERE expense_id = $1
		ORDER BY adjusted_at, adjustment_id;
	`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	adjustments := []domain.ExpenseAdjustment{}
	for rows.Next() {
		var m models.ExpenseAdjustment
		err := rows.Scan(
			&m.AdjustmentID,
			&m.ExpenseID,
			&m.Reason,
			&m.Description,
			&m.PreviousAmount,
			&m.PreviousAmountPaid,
			&m.PreviousPaymentMethod,
			&m.PreviousAccountID,
			&m.NewAmount,
			&m.NewAmountPaid,
			&m.NewPaymentMethod,
			&m.NewAccountID,
			&m.AdjustmentDelta,
			&m.RefundEntryID,
			&m.NewPaymentEntryID,
			&m.AdjustedBy,
			&m.AdjustedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment row for expense %s: %w", expenseID, err)
		}
		adjustments = append(adjustments, mapping.ToDomainExpenseAdjustment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating adjustment rows for expense %s: %w", expenseID, rows.Err())
	}

	return adjustments, nil
}

// updateExpenseInTx rewrites an expense's payment fields inside an open
// database transaction.
func updateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	query := `
		UPDATE expenses
		SET category = $2, description = $3, amount = $4, amount_paid = $5,
		    payment_method = $6, account_id = $7, paid_at = $8, status = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE expense_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.ExpenseID,
		m.Category,
		m.Description,
		m.Amount,
		m.AmountPaid,
		m.PaymentMethod,
		m.AccountID,
		m.PaidAt,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordPayment updates the expense payment fields and persists the payment
// transaction, its entry and the balance update in one database transaction.
func (r *PgxExpenseRepository) RecordPayment(ctx context.Context, expense domain.Expense, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateExpenseInTx(ctx, tx, expense); err != nil {
		return err
	}
	if err := insertTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := applyLedgerChangesInTx(ctx, tx, r.accountRepo, entries, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveAdjustment persists the corrected expense fields, any compensating
// transactions with their entries, the balance updates and the append-only
// adjustment row in one database transaction. The adjustment row goes in
// last: it references the refund and new-payment entries by ID, so those
// entries must exist first.
func (r *PgxExpenseRepository) SaveAdjustment(ctx context.Context, expense domain.Expense, adjustment domain.ExpenseAdjustment, txns []domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateExpenseInTx(ctx, tx, expense); err != nil {
		return err
	}
	for _, txn := range txns {
		if err := insertTransactionInTx(ctx, tx, txn); err != nil {
			return err
		}
	}
	if len(balanceChanges) > 0 || len(entries) > 0 {
		if err := applyLedgerChangesInTx(ctx, tx, r.accountRepo, entries, balanceChanges, adjustment.AdjustedBy, adjustment.AdjustedAt); err != nil {
			return err
		}
	}

	m := mapping.ToModelExpenseAdjustment(adjustment)
	query := `
		INSERT INTO expense_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, query,
		m.AdjustmentID,
		m.ExpenseID,
		m.Reason,
		m.Description,
		m.PreviousAmount,
		m.PreviousAmountPaid,
		m.PreviousPaymentMethod,
		m.PreviousAccountID,
		m.NewAmount,
		m.NewAmountPaid,
		m.NewPaymentMethod,
		m.NewAccountID,
		m.AdjustmentDelta,
		m.RefundEntryID,
		m.NewPaymentEntryID,
		m.AdjustedBy,
		m.AdjustedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert adjustment %s for expense %s: %w", m.AdjustmentID, m.ExpenseID, err)
	}

	return r.Commit(ctx, tx)
}
