package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// ExpenseReader defines read operations for expense data.
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a token-paginated list of expenses for a ledger
	// scope, newest first.
	ListExpenses(ctx context.Context, scope domain.Scope, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// ListAdjustmentsByExpenseID retrieves the full correction history of an
	// expense, oldest first.
	ListAdjustmentsByExpenseID(ctx context.Context, expenseID string) ([]domain.ExpenseAdjustment, error)
}

// ExpenseWriter defines write operations for expense data.
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// RecordPayment updates the expense's payment fields and persists the
	// payment transaction, its entry, and the balance update in ONE database
	// transaction.
	RecordPayment(ctx context.Context, expense domain.Expense, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error

	// SaveAdjustment persists the append-only adjustment row, the corrected
	// expense fields, any compensating transactions with their entries, and
	// the balance updates in ONE database transaction.
	SaveAdjustment(ctx context.Context, expense domain.Expense, adjustment domain.ExpenseAdjustment, txns []domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error
}

// ExpenseRepositoryFacade combines expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
