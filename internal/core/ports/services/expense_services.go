package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses.
type ExpenseReaderSvc interface {
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, scope domain.Scope, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)
	ListAdjustments(ctx context.Context, expenseID string) ([]domain.ExpenseAdjustment, error)
}

// ExpenseWriterSvc defines the expense lifecycle operations.
type ExpenseWriterSvc interface {
	// CreateExpense records a new pending expense with nothing paid.
	CreateExpense(ctx context.Context, scope domain.Scope, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)

	// PayExpense records a (possibly partial) payment, debiting the account
	// the payment method maps to and creating the linked transaction.
	PayExpense(ctx context.Context, expenseID string, req dto.PayExpenseRequest, userID string) (*domain.Expense, error)

	// AdjustExpense applies a post-hoc correction of amount and/or payment
	// account, snapshotting everything into an append-only adjustment row and
	// creating compensating entries to keep the ledger consistent.
	AdjustExpense(ctx context.Context, expenseID string, req dto.AdjustExpenseRequest, userID string) (*domain.Expense, error)

	// RevertExpense reverses the expense's payments entirely (reason
	// error_reversal), returning amount_paid to zero.
	RevertExpense(ctx context.Context, expenseID string, description string, userID string) (*domain.Expense, error)

	// PartialRefund credits refundAmount back to the account the expense was
	// paid from and decrements amount_paid accordingly.
	PartialRefund(ctx context.Context, expenseID string, refundAmount decimal.Decimal, description string, userID string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines expense service interfaces.
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
