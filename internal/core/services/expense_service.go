package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
	"github.com/uniformes-app/backoffice/internal/middleware"
)

// ExpenseService owns the expense lifecycle: creation, payments, and the
// append-only correction history. Every correction that moves money also
// creates the compensating ledger entries, in the same database transaction.
type ExpenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	accountSvc  portssvc.AccountRegistrySvc
}

func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, accountSvc portssvc.AccountRegistrySvc) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
		accountSvc:  accountSvc,
	}
}

// Ensure ExpenseService implements the facade.
var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

func parseExpenseCategory(raw string) (domain.ExpenseCategory, error) {
	switch c := domain.ExpenseCategory(strings.ToUpper(strings.TrimSpace(raw))); c {
	case domain.CategoryFabric, domain.CategoryPayroll, domain.CategoryRent,
		domain.CategoryUtilities, domain.CategorySupplies, domain.CategoryOther:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, raw)
	}
}

func parseAdjustmentReason(raw string) (domain.AdjustmentReason, error) {
	switch r := domain.AdjustmentReason(strings.ToUpper(strings.TrimSpace(raw))); r {
	case domain.AmountCorrection, domain.AccountCorrection, domain.BothCorrection:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown adjustment reason %q", apperrors.ErrValidation, raw)
	}
}

func (s *ExpenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

func (s *ExpenseService) ListExpenses(ctx context.Context, scope domain.Scope, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	expenses, nextToken, err := s.expenseRepo.ListExpenses(ctx, scope, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list expenses", slog.String("error", err.Error()), slog.String("scope", scope.String()))
		return nil, err
	}

	responses := make([]dto.ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = dto.ToExpenseResponse(&expenses[i])
	}
	return &dto.ListExpensesResponse{Expenses: responses, NextToken: nextToken}, nil
}

func (s *ExpenseService) ListAdjustments(ctx context.Context, expenseID string) ([]domain.ExpenseAdjustment, error) {
	if _, err := s.expenseRepo.FindExpenseByID(ctx, expenseID); err != nil {
		return nil, err
	}
	return s.expenseRepo.ListAdjustmentsByExpenseID(ctx, expenseID)
}

// CreateExpense records a new pending expense with nothing paid yet.
func (s *ExpenseService) CreateExpense(ctx context.Context, scope domain.Scope, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	category, err := parseExpenseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Scope:       scope,
		Category:    category,
		Description: req.Description,
		Amount:      req.Amount,
		AmountPaid:  decimal.Zero,
		Status:      domain.ExpensePending,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()), slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID), slog.String("category", string(category)), slog.String("amount", req.Amount.String()))
	return &expense, nil
}

// PayExpense records a (possibly partial) payment against the expense,
// debiting the account the payment method maps to.
func (s *ExpenseService) PayExpense(ctx context.Context, expenseID string, req dto.PayExpenseRequest, userID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	newPaid := expense.AmountPaid.Add(req.Amount)
	if newPaid.GreaterThan(expense.Amount) {
		return nil, fmt.Errorf("%w: paying %s would exceed the owed %s", apperrors.ErrOverpayment, req.Amount, expense.Amount.Sub(expense.AmountPaid))
	}

	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	code, err := s.accountRepo.FindAccountCodeForPaymentMethod(ctx, method)
	if err != nil {
		return nil, err
	}
	account, err := s.accountSvc.GetOrCreateAccount(ctx, expense.Scope, code, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Scope:         expense.Scope,
		Type:          domain.Expenditure,
		Amount:        req.Amount,
		PaymentMethod: method,
		AccountID:     account.AccountID,
		ExpenseID:     &expense.ExpenseID,
		Description:   fmt.Sprintf("Payment for expense: %s", expense.Description),
		OccurredAt:    now,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	entry := domain.Entry{
		EntryID:       uuid.NewString(),
		AccountID:     account.AccountID,
		TransactionID: txn.TransactionID,
		Amount:        req.Amount.Neg(),
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	balanceChanges := map[string]decimal.Decimal{account.AccountID: req.Amount.Neg()}

	expense.AmountPaid = newPaid
	expense.PaymentMethod = &method
	expense.AccountID = &account.AccountID
	expense.PaidAt = &now
	expense.Status = domain.ExpenseStatusFor(expense.Amount, expense.AmountPaid)
	expense.Touch(userID, now)

	if err := s.expenseRepo.RecordPayment(ctx, *expense, txn, []domain.Entry{entry}, balanceChanges); err != nil {
		logger.Error("Failed to record expense payment", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, err
	}

	logger.Info("Expense payment recorded",
		slog.String("expense_id", expenseID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(expense.Status)),
	)
	return expense, nil
}

// AdjustExpense applies a post-hoc correction of amount and/or payment
// account. The previous state is snapshotted into an append-only adjustment
// row, and compensating entries keep the ledger consistent with the change.
func (s *ExpenseService) AdjustExpense(ctx context.Context, expenseID string, req dto.AdjustExpenseRequest, userID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	reason, err := parseAdjustmentReason(req.Reason)
	if err != nil {
		return nil, err
	}

	correctsAmount := reason == domain.AmountCorrection || reason == domain.BothCorrection
	correctsAccount := reason == domain.AccountCorrection || reason == domain.BothCorrection

	if correctsAmount && req.NewAmount == nil {
		return nil, fmt.Errorf("%w: amount correction needs newAmount", apperrors.ErrValidation)
	}
	if correctsAccount && req.NewPaymentMethod == nil {
		return nil, fmt.Errorf("%w: account correction needs newPaymentMethod", apperrors.ErrValidation)
	}

	now := time.Now()
	adjustment := domain.ExpenseAdjustment{
		AdjustmentID:          uuid.NewString(),
		ExpenseID:             expense.ExpenseID,
		Reason:                reason,
		Description:           req.Description,
		PreviousAmount:        expense.Amount,
		PreviousAmountPaid:    expense.AmountPaid,
		PreviousPaymentMethod: expense.PaymentMethod,
		PreviousAccountID:     expense.AccountID,
		AdjustedBy:            userID,
		AdjustedAt:            now,
	}

	newAmount := expense.Amount
	if correctsAmount {
		newAmount = *req.NewAmount
		if !newAmount.IsPositive() {
			return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, newAmount)
		}
		if newAmount.LessThan(expense.AmountPaid) {
			return nil, fmt.Errorf("%w: corrected amount %s is below the %s already paid", apperrors.ErrValidation, newAmount, expense.AmountPaid)
		}
	}

	var txns []domain.Transaction
	entries := []domain.Entry{}
	balanceChanges := map[string]decimal.Decimal{}

	if correctsAccount {
		if expense.AccountID == nil || expense.AmountPaid.IsZero() {
			return nil, fmt.Errorf("%w: expense %s has no payment to move", apperrors.ErrConflict, expenseID)
		}

		newMethod, err := domain.ParsePaymentMethod(*req.NewPaymentMethod)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		code, err := s.accountRepo.FindAccountCodeForPaymentMethod(ctx, newMethod)
		if err != nil {
			return nil, err
		}
		newAccount, err := s.accountSvc.GetOrCreateAccount(ctx, expense.Scope, code, userID)
		if err != nil {
			return nil, err
		}
		if newAccount.AccountID == *expense.AccountID {
			return nil, fmt.Errorf("%w: expense is already paid from that account", apperrors.ErrValidation)
		}

		oldAccountID := *expense.AccountID
		paid := expense.AmountPaid

		// Move the recorded payment: money comes back to the wrongly charged
		// account and leaves the one it really came from.
		moveTxn := domain.Transaction{
			TransactionID:        uuid.NewString(),
			Scope:                expense.Scope,
			Type:                 domain.Transfer,
			Amount:               paid,
			PaymentMethod:        newMethod,
			AccountID:            newAccount.AccountID,
			DestinationAccountID: &oldAccountID,
			ExpenseID:            &expense.ExpenseID,
			Description:          fmt.Sprintf("Payment account correction: %s", req.Description),
			OccurredAt:           now,
			AuditFields:          domain.NewAuditFields(userID, now),
		}
		refundEntry := domain.Entry{
			EntryID:       uuid.NewString(),
			AccountID:     oldAccountID,
			TransactionID: moveTxn.TransactionID,
			Amount:        paid,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		newPaymentEntry := domain.Entry{
			EntryID:       uuid.NewString(),
			AccountID:     newAccount.AccountID,
			TransactionID: moveTxn.TransactionID,
			Amount:        paid.Neg(),
			CreatedAt:     now,
			CreatedBy:     userID,
		}

		txns = append(txns, moveTxn)
		entries = append(entries, refundEntry, newPaymentEntry)
		balanceChanges[oldAccountID] = balanceChanges[oldAccountID].Add(paid)
		balanceChanges[newAccount.AccountID] = balanceChanges[newAccount.AccountID].Sub(paid)

		adjustment.RefundEntryID = &refundEntry.EntryID
		adjustment.NewPaymentEntryID = &newPaymentEntry.EntryID

		expense.PaymentMethod = &newMethod
		expense.AccountID = &newAccount.AccountID
	}

	expense.Amount = newAmount
	expense.Status = domain.ExpenseStatusFor(expense.Amount, expense.AmountPaid)
	expense.Touch(userID, now)

	adjustment.NewAmount = expense.Amount
	adjustment.NewAmountPaid = expense.AmountPaid
	adjustment.NewPaymentMethod = expense.PaymentMethod
	adjustment.NewAccountID = expense.AccountID
	adjustment.AdjustmentDelta = adjustment.NewAmount.Sub(adjustment.PreviousAmount)

	if err := s.expenseRepo.SaveAdjustment(ctx, *expense, adjustment, txns, entries, balanceChanges); err != nil {
		logger.Error("Failed to save expense adjustment", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, err
	}

	logger.Info("Expense adjusted",
		slog.String("expense_id", expenseID),
		slog.String("adjustment_id", adjustment.AdjustmentID),
		slog.String("reason", string(reason)),
		slog.String("delta", adjustment.AdjustmentDelta.String()),
	)
	return expense, nil
}

// RevertExpense reverses the expense's payments entirely, crediting the full
// paid amount back and returning the expense to pending.
func (s *ExpenseService) RevertExpense(ctx context.Context, expenseID string, description string, userID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.AccountID == nil || expense.AmountPaid.IsZero() {
		return nil, fmt.Errorf("%w: expense %s has no payments to revert", apperrors.ErrConflict, expenseID)
	}

	now := time.Now()
	paid := expense.AmountPaid
	accountID := *expense.AccountID

	adjustment := domain.ExpenseAdjustment{
		AdjustmentID:          uuid.NewString(),
		ExpenseID:             expense.ExpenseID,
		Reason:                domain.ErrorReversal,
		Description:           description,
		PreviousAmount:        expense.Amount,
		PreviousAmountPaid:    paid,
		PreviousPaymentMethod: expense.PaymentMethod,
		PreviousAccountID:     expense.AccountID,
		AdjustedBy:            userID,
		AdjustedAt:            now,
	}

	refundTxn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Scope:         expense.Scope,
		Type:          domain.Income,
		Amount:        paid,
		PaymentMethod: *expense.PaymentMethod,
		AccountID:     accountID,
		ExpenseID:     &expense.ExpenseID,
		Description:   fmt.Sprintf("Reversal of expense payment: %s", description),
		OccurredAt:    now,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	refundEntry := domain.Entry{
		EntryID:       uuid.NewString(),
		AccountID:     accountID,
		TransactionID: refundTxn.TransactionID,
		Amount:        paid,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	balanceChanges := map[string]decimal.Decimal{accountID: paid}

	expense.AmountPaid = decimal.Zero
	expense.PaymentMethod = nil
	expense.AccountID = nil
	expense.PaidAt = nil
	expense.Status = domain.ExpensePending
	expense.Touch(userID, now)

	adjustment.NewAmount = expense.Amount
	adjustment.NewAmountPaid = decimal.Zero
	adjustment.AdjustmentDelta = decimal.Zero
	adjustment.RefundEntryID = &refundEntry.EntryID

	if err := s.expenseRepo.SaveAdjustment(ctx, *expense, adjustment, []domain.Transaction{refundTxn}, []domain.Entry{refundEntry}, balanceChanges); err != nil {
		logger.Error("Failed to revert expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, err
	}

	logger.Info("Expense reverted", slog.String("expense_id", expenseID), slog.String("refunded", paid.String()))
	return expense, nil
}

// PartialRefund credits refundAmount back to the account the expense was paid
// from and decrements the paid amount accordingly. The owed amount stays put.
func (s *ExpenseService) PartialRefund(ctx context.Context, expenseID string, refundAmount decimal.Decimal, description string, userID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !refundAmount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, refundAmount)
	}
	if expense.AccountID == nil || refundAmount.GreaterThan(expense.AmountPaid) {
		return nil, fmt.Errorf("%w: refunding %s but only %s was paid", apperrors.ErrInvalidRefundAmount, refundAmount, expense.AmountPaid)
	}

	now := time.Now()
	accountID := *expense.AccountID

	adjustment := domain.ExpenseAdjustment{
		AdjustmentID:          uuid.NewString(),
		ExpenseID:             expense.ExpenseID,
		Reason:                domain.PartialRefund,
		Description:           description,
		PreviousAmount:        expense.Amount,
		PreviousAmountPaid:    expense.AmountPaid,
		PreviousPaymentMethod: expense.PaymentMethod,
		PreviousAccountID:     expense.AccountID,
		AdjustedBy:            userID,
		AdjustedAt:            now,
	}

	refundTxn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Scope:         expense.Scope,
		Type:          domain.Income,
		Amount:        refundAmount,
		PaymentMethod: *expense.PaymentMethod,
		AccountID:     accountID,
		ExpenseID:     &expense.ExpenseID,
		Description:   fmt.Sprintf("Partial refund: %s", description),
		OccurredAt:    now,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	refundEntry := domain.Entry{
		EntryID:       uuid.NewString(),
		AccountID:     accountID,
		TransactionID: refundTxn.TransactionID,
		Amount:        refundAmount,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	balanceChanges := map[string]decimal.Decimal{accountID: refundAmount}

	expense.AmountPaid = expense.AmountPaid.Sub(refundAmount)
	if expense.AmountPaid.IsZero() {
		expense.PaymentMethod = nil
		expense.AccountID = nil
		expense.PaidAt = nil
	}
	expense.Status = domain.ExpenseStatusFor(expense.Amount, expense.AmountPaid)
	expense.Touch(userID, now)

	adjustment.NewAmount = expense.Amount
	adjustment.NewAmountPaid = expense.AmountPaid
	adjustment.NewPaymentMethod = expense.PaymentMethod
	adjustment.NewAccountID = expense.AccountID
	adjustment.AdjustmentDelta = decimal.Zero
	adjustment.RefundEntryID = &refundEntry.EntryID

	if err := s.expenseRepo.SaveAdjustment(ctx, *expense, adjustment, []domain.Transaction{refundTxn}, []domain.Entry{refundEntry}, balanceChanges); err != nil {
		logger.Error("Failed to record partial refund", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, err
	}

	logger.Info("Partial refund recorded",
		slog.String("expense_id", expenseID),
		slog.String("refunded", refundAmount.String()),
		slog.String("status", string(expense.Status)),
	)
	return expense, nil
}
