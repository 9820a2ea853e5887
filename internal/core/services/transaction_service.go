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

// TransactionService turns income, expense and transfer requests into
// transaction rows plus the balance entries that move the money.
type TransactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	accountSvc      portssvc.AccountRegistrySvc
}

func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, accountSvc portssvc.AccountRegistrySvc) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		accountSvc:      accountSvc,
	}
}

// Ensure TransactionService implements the facade.
var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

func parseTransactionType(raw string) (domain.TransactionType, error) {
	switch t := domain.TransactionType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case domain.Income, domain.Expenditure, domain.Transfer:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, raw)
	}
}

// resolveAccount maps a payment method onto the scope's balance account,
// creating the well-known account on first use.
func (s *TransactionService) resolveAccount(ctx context.Context, scope domain.Scope, method domain.PaymentMethod, userID string) (*domain.Account, error) {
	code, err := s.accountRepo.FindAccountCodeForPaymentMethod(ctx, method)
	if err != nil {
		return nil, err
	}
	return s.accountSvc.GetOrCreateAccount(ctx, scope, code, userID)
}

// RecordTransaction validates and persists an income, expense or transfer
// together with its balance entries, atomically. All validation happens
// before any write.
func (s *TransactionService) RecordTransaction(ctx context.Context, scope domain.Scope, req dto.RecordTransactionRequest, userID string) (*domain.Transaction, error) {
	return s.RecordTransactionSettling(ctx, scope, req, userID, nil)
}

// RecordTransactionSettling is RecordTransaction with follow-up writes that
// ride on the same database transaction as the ledger save. The sale and
// order services use it to bump the paid amount atomically with the payment.
func (s *TransactionService) RecordTransactionSettling(ctx context.Context, scope domain.Scope, req dto.RecordTransactionRequest, userID string, settle portsrepo.SettleFn) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	txnType, err := parseTransactionType(req.Type)
	if err != nil {
		return nil, err
	}

	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	account, err := s.resolveAccount(ctx, scope, method, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Scope:         scope,
		Type:          txnType,
		Amount:        req.Amount,
		PaymentMethod: method,
		AccountID:     account.AccountID,
		SaleID:        req.SaleID,
		OrderID:       req.OrderID,
		ExpenseID:     req.ExpenseID,
		Description:   req.Description,
		OccurredAt:    occurredAt,
		AuditFields:   domain.NewAuditFields(userID, now),
	}

	entries := []domain.Entry{}
	balanceChanges := map[string]decimal.Decimal{}
	addEntry := func(accountID string, amount decimal.Decimal) domain.Entry {
		e := domain.Entry{
			EntryID:       uuid.NewString(),
			AccountID:     accountID,
			TransactionID: txn.TransactionID,
			Amount:        amount,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		entries = append(entries, e)
		balanceChanges[accountID] = balanceChanges[accountID].Add(amount)
		return e
	}

	switch txnType {
	case domain.Income:
		addEntry(account.AccountID, req.Amount)
	case domain.Expenditure:
		addEntry(account.AccountID, req.Amount.Neg())
	case domain.Transfer:
		if req.DestinationPaymentMethod == nil {
			return nil, fmt.Errorf("%w: transfer needs a destination payment method", apperrors.ErrValidation)
		}
		destMethod, err := domain.ParsePaymentMethod(*req.DestinationPaymentMethod)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		destAccount, err := s.resolveAccount(ctx, scope, destMethod, userID)
		if err != nil {
			return nil, err
		}
		if destAccount.AccountID == account.AccountID {
			return nil, fmt.Errorf("%w: transfer source and destination are the same account", apperrors.ErrValidation)
		}
		txn.DestinationAccountID = &destAccount.AccountID
		addEntry(account.AccountID, req.Amount.Neg())
		addEntry(destAccount.AccountID, req.Amount)
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, entries, balanceChanges, settle); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	logger.Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txnType)),
		slog.String("amount", req.Amount.String()),
		slog.String("scope", scope.String()),
	)
	return &txn, nil
}

// GetTransactionByID retrieves a transaction with its entries.
func (s *TransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, []domain.Entry, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.transactionRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	return txn, entries, nil
}

// ListTransactions retrieves a token-paginated page for a ledger scope.
func (s *TransactionService) ListTransactions(ctx context.Context, scope domain.Scope, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	transactions, nextToken, err := s.transactionRepo.ListTransactions(ctx, scope, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("scope", scope.String()))
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}
