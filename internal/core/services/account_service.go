package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

// wellKnownAccounts maps the account codes the business uses to their display
// name and accounting type. GetOrCreateAccount refuses codes outside this set.
var wellKnownAccounts = map[string]struct {
	Name string
	Type domain.AccountType
}{
	domain.AccountCodeCaja:  {Name: "Caja", Type: domain.AccountTypeAsset},
	domain.AccountCodeBanco: {Name: "Banco", Type: domain.AccountTypeAsset},
}

type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewAccountService(repo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: repo}
}

// Ensure AccountService implements the facade.
var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, scope domain.Scope, limit int, offset int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, scope, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("scope", scope.String()))
		return nil, err
	}
	return accounts, nil
}

func (s *AccountService) ListEntries(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.accountRepo.ListEntriesByAccountID(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// GetOrCreateAccount returns the account for a well-known code within a
// scope, creating it with a zero balance the first time the scope needs it.
func (s *AccountService) GetOrCreateAccount(ctx context.Context, scope domain.Scope, code string, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	spec, ok := wellKnownAccounts[code]
	if !ok {
		return nil, fmt.Errorf("%w: unknown account code %s", apperrors.ErrValidation, code)
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, scope, code)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	newAccount := domain.Account{
		AccountID:   uuid.NewString(),
		Scope:       scope,
		Code:        code,
		Name:        spec.Name,
		AccountType: spec.Type,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, newAccount); err != nil {
		// A concurrent caller may have created the account between the find
		// and the insert; in that case take theirs.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindAccountByCode(ctx, scope, code)
		}
		logger.Error("Failed to create account", slog.String("error", err.Error()), slog.String("code", code), slog.String("scope", scope.String()))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", newAccount.AccountID), slog.String("code", code), slog.String("scope", scope.String()))
	return &newAccount, nil
}

// GetBalance returns the account's cached balance.
func (s *AccountService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// RecomputeBalance re-derives the balance from the entry ledger and reports
// it alongside the cached value. A mismatch means the ledger invariant broke.
func (s *AccountService) RecomputeBalance(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	recomputed, err := s.accountRepo.SumEntriesByAccountID(ctx, accountID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	if !account.Balance.Equal(recomputed) {
		logger.Error("Cached balance out of sync with entry ledger",
			slog.String("account_id", accountID),
			slog.String("cached", account.Balance.String()),
			slog.String("recomputed", recomputed.String()),
		)
	}

	return account.Balance, recomputed, nil
}

func (s *AccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
