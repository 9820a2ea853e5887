package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/core/services"
	"github.com/uniformes-app/backoffice/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  *services.AccountService
	ctx      context.Context

	scope  domain.Scope
	userID string
	caja   domain.Account
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockRepo)
	s.ctx = context.Background()

	s.scope = domain.SchoolScope(uuid.NewString())
	s.userID = uuid.NewString()
	s.caja = domain.Account{
		AccountID:   uuid.NewString(),
		Scope:       s.scope,
		Code:        domain.AccountCodeCaja,
		Name:        "Caja",
		AccountType: domain.AccountTypeAsset,
		Balance:     decimal.NewFromInt(350000),
		IsActive:    true,
	}
}

func (s *AccountServiceTestSuite) TestGetOrCreateAccountReturnsExisting() {
	s.mockRepo.On("FindAccountByCode", s.ctx, s.scope, domain.AccountCodeCaja).Return(&s.caja, nil).Once()

	account, err := s.service.GetOrCreateAccount(s.ctx, s.scope, domain.AccountCodeCaja, s.userID)
	s.Require().NoError(err)
	s.Equal(s.caja.AccountID, account.AccountID)
	s.mockRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestGetOrCreateAccountCreatesOnFirstUse() {
	s.mockRepo.On("FindAccountByCode", s.ctx, s.scope, domain.AccountCodeBanco).Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == domain.AccountCodeBanco &&
			a.Name == "Banco" &&
			a.AccountType == domain.AccountTypeAsset &&
			a.Balance.IsZero() &&
			a.IsActive &&
			a.Scope.Equal(s.scope)
	})).Return(nil).Once()

	account, err := s.service.GetOrCreateAccount(s.ctx, s.scope, domain.AccountCodeBanco, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.AccountCodeBanco, account.Code)
	s.True(account.Balance.IsZero())
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestGetOrCreateAccountRejectsUnknownCode() {
	_, err := s.service.GetOrCreateAccount(s.ctx, s.scope, "9999", s.userID)
	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "FindAccountByCode", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestGetOrCreateAccountLosesCreationRace() {
	s.mockRepo.On("FindAccountByCode", s.ctx, s.scope, domain.AccountCodeCaja).Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveAccount", s.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	// The concurrent winner's account is picked up on the re-find.
	s.mockRepo.On("FindAccountByCode", s.ctx, s.scope, domain.AccountCodeCaja).Return(&s.caja, nil).Once()

	account, err := s.service.GetOrCreateAccount(s.ctx, s.scope, domain.AccountCodeCaja, s.userID)
	s.Require().NoError(err)
	s.Equal(s.caja.AccountID, account.AccountID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestGetBalance() {
	s.mockRepo.On("FindAccountByID", s.ctx, s.caja.AccountID).Return(&s.caja, nil).Once()

	balance, err := s.service.GetBalance(s.ctx, s.caja.AccountID)
	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(350000)))
}

func (s *AccountServiceTestSuite) TestRecomputeBalanceInSync() {
	s.mockRepo.On("FindAccountByID", s.ctx, s.caja.AccountID).Return(&s.caja, nil).Once()
	s.mockRepo.On("SumEntriesByAccountID", s.ctx, s.caja.AccountID).Return(decimal.NewFromInt(350000), nil).Once()

	cached, recomputed, err := s.service.RecomputeBalance(s.ctx, s.caja.AccountID)
	s.Require().NoError(err)
	s.True(cached.Equal(recomputed))
}

func (s *AccountServiceTestSuite) TestRecomputeBalanceReportsMismatch() {
	s.mockRepo.On("FindAccountByID", s.ctx, s.caja.AccountID).Return(&s.caja, nil).Once()
	s.mockRepo.On("SumEntriesByAccountID", s.ctx, s.caja.AccountID).Return(decimal.NewFromInt(340000), nil).Once()

	// A mismatch is reported, not turned into an error; the caller decides.
	cached, recomputed, err := s.service.RecomputeBalance(s.ctx, s.caja.AccountID)
	s.Require().NoError(err)
	s.True(cached.Equal(decimal.NewFromInt(350000)))
	s.True(recomputed.Equal(decimal.NewFromInt(340000)))
	s.False(cached.Equal(recomputed))
}

func (s *AccountServiceTestSuite) TestListEntriesChecksAccountExists() {
	accountID := uuid.NewString()
	s.mockRepo.On("FindAccountByID", s.ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ListEntries(s.ctx, accountID, dto.ListEntriesParams{Limit: 20})
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.mockRepo.AssertNotCalled(s.T(), "ListEntriesByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestListEntriesReturnsPage() {
	entries := []domain.Entry{
		{EntryID: uuid.NewString(), AccountID: s.caja.AccountID, Amount: decimal.NewFromInt(85000)},
		{EntryID: uuid.NewString(), AccountID: s.caja.AccountID, Amount: decimal.NewFromInt(-12000)},
	}
	token := "more"
	s.mockRepo.On("FindAccountByID", s.ctx, s.caja.AccountID).Return(&s.caja, nil).Once()
	s.mockRepo.On("ListEntriesByAccountID", s.ctx, s.caja.AccountID, 20, (*string)(nil)).Return(entries, &token, nil).Once()

	resp, err := s.service.ListEntries(s.ctx, s.caja.AccountID, dto.ListEntriesParams{Limit: 20})
	s.Require().NoError(err)
	s.Len(resp.Entries, 2)
	s.Require().NotNil(resp.NextToken)
	s.Equal("more", *resp.NextToken)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount() {
	s.mockRepo.On("DeactivateAccount", s.ctx, s.caja.AccountID, s.userID, mock.Anything).Return(nil).Once()

	err := s.service.DeactivateAccount(s.ctx, s.caja.AccountID, s.userID)
	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestDeactivateAccountWithBalanceRejected() {
	s.mockRepo.On("DeactivateAccount", s.ctx, s.caja.AccountID, s.userID, mock.Anything).
		Return(apperrors.ErrConflict).Once()

	err := s.service.DeactivateAccount(s.ctx, s.caja.AccountID, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
