package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/core/services"
	"github.com/uniformes-app/backoffice/internal/dto"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockAccountRepo *MockAccountRepository
	service         *services.ExpenseService
	ctx             context.Context

	scope  domain.Scope
	userID string
	caja   domain.Account
	banco  domain.Account
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.mockExpenseRepo = new(MockExpenseRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	accountSvc := services.NewAccountService(s.mockAccountRepo)
	s.service = services.NewExpenseService(s.mockExpenseRepo, s.mockAccountRepo, accountSvc)
	s.ctx = context.Background()

	s.scope = domain.SchoolScope(uuid.NewString())
	s.userID = uuid.NewString()
	s.caja = domain.Account{
		AccountID:   uuid.NewString(),
		Scope:       s.scope,
		Code:        domain.AccountCodeCaja,
		Name:        "Caja",
		AccountType: domain.AccountTypeAsset,
		IsActive:    true,
	}
	s.banco = domain.Account{
		AccountID:   uuid.NewString(),
		Scope:       s.scope,
		Code:        domain.AccountCodeBanco,
		Name:        "Banco",
		AccountType: domain.AccountTypeAsset,
		IsActive:    true,
	}
}

// paidExpense builds an expense that already has amountPaid charged to Caja.
func (s *ExpenseServiceTestSuite) paidExpense(amount, amountPaid int64) *domain.Expense {
	method := domain.PaymentCash
	paidAt := time.Now().Add(-24 * time.Hour)
	return &domain.Expense{
		ExpenseID:     uuid.NewString(),
		Scope:         s.scope,
		Category:      domain.CategoryFabric,
		Description:   "Tela para camisas",
		Amount:        decimal.NewFromInt(amount),
		AmountPaid:    decimal.NewFromInt(amountPaid),
		PaymentMethod: &method,
		AccountID:     &s.caja.AccountID,
		PaidAt:        &paidAt,
		Status:        domain.ExpenseStatusFor(decimal.NewFromInt(amount), decimal.NewFromInt(amountPaid)),
	}
}

func (s *ExpenseServiceTestSuite) TestCreateExpenseStartsPending() {
	s.mockExpenseRepo.On("SaveExpense", s.ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Category == domain.CategoryPayroll &&
			e.Amount.Equal(decimal.NewFromInt(900000)) &&
			e.AmountPaid.IsZero() &&
			e.Status == domain.ExpensePending &&
			e.AccountID == nil
	})).Return(nil).Once()

	expense, err := s.service.CreateExpense(s.ctx, s.scope, dto.CreateExpenseRequest{
		Category:    "payroll",
		Amount:      decimal.NewFromInt(900000),
		Description: "Nómina de agosto",
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ExpensePending, expense.Status)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateExpenseRejectsBadInput() {
	_, err := s.service.CreateExpense(s.ctx, s.scope, dto.CreateExpenseRequest{
		Category: "FABRIC",
		Amount:   decimal.Zero,
	}, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = s.service.CreateExpense(s.ctx, s.scope, dto.CreateExpenseRequest{
		Category: "MARKETING",
		Amount:   decimal.NewFromInt(1000),
	}, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestPayExpenseFullPayment() {
	expense := s.paidExpense(200000, 0)
	expense.PaymentMethod = nil
	expense.AccountID = nil
	expense.PaidAt = nil

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockAccountRepo.On("FindAccountCodeForPaymentMethod", s.ctx, domain.PaymentCash).Return(domain.AccountCodeCaja, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", s.ctx, s.scope, domain.AccountCodeCaja).Return(&s.caja, nil).Once()

	s.mockExpenseRepo.On("RecordPayment", s.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.Status == domain.ExpensePaid && e.AmountPaid.Equal(decimal.NewFromInt(200000))
		}),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.Expenditure &&
				txn.AccountID == s.caja.AccountID &&
				txn.ExpenseID != nil && *txn.ExpenseID == expense.ExpenseID
		}),
		mock.MatchedBy(func(entries []domain.Entry) bool {
			return len(entries) == 1 && entries[0].Amount.Equal(decimal.NewFromInt(-200000))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[s.caja.AccountID].Equal(decimal.NewFromInt(-200000))
		}),
	).Return(nil).Once()

	updated, err := s.service.PayExpense(s.ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:        decimal.NewFromInt(200000),
		PaymentMethod: "CASH",
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ExpensePaid, updated.Status)
	s.Require().NotNil(updated.AccountID)
	s.Equal(s.caja.AccountID, *updated.AccountID)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestPayExpensePartialPayment() {
	expense := s.paidExpense(500000, 0)
	expense.PaymentMethod = nil
	expense.AccountID = nil
	expense.PaidAt = nil

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockAccountRepo.On("FindAccountCodeForPaymentMethod", s.ctx, domain.PaymentNequi).Return(domain.AccountCodeBanco, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", s.ctx, s.scope, domain.AccountCodeBanco).Return(&s.banco, nil).Once()
	s.mockExpenseRepo.On("RecordPayment", s.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.Status == domain.ExpensePartiallyPaid && e.AmountPaid.Equal(decimal.NewFromInt(150000))
		}),
		mock.Anything, mock.Anything, mock.Anything,
	).Return(nil).Once()

	updated, err := s.service.PayExpense(s.ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:        decimal.NewFromInt(150000),
		PaymentMethod: "NEQUI",
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ExpensePartiallyPaid, updated.Status)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestPayExpenseRejectsOverpayment() {
	expense := s.paidExpense(100000, 80000)
	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := s.service.PayExpense(s.ctx, expense.ExpenseID, dto.PayExpenseRequest{
		Amount:        decimal.NewFromInt(30000),
		PaymentMethod: "CASH",
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrOverpayment)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestPartialRefund() {
	expense := s.paidExpense(100000, 100000)
	refund := decimal.NewFromInt(30000)

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockExpenseRepo.On("SaveAdjustment", s.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.AmountPaid.Equal(decimal.NewFromInt(70000)) &&
				e.Status == domain.ExpensePartiallyPaid &&
				e.AccountID != nil
		}),
		mock.MatchedBy(func(adj domain.ExpenseAdjustment) bool {
			return adj.Reason == domain.PartialRefund &&
				adj.PreviousAmountPaid.Equal(decimal.NewFromInt(100000)) &&
				adj.NewAmountPaid.Equal(decimal.NewFromInt(70000)) &&
				adj.AdjustmentDelta.IsZero() &&
				adj.RefundEntryID != nil
		}),
		mock.MatchedBy(func(txns []domain.Transaction) bool {
			return len(txns) == 1 && txns[0].Type == domain.Income && txns[0].Amount.Equal(refund)
		}),
		mock.MatchedBy(func(entries []domain.Entry) bool {
			return len(entries) == 1 && entries[0].AccountID == s.caja.AccountID && entries[0].Amount.Equal(refund)
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[s.caja.AccountID].Equal(refund)
		}),
	).Return(nil).Once()

	updated, err := s.service.PartialRefund(s.ctx, expense.ExpenseID, refund, "Devolución parcial de tela", s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ExpensePartiallyPaid, updated.Status)
	s.True(updated.AmountPaid.Equal(decimal.NewFromInt(70000)))
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestPartialRefundOfEverythingClearsPaymentFields() {
	expense := s.paidExpense(100000, 100000)

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockExpenseRepo.On("SaveAdjustment", s.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.AmountPaid.IsZero() &&
				e.Status == domain.ExpensePending &&
				e.AccountID == nil && e.PaymentMethod == nil && e.PaidAt == nil
		}),
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
	).Return(nil).Once()

	updated, err := s.service.PartialRefund(s.ctx, expense.ExpenseID, decimal.NewFromInt(100000), "Compra anulada", s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ExpensePending, updated.Status)
	s.Nil(updated.AccountID)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestPartialRefundRejectsMoreThanPaid() {
	expense := s.paidExpense(100000, 40000)
	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := s.service.PartialRefund(s.ctx, expense.ExpenseID, decimal.NewFromInt(50000), "demasiado", s.userID)
	s.Require().ErrorIs(err, apperrors.ErrInvalidRefundAmount)
}

func (s *ExpenseServiceTestSuite) TestRevertExpense() {
	expense := s.paidExpense(250000, 250000)

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockExpenseRepo.On("SaveAdjustment", s.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.AmountPaid.IsZero() && e.Status == domain.ExpensePending && e.AccountID == nil
		}),
		mock.MatchedBy(func(adj domain.ExpenseAdjustment) bool {
			return adj.Reason == domain.ErrorReversal &&
				adj.PreviousAmountPaid.Equal(decimal.NewFromInt(250000)) &&
				adj.NewAmountPaid.IsZero() &&
				adj.RefundEntryID != nil
		}),
		mock.MatchedBy(func(txns []domain.Transaction) bool {
			return len(txns) == 1 && txns[0].Type == domain.Income
		}),
		mock.MatchedBy(func(entries []domain.Entry) bool {
			return len(entries) == 1 && entries[0].Amount.Equal(decimal.NewFromInt(250000))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[s.caja.AccountID].Equal(decimal.NewFromInt(250000))
		}),
	).Return(nil).Once()

	updated, err := s.service.RevertExpense(s.ctx, expense.ExpenseID, "Gasto registrado por error", s.userID)

	s.Require().NoError(err)
	s.Equal(domain.ExpensePending, updated.Status)
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestRevertExpenseWithoutPaymentsRejected() {
	expense := s.paidExpense(250000, 0)
	expense.PaymentMethod = nil
	expense.AccountID = nil
	expense.PaidAt = nil

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := s.service.RevertExpense(s.ctx, expense.ExpenseID, "nada que revertir", s.userID)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *ExpenseServiceTestSuite) TestAdjustExpenseAmountCorrection() {
	expense := s.paidExpense(100000, 60000)
	newAmount := decimal.NewFromInt(80000)

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockExpenseRepo.On("SaveAdjustment", s.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.Amount.Equal(newAmount) && e.Status == domain.ExpensePartiallyPaid
		}),
		mock.MatchedBy(func(adj domain.ExpenseAdjustment) bool {
			return adj.Reason == domain.AmountCorrection &&
				adj.PreviousAmount.Equal(decimal.NewFromInt(100000)) &&
				adj.NewAmount.Equal(newAmount) &&
				adj.AdjustmentDelta.Equal(decimal.NewFromInt(-20000)) &&
				adj.RefundEntryID == nil
		}),
		mock.MatchedBy(func(txns []domain.Transaction) bool { return len(txns) == 0 }),
		mock.MatchedBy(func(entries []domain.Entry) bool { return len(entries) == 0 }),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool { return len(changes) == 0 }),
	).Return(nil).Once()

	updated, err := s.service.AdjustExpense(s.ctx, expense.ExpenseID, dto.AdjustExpenseRequest{
		Reason:      "AMOUNT_CORRECTION",
		NewAmount:   &newAmount,
		Description: "La factura llegó por menos",
	}, s.userID)

	s.Require().NoError(err)
	s.True(updated.Amount.Equal(newAmount))
	s.mockExpenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestAdjustExpenseRejectsAmountBelowPaid() {
	expense := s.paidExpense(100000, 60000)
	newAmount := decimal.NewFromInt(50000)

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := s.service.AdjustExpense(s.ctx, expense.ExpenseID, dto.AdjustExpenseRequest{
		Reason:      "AMOUNT_CORRECTION",
		NewAmount:   &newAmount,
		Description: "corrección inválida",
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "SaveAdjustment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestAdjustExpenseAccountCorrectionMovesPayment() {
	expense := s.paidExpense(100000, 100000)
	newMethod := "TRANSFER"

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()
	s.mockAccountRepo.On("FindAccountCodeForPaymentMethod", s.ctx, domain.PaymentTransfer).Return(domain.AccountCodeBanco, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", s.ctx, s.scope, domain.AccountCodeBanco).Return(&s.banco, nil).Once()

	s.mockExpenseRepo.On("SaveAdjustment", s.ctx,
		mock.MatchedBy(func(e domain.Expense) bool {
			return e.AccountID != nil && *e.AccountID == s.banco.AccountID &&
				e.PaymentMethod != nil && *e.PaymentMethod == domain.PaymentTransfer
		}),
		mock.MatchedBy(func(adj domain.ExpenseAdjustment) bool {
			return adj.Reason == domain.AccountCorrection &&
				adj.RefundEntryID != nil && adj.NewPaymentEntryID != nil &&
				adj.AdjustmentDelta.IsZero()
		}),
		mock.MatchedBy(func(txns []domain.Transaction) bool {
			return len(txns) == 1 && txns[0].Type == domain.Transfer && txns[0].Amount.Equal(decimal.NewFromInt(100000))
		}),
		mock.MatchedBy(func(entries []domain.Entry) bool {
			if len(entries) != 2 {
				return false
			}
			return entries[0].AccountID == s.caja.AccountID && entries[0].Amount.Equal(decimal.NewFromInt(100000)) &&
				entries[1].AccountID == s.banco.AccountID && entries[1].Amount.Equal(decimal.NewFromInt(-100000))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[s.caja.AccountID].Equal(decimal.NewFromInt(100000)) &&
				changes[s.banco.AccountID].Equal(decimal.NewFromInt(-100000))
		}),
	).Return(nil).Once()

	updated, err := s.service.AdjustExpense(s.ctx, expense.ExpenseID, dto.AdjustExpenseRequest{
		Reason:           "ACCOUNT_CORRECTION",
		NewPaymentMethod: &newMethod,
		Description:      "Se pagó por transferencia, no en efectivo",
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(s.banco.AccountID, *updated.AccountID)
	s.mockExpenseRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestAdjustExpenseAccountCorrectionNeedsAPayment() {
	expense := s.paidExpense(100000, 0)
	expense.PaymentMethod = nil
	expense.AccountID = nil
	expense.PaidAt = nil
	newMethod := "TRANSFER"

	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := s.service.AdjustExpense(s.ctx, expense.ExpenseID, dto.AdjustExpenseRequest{
		Reason:           "ACCOUNT_CORRECTION",
		NewPaymentMethod: &newMethod,
		Description:      "sin pago",
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *ExpenseServiceTestSuite) TestListAdjustmentsChecksExpenseExists() {
	expenseID := uuid.NewString()
	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, expenseID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ListAdjustments(s.ctx, expenseID)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "ListAdjustmentsByExpenseID", mock.Anything, mock.Anything)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
