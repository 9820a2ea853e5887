package services_test

import (
	"context"
	"errors"
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

type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo   *MockSaleRepository
	mockSchoolRepo *MockSchoolRepository
	mockTxnSvc     *MockTransactionSvc
	mockNotifier   *MockNotifier
	service        *services.SaleService
	ctx            context.Context

	school domain.School
	userID string
}

func (s *SaleServiceTestSuite) SetupTest() {
	s.mockSaleRepo = new(MockSaleRepository)
	s.mockSchoolRepo = new(MockSchoolRepository)
	s.mockTxnSvc = new(MockTransactionSvc)
	s.mockNotifier = new(MockNotifier)
	s.service = services.NewSaleService(s.mockSaleRepo, s.mockSchoolRepo, s.mockTxnSvc, s.mockNotifier)
	s.ctx = context.Background()

	s.school = domain.School{
		SchoolID: uuid.NewString(),
		Name:     "Colegio La Presentación",
		City:     "Envigado",
		IsActive: true,
	}
	s.userID = uuid.NewString()
}

func (s *SaleServiceTestSuite) sale(status domain.SaleStatus) *domain.Sale {
	return &domain.Sale{
		SaleID:     uuid.NewString(),
		SchoolID:   s.school.SchoolID,
		ClientName: "Carlos Gómez",
		Status:     status,
		Total:      decimal.NewFromInt(90000),
		AmountPaid: decimal.Zero,
		Items: []domain.SaleItem{
			{
				SaleItemID:        uuid.NewString(),
				ProductID:         "sudadera-talla-8",
				Quantity:          2,
				UnitPrice:         decimal.NewFromInt(45000),
				ReservedFromStock: true,
				QuantityReserved:  2,
			},
		},
	}
}

func (s *SaleServiceTestSuite) TestCreateSaleReservesEveryItem() {
	s.mockSchoolRepo.On("FindSchoolByID", s.ctx, s.school.SchoolID).Return(&s.school, nil).Once()
	s.mockSaleRepo.On("SaveSale", s.ctx, mock.MatchedBy(func(sale domain.Sale) bool {
		if sale.Status != domain.SalePending || len(sale.Items) != 2 {
			return false
		}
		for _, item := range sale.Items {
			if !item.ReservedFromStock || item.QuantityReserved != item.Quantity {
				return false
			}
		}
		// 2 x 45000 + 3 x 20000
		return sale.Total.Equal(decimal.NewFromInt(150000))
	})).Return(nil).Once()

	sale, err := s.service.CreateSale(s.ctx, s.school.SchoolID, dto.CreateSaleRequest{
		ClientName: "Carlos Gómez",
		Items: []dto.SaleItemRequest{
			{ProductID: "sudadera-talla-8", Quantity: 2, UnitPrice: decimal.NewFromInt(45000)},
			{ProductID: "medias-blancas", Quantity: 3, UnitPrice: decimal.NewFromInt(20000)},
		},
	}, s.userID)

	s.Require().NoError(err)
	s.True(sale.Total.Equal(decimal.NewFromInt(150000)))
	s.mockSaleRepo.AssertExpectations(s.T())
}

func (s *SaleServiceTestSuite) TestCreateSaleInsufficientStock() {
	s.mockSchoolRepo.On("FindSchoolByID", s.ctx, s.school.SchoolID).Return(&s.school, nil).Once()
	s.mockSaleRepo.On("SaveSale", s.ctx, mock.Anything).Return(apperrors.ErrInsufficientStock).Once()

	_, err := s.service.CreateSale(s.ctx, s.school.SchoolID, dto.CreateSaleRequest{
		ClientName: "Carlos Gómez",
		Items:      []dto.SaleItemRequest{{ProductID: "sudadera-talla-8", Quantity: 50, UnitPrice: decimal.NewFromInt(45000)}},
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrInsufficientStock)
}

func (s *SaleServiceTestSuite) TestCreateSaleRejectsEmptyItems() {
	s.mockSchoolRepo.On("FindSchoolByID", s.ctx, s.school.SchoolID).Return(&s.school, nil).Once()

	_, err := s.service.CreateSale(s.ctx, s.school.SchoolID, dto.CreateSaleRequest{ClientName: "Cliente"}, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockSaleRepo.AssertNotCalled(s.T(), "SaveSale", mock.Anything, mock.Anything)
}

func (s *SaleServiceTestSuite) TestCompleteSale() {
	sale := s.sale(domain.SalePending)
	s.mockSaleRepo.On("FindSaleByID", s.ctx, sale.SaleID).Return(sale, nil).Once()
	s.mockSaleRepo.On("CompleteSale", s.ctx, mock.MatchedBy(func(sl domain.Sale) bool {
		return sl.SaleID == sale.SaleID
	}), s.userID, mock.Anything).Return(nil).Once()
	s.mockNotifier.On("SaleStatusChanged", s.ctx, mock.MatchedBy(func(sl domain.Sale) bool {
		return sl.Status == domain.SaleCompleted
	})).Once()

	updated, err := s.service.CompleteSale(s.ctx, sale.SaleID, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.SaleCompleted, updated.Status)
	s.mockSaleRepo.AssertExpectations(s.T())
	s.mockNotifier.AssertExpectations(s.T())
}

func (s *SaleServiceTestSuite) TestCompleteSaleOnlyFromPending() {
	sale := s.sale(domain.SaleCancelled)
	s.mockSaleRepo.On("FindSaleByID", s.ctx, sale.SaleID).Return(sale, nil).Once()

	_, err := s.service.CompleteSale(s.ctx, sale.SaleID, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockSaleRepo.AssertNotCalled(s.T(), "CompleteSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *SaleServiceTestSuite) TestCancelSale() {
	sale := s.sale(domain.SalePending)
	s.mockSaleRepo.On("FindSaleByID", s.ctx, sale.SaleID).Return(sale, nil).Once()
	s.mockSaleRepo.On("CancelSale", s.ctx, mock.Anything, s.userID, mock.Anything).Return(nil).Once()
	s.mockNotifier.On("SaleStatusChanged", s.ctx, mock.Anything).Once()

	updated, err := s.service.CancelSale(s.ctx, sale.SaleID, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.SaleCancelled, updated.Status)
	s.mockSaleRepo.AssertExpectations(s.T())
}

func (s *SaleServiceTestSuite) TestCancelCompletedSaleRejected() {
	sale := s.sale(domain.SaleCompleted)
	s.mockSaleRepo.On("FindSaleByID", s.ctx, sale.SaleID).Return(sale, nil).Once()

	_, err := s.service.CancelSale(s.ctx, sale.SaleID, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *SaleServiceTestSuite) TestRecordSalePayment() {
	sale := s.sale(domain.SalePending)
	amount := decimal.NewFromInt(90000)
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Scope:         domain.SchoolScope(sale.SchoolID),
		Type:          domain.Income,
		Amount:        amount,
	}

	s.mockSaleRepo.On("FindSaleByID", s.ctx, sale.SaleID).Return(sale, nil).Once()
	s.mockTxnSvc.On("RecordTransactionSettling", s.ctx,
		domain.SchoolScope(sale.SchoolID),
		mock.MatchedBy(func(req dto.RecordTransactionRequest) bool {
			return req.Type == string(domain.Income) &&
				req.Amount.Equal(amount) &&
				req.SaleID != nil && *req.SaleID == sale.SaleID
		}),
		s.userID, mock.Anything,
	).Return(txn, nil).Once()
	// The paid-amount bump rides on the payment's open transaction.
	s.mockSaleRepo.On("UpdateSaleAmountPaidInTx", s.ctx, mock.Anything, sale.SaleID,
		mock.MatchedBy(func(paid decimal.Decimal) bool { return paid.Equal(amount) }),
		s.userID, mock.Anything,
	).Return(nil).Once()

	got, err := s.service.RecordSalePayment(s.ctx, sale.SaleID, dto.RecordPaymentRequest{
		Amount:        amount,
		PaymentMethod: "NEQUI",
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(txn.TransactionID, got.TransactionID)
	s.mockSaleRepo.AssertExpectations(s.T())
	s.mockTxnSvc.AssertExpectations(s.T())
}

func (s *SaleServiceTestSuite) TestRecordSalePaymentFailedPaidBumpFailsTheWholePayment() {
	sale := s.sale(domain.SalePending)
	amount := decimal.NewFromInt(90000)
	txn := &domain.Transaction{TransactionID: uuid.NewString(), Scope: domain.SchoolScope(sale.SchoolID)}

	s.mockSaleRepo.On("FindSaleByID", s.ctx, sale.SaleID).Return(sale, nil).Once()
	s.mockTxnSvc.On("RecordTransactionSettling", s.ctx, domain.SchoolScope(sale.SchoolID),
		mock.Anything, s.userID, mock.Anything).Return(txn, nil).Once()
	boom := errors.New("sales table unavailable")
	s.mockSaleRepo.On("UpdateSaleAmountPaidInTx", s.ctx, mock.Anything, sale.SaleID,
		mock.Anything, s.userID, mock.Anything).Return(boom).Once()

	_, err := s.service.RecordSalePayment(s.ctx, sale.SaleID, dto.RecordPaymentRequest{
		Amount:        amount,
		PaymentMethod: "CASH",
	}, s.userID)

	s.Require().ErrorIs(err, boom)
}

func (s *SaleServiceTestSuite) TestRecordSalePaymentRejectsOverpayment() {
	sale := s.sale(domain.SalePending)
	sale.AmountPaid = decimal.NewFromInt(50000)

	s.mockSaleRepo.On("FindSaleByID", s.ctx, sale.SaleID).Return(sale, nil).Once()

	_, err := s.service.RecordSalePayment(s.ctx, sale.SaleID, dto.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(50000),
		PaymentMethod: "CASH",
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrOverpayment)
	s.mockTxnSvc.AssertNotCalled(s.T(), "RecordTransactionSettling", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *SaleServiceTestSuite) TestRecordSalePaymentOnCancelledSaleRejected() {
	sale := s.sale(domain.SaleCancelled)
	s.mockSaleRepo.On("FindSaleByID", s.ctx, sale.SaleID).Return(sale, nil).Once()

	_, err := s.service.RecordSalePayment(s.ctx, sale.SaleID, dto.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: "CASH",
	}, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
