package services_test

import (
	"context"
	"errors"
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

type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo  *MockOrderRepository
	mockSchoolRepo *MockSchoolRepository
	mockTxnSvc     *MockTransactionSvc
	mockNotifier   *MockNotifier
	service        *services.OrderService
	ctx            context.Context

	school domain.School
	userID string
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.mockOrderRepo = new(MockOrderRepository)
	s.mockSchoolRepo = new(MockSchoolRepository)
	s.mockTxnSvc = new(MockTransactionSvc)
	s.mockNotifier = new(MockNotifier)
	s.service = services.NewOrderService(s.mockOrderRepo, s.mockSchoolRepo, s.mockTxnSvc, s.mockNotifier)
	s.ctx = context.Background()

	s.school = domain.School{
		SchoolID: uuid.NewString(),
		Name:     "Colegio San José",
		City:     "Medellín",
		IsActive: true,
	}
	s.userID = uuid.NewString()
}

func (s *OrderServiceTestSuite) order(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		OrderID:    uuid.NewString(),
		SchoolID:   s.school.SchoolID,
		ClientName: "María Pérez",
		Status:     status,
		Total:      decimal.NewFromInt(260000),
		AmountPaid: decimal.Zero,
		Items: []domain.OrderItem{
			{
				OrderItemID:       uuid.NewString(),
				ProductID:         "camisa-talla-10",
				Quantity:          2,
				UnitPrice:         decimal.NewFromInt(45000),
				ReservedFromStock: true,
				QuantityReserved:  2,
			},
			{
				OrderItemID: uuid.NewString(),
				ProductID:   "chaqueta-bordada",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(170000),
			},
		},
	}
}

func (s *OrderServiceTestSuite) TestCreateOrder() {
	s.mockSchoolRepo.On("FindSchoolByID", s.ctx, s.school.SchoolID).Return(&s.school, nil).Once()
	s.mockOrderRepo.On("SaveOrder", s.ctx, mock.MatchedBy(func(o domain.Order) bool {
		if o.Status != domain.OrderPending || len(o.Items) != 2 {
			return false
		}
		// 2 x 45000 + 1 x 170000
		if !o.Total.Equal(decimal.NewFromInt(260000)) {
			return false
		}
		stocked, madeToOrder := o.Items[0], o.Items[1]
		return stocked.ReservedFromStock && stocked.QuantityReserved == 2 &&
			!madeToOrder.ReservedFromStock && madeToOrder.QuantityReserved == 0
	})).Return(nil).Once()

	order, err := s.service.CreateOrder(s.ctx, s.school.SchoolID, dto.CreateOrderRequest{
		ClientName: "María Pérez",
		Items: []dto.OrderItemRequest{
			{ProductID: "camisa-talla-10", Quantity: 2, UnitPrice: decimal.NewFromInt(45000)},
			{ProductID: "chaqueta-bordada", Quantity: 1, UnitPrice: decimal.NewFromInt(170000), MadeToOrder: true},
		},
	}, s.userID)

	s.Require().NoError(err)
	s.True(order.Total.Equal(decimal.NewFromInt(260000)))
	s.mockOrderRepo.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestCreateOrderUnknownSchool() {
	schoolID := uuid.NewString()
	s.mockSchoolRepo.On("FindSchoolByID", s.ctx, schoolID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateOrder(s.ctx, schoolID, dto.CreateOrderRequest{
		ClientName: "Cliente",
		Items:      []dto.OrderItemRequest{{ProductID: "x", Quantity: 1, UnitPrice: decimal.NewFromInt(1000)}},
	}, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.mockOrderRepo.AssertNotCalled(s.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestCreateOrderRejectsEmptyItems() {
	s.mockSchoolRepo.On("FindSchoolByID", s.ctx, s.school.SchoolID).Return(&s.school, nil).Once()

	_, err := s.service.CreateOrder(s.ctx, s.school.SchoolID, dto.CreateOrderRequest{ClientName: "Cliente"}, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *OrderServiceTestSuite) TestCreateOrderRejectsBadItem() {
	s.mockSchoolRepo.On("FindSchoolByID", s.ctx, s.school.SchoolID).Return(&s.school, nil).Twice()

	_, err := s.service.CreateOrder(s.ctx, s.school.SchoolID, dto.CreateOrderRequest{
		ClientName: "Cliente",
		Items:      []dto.OrderItemRequest{{ProductID: "x", Quantity: 0, UnitPrice: decimal.NewFromInt(1000)}},
	}, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.CreateOrder(s.ctx, s.school.SchoolID, dto.CreateOrderRequest{
		ClientName: "Cliente",
		Items:      []dto.OrderItemRequest{{ProductID: "x", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}},
	}, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *OrderServiceTestSuite) TestMarkOrderReady() {
	order := s.order(domain.OrderPending)
	s.mockOrderRepo.On("FindOrderByID", s.ctx, order.OrderID).Return(order, nil).Once()
	s.mockOrderRepo.On("UpdateOrderStatus", s.ctx, order.OrderID, domain.OrderReady, s.userID, mock.Anything).Return(nil).Once()
	s.mockNotifier.On("OrderStatusChanged", s.ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.Status == domain.OrderReady
	})).Once()

	updated, err := s.service.MarkOrderReady(s.ctx, order.OrderID, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.OrderReady, updated.Status)
	s.mockOrderRepo.AssertExpectations(s.T())
	s.mockNotifier.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestMarkOrderReadyOnlyFromPending() {
	order := s.order(domain.OrderDelivered)
	s.mockOrderRepo.On("FindOrderByID", s.ctx, order.OrderID).Return(order, nil).Once()

	_, err := s.service.MarkOrderReady(s.ctx, order.OrderID, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockOrderRepo.AssertNotCalled(s.T(), "UpdateOrderStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestDeliverOrder() {
	order := s.order(domain.OrderReady)
	s.mockOrderRepo.On("FindOrderByID", s.ctx, order.OrderID).Return(order, nil).Once()
	s.mockOrderRepo.On("DeliverOrder", s.ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.OrderID == order.OrderID
	}), s.userID, mock.Anything).Return(nil).Once()
	s.mockNotifier.On("OrderStatusChanged", s.ctx, mock.Anything).Once()

	updated, err := s.service.DeliverOrder(s.ctx, order.OrderID, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.OrderDelivered, updated.Status)
	s.mockOrderRepo.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestDeliverCancelledOrderRejected() {
	order := s.order(domain.OrderCancelled)
	s.mockOrderRepo.On("FindOrderByID", s.ctx, order.OrderID).Return(order, nil).Once()

	_, err := s.service.DeliverOrder(s.ctx, order.OrderID, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *OrderServiceTestSuite) TestCancelOrder() {
	order := s.order(domain.OrderPending)
	s.mockOrderRepo.On("FindOrderByID", s.ctx, order.OrderID).Return(order, nil).Once()
	s.mockOrderRepo.On("CancelOrder", s.ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.OrderID == order.OrderID
	}), s.userID, mock.Anything).Return(nil).Once()
	s.mockNotifier.On("OrderStatusChanged", s.ctx, mock.Anything).Once()

	updated, err := s.service.CancelOrder(s.ctx, order.OrderID, s.userID)
	s.Require().NoError(err)
	s.Equal(domain.OrderCancelled, updated.Status)
	s.mockOrderRepo.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestCancelDeliveredOrderRejected() {
	order := s.order(domain.OrderDelivered)
	s.mockOrderRepo.On("FindOrderByID", s.ctx, order.OrderID).Return(order, nil).Once()

	_, err := s.service.CancelOrder(s.ctx, order.OrderID, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockOrderRepo.AssertNotCalled(s.T(), "CancelOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestRecordOrderPayment() {
	order := s.order(domain.OrderPending)
	amount := decimal.NewFromInt(100000)
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Scope:         domain.SchoolScope(order.SchoolID),
		Type:          domain.Income,
		Amount:        amount,
		OccurredAt:    time.Now(),
	}

	s.mockOrderRepo.On("FindOrderByID", s.ctx, order.OrderID).Return(order, nil).Once()
	s.mockTxnSvc.On("RecordTransactionSettling", s.ctx,
		domain.SchoolScope(order.SchoolID),
		mock.MatchedBy(func(req dto.RecordTransactionRequest) bool {
			return req.Type == string(domain.Income) &&
				req.Amount.Equal(amount) &&
				req.PaymentMethod == "CASH" &&
				req.OrderID != nil && *req.OrderID == order.OrderID
		}),
		s.userID, mock.Anything,
	).Return(txn, nil).Once()
	// The paid-amount bump rides on the payment's open transaction.
	s.mockOrderRepo.On("UpdateOrderAmountPaidInTx", s.ctx, mock.Anything, order.OrderID,
		mock.MatchedBy(func(paid decimal.Decimal) bool { return paid.Equal(amount) }),
		s.userID, mock.Anything,
	).Return(nil).Once()

	got, err := s.service.RecordOrderPayment(s.ctx, order.OrderID, dto.RecordPaymentRequest{
		Amount:        amount,
		PaymentMethod: "CASH",
	}, s.userID)

	s.Require().NoError(err)
	s.Equal(txn.TransactionID, got.TransactionID)
	s.mockOrderRepo.AssertExpectations(s.T())
	s.mockTxnSvc.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestRecordOrderPaymentFailedPaidBumpFailsTheWholePayment() {
	order := s.order(domain.OrderPending)
	amount := decimal.NewFromInt(100000)
	txn := &domain.Transaction{TransactionID: uuid.NewString(), Scope: domain.SchoolScope(order.SchoolID)}

	s.mockOrderRepo.On("FindOrderByID", s.ctx, order.OrderID).Return(order, nil).Once()
	s.mockTxnSvc.On("RecordTransactionSettling", s.ctx, domain.SchoolScope(order.SchoolID),
		mock.Anything, s.userID, mock.Anything).Return(txn, nil).Once()
	boom := errors.New("orders table unavailable")
	s.mockOrderRepo.On("UpdateOrderAmountPaidInTx", s.ctx, mock.Anything, order.OrderID,
		mock.Anything, s.userID, mock.Anything).Return(boom).Once()

	_, err := s.service.RecordOrderPayment(s.ctx, order.OrderID, dto.RecordPaymentRequest{
		Amount:        amount,
		PaymentMethod: "CASH",
	}, s.userID)

	s.Require().ErrorIs(err, boom)
}

func (s *OrderServiceTestSuite) TestRecordOrderPaymentRejectsOverpayment() {
	order := s.order(domain.OrderPending)
	order.AmountPaid = decimal.NewFromInt(200000)

	s.mockOrderRepo.On("FindOrderByID", s.ctx, order.OrderID).Return(order, nil).Once()

	_, err := s.service.RecordOrderPayment(s.ctx, order.OrderID, dto.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(100000),
		PaymentMethod: "CASH",
	}, s.userID)

	s.Require().ErrorIs(err, apperrors.ErrOverpayment)
	s.mockTxnSvc.AssertNotCalled(s.T(), "RecordTransactionSettling", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderServiceTestSuite) TestRecordOrderPaymentOnCancelledOrderRejected() {
	order := s.order(domain.OrderCancelled)
	s.mockOrderRepo.On("FindOrderByID", s.ctx, order.OrderID).Return(order, nil).Once()

	_, err := s.service.RecordOrderPayment(s.ctx, order.OrderID, dto.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: "CASH",
	}, s.userID)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
