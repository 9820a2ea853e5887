package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
	"github.com/uniformes-app/backoffice/internal/middleware"
)

// OrderService orchestrates customer orders (encargos). Creation reserves
// stock for every item that comes from stock, all-or-nothing; cancellation
// releases exactly what was recorded; delivery fulfills it. Payments go
// through the transaction service so every peso lands in the ledger.
type OrderService struct {
	orderRepo      portsrepo.OrderRepositoryFacade
	schoolRepo     portsrepo.SchoolRepositoryFacade
	transactionSvc portssvc.TransactionSvcFacade
	notifier       portssvc.Notifier
}

func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, schoolRepo portsrepo.SchoolRepositoryFacade, transactionSvc portssvc.TransactionSvcFacade, notifier portssvc.Notifier) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		schoolRepo:     schoolRepo,
		transactionSvc: transactionSvc,
		notifier:       notifier,
	}
}

// Ensure OrderService implements the facade.
var _ portssvc.OrderSvcFacade = (*OrderService)(nil)

func (s *OrderService) CreateOrder(ctx context.Context, schoolID string, req dto.CreateOrderRequest, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.schoolRepo.FindSchoolByID(ctx, schoolID); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", apperrors.ErrValidation)
	}

	now := time.Now()
	order := domain.Order{
		OrderID:     uuid.NewString(),
		SchoolID:    schoolID,
		ClientName:  req.ClientName,
		Status:      domain.OrderPending,
		AmountPaid:  decimal.Zero,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	total := decimal.Zero
	for _, itemReq := range req.Items {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", apperrors.ErrValidation)
		}
		if itemReq.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item unit price cannot be negative", apperrors.ErrValidation)
		}

		item := domain.OrderItem{
			OrderItemID:       uuid.NewString(),
			OrderID:           order.OrderID,
			ProductID:         itemReq.ProductID,
			Quantity:          itemReq.Quantity,
			UnitPrice:         itemReq.UnitPrice,
			ReservedFromStock: !itemReq.MadeToOrder,
		}
		if item.ReservedFromStock {
			item.QuantityReserved = item.Quantity
		}
		order.Items = append(order.Items, item)
		total = total.Add(itemReq.UnitPrice.Mul(decimal.NewFromInt(itemReq.Quantity)))
	}
	order.Total = total

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		logger.Error("Failed to save order", slog.String("error", err.Error()), slog.String("order_id", order.OrderID))
		return nil, err
	}

	logger.Info("Order created",
		slog.String("order_id", order.OrderID),
		slog.String("school_id", schoolID),
		slog.Int("items", len(order.Items)),
		slog.String("total", total.String()),
	)
	return &order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

func (s *OrderService) ListOrders(ctx context.Context, schoolID string, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error) {
	orders, nextToken, err := s.orderRepo.ListOrdersBySchool(ctx, schoolID, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list orders", slog.String("error", err.Error()), slog.String("school_id", schoolID))
		return nil, err
	}

	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = dto.ToOrderResponse(&orders[i])
	}
	return &dto.ListOrdersResponse{Orders: responses, NextToken: nextToken}, nil
}

// MarkOrderReady moves a pending order to ready. No stock moves.
func (s *OrderService) MarkOrderReady(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderPending {
		return nil, fmt.Errorf("%w: order %s is %s, only pending orders can become ready", apperrors.ErrConflict, orderID, order.Status)
	}

	now := time.Now()
	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, domain.OrderReady, userID, now); err != nil {
		return nil, err
	}
	order.Status = domain.OrderReady
	order.Touch(userID, now)

	s.notifier.OrderStatusChanged(ctx, *order)
	return order, nil
}

// DeliverOrder marks the order delivered and consumes its reservations.
func (s *OrderService) DeliverOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderPending && order.Status != domain.OrderReady {
		return nil, fmt.Errorf("%w: order %s is %s and cannot be delivered", apperrors.ErrConflict, orderID, order.Status)
	}

	now := time.Now()
	if err := s.orderRepo.DeliverOrder(ctx, *order, userID, now); err != nil {
		logger.Error("Failed to deliver order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, err
	}
	order.Status = domain.OrderDelivered
	order.Touch(userID, now)

	logger.Info("Order delivered", slog.String("order_id", orderID))
	s.notifier.OrderStatusChanged(ctx, *order)
	return order, nil
}

// CancelOrder marks the order cancelled and releases exactly the stock its
// items recorded at creation time.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderDelivered || order.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: order %s is %s and cannot be cancelled", apperrors.ErrConflict, orderID, order.Status)
	}

	now := time.Now()
	if err := s.orderRepo.CancelOrder(ctx, *order, userID, now); err != nil {
		logger.Error("Failed to cancel order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, err
	}
	order.Status = domain.OrderCancelled
	order.Touch(userID, now)

	logger.Info("Order cancelled", slog.String("order_id", orderID))
	s.notifier.OrderStatusChanged(ctx, *order)
	return order, nil
}

// RecordOrderPayment records an income against the order's school ledger and
// bumps the order's cumulative paid amount.
func (s *OrderService) RecordOrderPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: order %s is cancelled", apperrors.ErrConflict, orderID)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	newPaid := order.AmountPaid.Add(req.Amount)
	if newPaid.GreaterThan(order.Total) {
		return nil, fmt.Errorf("%w: paying %s would exceed the order total %s", apperrors.ErrOverpayment, req.Amount, order.Total)
	}

	// The paid-amount bump settles on the same database transaction as the
	// payment, so neither can land without the other.
	now := time.Now()
	txn, err := s.transactionSvc.RecordTransactionSettling(ctx, domain.SchoolScope(order.SchoolID), dto.RecordTransactionRequest{
		Type:          string(domain.Income),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		OrderID:       &order.OrderID,
		Description:   fmt.Sprintf("Payment for order of %s", order.ClientName),
	}, userID, func(ctx context.Context, tx pgx.Tx) error {
		return s.orderRepo.UpdateOrderAmountPaidInTx(ctx, tx, orderID, newPaid, userID, now)
	})
	if err != nil {
		logger.Error("Failed to record order payment", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, err
	}

	logger.Info("Order payment recorded", slog.String("order_id", orderID), slog.String("amount", req.Amount.String()))
	return txn, nil
}
