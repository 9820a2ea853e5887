package services

import (
	"context"

	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// OrderSvcFacade orchestrates customer orders: stock reservation on creation,
// precise release on cancellation, fulfillment on delivery, and payment
// recording through the transaction service.
type OrderSvcFacade interface {
	CreateOrder(ctx context.Context, schoolID string, req dto.CreateOrderRequest, userID string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, schoolID string, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error)
	MarkOrderReady(ctx context.Context, orderID string, userID string) (*domain.Order, error)
	DeliverOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error)
	RecordOrderPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, userID string) (*domain.Transaction, error)
}

// SaleSvcFacade orchestrates direct sales with the same reservation and
// payment bookkeeping as orders.
type SaleSvcFacade interface {
	CreateSale(ctx context.Context, schoolID string, req dto.CreateSaleRequest, userID string) (*domain.Sale, error)
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, schoolID string, params dto.ListSalesParams) (*dto.ListSalesResponse, error)
	CompleteSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error)
	CancelSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error)
	RecordSalePayment(ctx context.Context, saleID string, req dto.RecordPaymentRequest, userID string) (*domain.Transaction, error)
}
