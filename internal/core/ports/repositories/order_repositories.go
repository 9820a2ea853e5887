package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// OrderReader defines read operations for order data.
type OrderReader interface {
	// FindOrderByID retrieves an order with its items.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrdersBySchool retrieves a token-paginated list of orders, newest first.
	ListOrdersBySchool(ctx context.Context, schoolID string, limit int, nextToken *string) ([]domain.Order, *string, error)
}

// OrderWriter defines write operations for order data. Creation, cancellation
// and delivery each pair the order mutation with its inventory bookkeeping in
// ONE database transaction.
type OrderWriter interface {
	// SaveOrder persists the order and its items and reserves stock for every
	// item that requests it. Any failed reservation rolls the whole creation
	// back; apperrors.ErrInsufficientStock identifies the cause.
	SaveOrder(ctx context.Context, order domain.Order) error

	// CancelOrder marks the order cancelled and releases exactly the recorded
	// quantity_reserved of every item.
	CancelOrder(ctx context.Context, order domain.Order, userID string, now time.Time) error

	// DeliverOrder marks the order delivered and fulfills the recorded
	// reservations (on-hand and reserved decrement together).
	DeliverOrder(ctx context.Context, order domain.Order, userID string, now time.Time) error

	// UpdateOrderStatus moves the order to a new status without touching stock.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, userID string, now time.Time) error
}

// OrderTransactionSupport defines order writes used inside another
// repository's open transaction, so a payment and the paid-amount bump
// commit together.
type OrderTransactionSupport interface {
	// UpdateOrderAmountPaidInTx records cumulative payments against the order
	// on an open transaction.
	UpdateOrderAmountPaidInTx(ctx context.Context, tx pgx.Tx, orderID string, amountPaid decimal.Decimal, userID string, now time.Time) error
}

// OrderRepositoryFacade combines order repository interfaces.
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
	OrderTransactionSupport
}

// SaleReader defines read operations for sale data.
type SaleReader interface {
	// FindSaleByID retrieves a sale with its items.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSalesBySchool retrieves a token-paginated list of sales, newest first.
	ListSalesBySchool(ctx context.Context, schoolID string, limit int, nextToken *string) ([]domain.Sale, *string, error)
}

// SaleWriter defines write operations for sale data, with the same atomic
// stock bookkeeping as orders.
type SaleWriter interface {
	SaveSale(ctx context.Context, sale domain.Sale) error
	CancelSale(ctx context.Context, sale domain.Sale, userID string, now time.Time) error
	CompleteSale(ctx context.Context, sale domain.Sale, userID string, now time.Time) error
}

// SaleTransactionSupport defines sale writes used inside another repository's
// open transaction.
type SaleTransactionSupport interface {
	// UpdateSaleAmountPaidInTx records cumulative payments against the sale
	// on an open transaction.
	UpdateSaleAmountPaidInTx(ctx context.Context, tx pgx.Tx, saleID string, amountPaid decimal.Decimal, userID string, now time.Time) error
}

// SaleRepositoryFacade combines sale repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
	SaleTransactionSupport
}
