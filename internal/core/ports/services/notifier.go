package services

import (
	"context"

	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// Notifier is informed of business events that someone may want to act on.
// Implementations must be cheap and non-blocking; callers fire and forget and
// never fail an operation over a notification.
type Notifier interface {
	LowStock(ctx context.Context, inventory domain.Inventory)
	OrderStatusChanged(ctx context.Context, order domain.Order)
	SaleStatusChanged(ctx context.Context, sale domain.Sale)
}
