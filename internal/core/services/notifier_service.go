package services

import (
	"context"
	"log/slog"

	"github.com/uniformes-app/backoffice/internal/core/domain"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/middleware"
)

// LogNotifier reports business events to the structured log. It stands in for
// a real channel (email, WhatsApp) until one is needed.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

var _ portssvc.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) LowStock(ctx context.Context, inv domain.Inventory) {
	middleware.GetLoggerFromCtx(ctx).Warn("Low stock",
		slog.String("school_id", inv.SchoolID),
		slog.String("product_id", inv.ProductID),
		slog.Int64("on_hand", inv.OnHand),
		slog.Int64("reserved", inv.Reserved),
		slog.Int64("threshold", inv.LowStockThreshold),
	)
}

func (n *LogNotifier) OrderStatusChanged(ctx context.Context, order domain.Order) {
	middleware.GetLoggerFromCtx(ctx).Info("Order status changed",
		slog.String("order_id", order.OrderID),
		slog.String("school_id", order.SchoolID),
		slog.String("status", string(order.Status)),
	)
}

func (n *LogNotifier) SaleStatusChanged(ctx context.Context, sale domain.Sale) {
	middleware.GetLoggerFromCtx(ctx).Info("Sale status changed",
		slog.String("sale_id", sale.SaleID),
		slog.String("school_id", sale.SchoolID),
		slog.String("status", string(sale.Status)),
	)
}
