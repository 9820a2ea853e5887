package services

import (
	"context"

	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// InventorySvcFacade manages per-product per-school stock and reservations.
type InventorySvcFacade interface {
	// CreateInventory registers a product's stock row for a school.
	CreateInventory(ctx context.Context, schoolID string, req dto.CreateInventoryRequest, userID string) (*domain.Inventory, error)

	GetInventory(ctx context.Context, schoolID string, productID string) (*domain.Inventory, error)
	ListInventory(ctx context.Context, schoolID string, limit int, offset int) ([]domain.Inventory, error)

	// CheckAvailability reports whether quantity can still be reserved.
	CheckAvailability(ctx context.Context, schoolID string, productID string, quantity int64) (bool, error)

	// Reserve places a provisional hold on stock.
	Reserve(ctx context.Context, schoolID string, productID string, quantity int64, userID string) error

	// Release returns previously reserved stock, clamped at zero.
	Release(ctx context.Context, schoolID string, productID string, quantity int64, userID string) error

	// Fulfill removes stock that physically left, consuming its reservation.
	Fulfill(ctx context.Context, schoolID string, productID string, quantity int64, userID string) error

	// AdjustStock applies a signed admin correction to on-hand stock.
	AdjustStock(ctx context.Context, schoolID string, productID string, delta int64, userID string) (*domain.Inventory, error)

	// SetLowStockThreshold sets the level below which a low-stock
	// notification fires.
	SetLowStockThreshold(ctx context.Context, schoolID string, productID string, threshold int64, userID string) error
}
