package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// InventoryReader defines read operations for inventory data.
type InventoryReader interface {
	// FindInventory retrieves the stock row for one product at one school.
	FindInventory(ctx context.Context, schoolID string, productID string) (*domain.Inventory, error)

	// ListInventoryBySchool retrieves a paginated list of stock rows.
	ListInventoryBySchool(ctx context.Context, schoolID string, limit int, offset int) ([]domain.Inventory, error)
}

// InventoryWriter defines write operations for inventory data. All stock
// mutations are single guarded UPDATE statements: the invariant check lives
// in the WHERE clause, so concurrent callers cannot produce negative stock.
type InventoryWriter interface {
	// SaveInventory persists a new stock row.
	SaveInventory(ctx context.Context, inventory domain.Inventory) error

	// Reserve increments reserved by quantity; apperrors.ErrInsufficientStock
	// when available stock is short.
	Reserve(ctx context.Context, schoolID, productID string, quantity int64, userID string, now time.Time) error

	// Release decrements reserved by quantity, clamped at zero.
	Release(ctx context.Context, schoolID, productID string, quantity int64, userID string, now time.Time) error

	// Fulfill decrements on-hand and reserved together by quantity.
	Fulfill(ctx context.Context, schoolID, productID string, quantity int64, userID string, now time.Time) error

	// AdjustOnHand applies a signed admin correction to on-hand stock;
	// apperrors.ErrNegativeStock when it would undercut reservations.
	AdjustOnHand(ctx context.Context, schoolID, productID string, delta int64, userID string, now time.Time) error

	// SetLowStockThreshold updates the notification threshold.
	SetLowStockThreshold(ctx context.Context, schoolID, productID string, threshold int64, userID string, now time.Time) error
}

// InventoryTransactionSupport defines reservation operations used inside
// another repository's database transaction (order/sale creation spans many
// products atomically).
type InventoryTransactionSupport interface {
	ReserveInTx(ctx context.Context, tx pgx.Tx, schoolID, productID string, quantity int64, userID string, now time.Time) error
	ReleaseInTx(ctx context.Context, tx pgx.Tx, schoolID, productID string, quantity int64, userID string, now time.Time) error
	FulfillInTx(ctx context.Context, tx pgx.Tx, schoolID, productID string, quantity int64, userID string, now time.Time) error
}

// InventoryRepositoryFacade combines inventory repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
	InventoryTransactionSupport
}
