package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
	"github.com/uniformes-app/backoffice/internal/middleware"
)

// InventoryService manages per-product per-school stock. The hard invariant
// (never reserve more than is on hand) is enforced by the repository's
// guarded updates; this layer validates input and raises low-stock alerts.
type InventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	notifier      portssvc.Notifier
}

func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, notifier portssvc.Notifier) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		notifier:      notifier,
	}
}

// Ensure InventoryService implements the facade.
var _ portssvc.InventorySvcFacade = (*InventoryService)(nil)

func (s *InventoryService) CreateInventory(ctx context.Context, schoolID string, req dto.CreateInventoryRequest, userID string) (*domain.Inventory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OnHand < 0 || req.LowStockThreshold < 0 {
		return nil, fmt.Errorf("%w: stock quantities cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	inventory := domain.Inventory{
		InventoryID:       uuid.NewString(),
		SchoolID:          schoolID,
		ProductID:         req.ProductID,
		OnHand:            req.OnHand,
		Reserved:          0,
		LowStockThreshold: req.LowStockThreshold,
		AuditFields:       domain.NewAuditFields(userID, now),
	}

	if err := s.inventoryRepo.SaveInventory(ctx, inventory); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save inventory", slog.String("error", err.Error()), slog.String("product_id", req.ProductID))
		}
		return nil, err
	}

	logger.Info("Inventory created", slog.String("product_id", req.ProductID), slog.String("school_id", schoolID), slog.Int64("on_hand", req.OnHand))
	return &inventory, nil
}

func (s *InventoryService) GetInventory(ctx context.Context, schoolID string, productID string) (*domain.Inventory, error) {
	return s.inventoryRepo.FindInventory(ctx, schoolID, productID)
}

func (s *InventoryService) ListInventory(ctx context.Context, schoolID string, limit int, offset int) ([]domain.Inventory, error) {
	return s.inventoryRepo.ListInventoryBySchool(ctx, schoolID, limit, offset)
}

// CheckAvailability reports whether quantity can still be reserved.
func (s *InventoryService) CheckAvailability(ctx context.Context, schoolID string, productID string, quantity int64) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	inventory, err := s.inventoryRepo.FindInventory(ctx, schoolID, productID)
	if err != nil {
		return false, err
	}
	return inventory.Available() >= quantity, nil
}

// checkLowStock fires the low-stock notification when the mutation left
// available stock at or below the threshold. Never fails the operation.
func (s *InventoryService) checkLowStock(ctx context.Context, schoolID, productID string) {
	inventory, err := s.inventoryRepo.FindInventory(ctx, schoolID, productID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to check low stock", slog.String("error", err.Error()), slog.String("product_id", productID))
		return
	}
	if inventory.IsLowStock() {
		s.notifier.LowStock(ctx, *inventory)
	}
}

// Reserve places a provisional hold on stock.
func (s *InventoryService) Reserve(ctx context.Context, schoolID string, productID string, quantity int64, userID string) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if err := s.inventoryRepo.Reserve(ctx, schoolID, productID, quantity, userID, time.Now()); err != nil {
		return err
	}
	s.checkLowStock(ctx, schoolID, productID)
	return nil
}

// Release returns previously reserved stock, clamped at zero.
func (s *InventoryService) Release(ctx context.Context, schoolID string, productID string, quantity int64, userID string) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	return s.inventoryRepo.Release(ctx, schoolID, productID, quantity, userID, time.Now())
}

// Fulfill removes stock that physically left, consuming its reservation.
func (s *InventoryService) Fulfill(ctx context.Context, schoolID string, productID string, quantity int64, userID string) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if err := s.inventoryRepo.Fulfill(ctx, schoolID, productID, quantity, userID, time.Now()); err != nil {
		return err
	}
	s.checkLowStock(ctx, schoolID, productID)
	return nil
}

// AdjustStock applies a signed admin correction to on-hand stock.
func (s *InventoryService) AdjustStock(ctx context.Context, schoolID string, productID string, delta int64, userID string) (*domain.Inventory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if delta == 0 {
		return nil, fmt.Errorf("%w: adjustment delta cannot be zero", apperrors.ErrValidation)
	}
	if err := s.inventoryRepo.AdjustOnHand(ctx, schoolID, productID, delta, userID, time.Now()); err != nil {
		return nil, err
	}

	logger.Info("Stock adjusted", slog.String("product_id", productID), slog.String("school_id", schoolID), slog.Int64("delta", delta))

	if delta < 0 {
		s.checkLowStock(ctx, schoolID, productID)
	}
	return s.inventoryRepo.FindInventory(ctx, schoolID, productID)
}

// SetLowStockThreshold sets the level at which the low-stock alert fires.
func (s *InventoryService) SetLowStockThreshold(ctx context.Context, schoolID string, productID string, threshold int64, userID string) error {
	if threshold < 0 {
		return fmt.Errorf("%w: threshold cannot be negative", apperrors.ErrValidation)
	}
	return s.inventoryRepo.SetLowStockThreshold(ctx, schoolID, productID, threshold, userID, time.Now())
}
