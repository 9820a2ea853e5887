package dto

import (
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// CreateInventoryRequest registers stock for one product at a school.
type CreateInventoryRequest struct {
	ProductID         string `json:"productID" binding:"required"`
	OnHand            int64  `json:"onHand" binding:"min=0"`
	LowStockThreshold int64  `json:"lowStockThreshold" binding:"min=0"`
}

// AdjustStockRequest applies a signed admin correction to on-hand stock.
type AdjustStockRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

// ReservationRequest reserves, releases or fulfills a quantity of stock.
type ReservationRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// LowStockThresholdRequest sets the low-stock notification level.
type LowStockThresholdRequest struct {
	Threshold int64 `json:"threshold" binding:"min=0"`
}

// InventoryResponse defines the data returned for one stock row.
type InventoryResponse struct {
	InventoryID       string `json:"inventoryID"`
	SchoolID          string `json:"schoolID"`
	ProductID         string `json:"productID"`
	OnHand            int64  `json:"onHand"`
	Reserved          int64  `json:"reserved"`
	Available         int64  `json:"available"`
	LowStockThreshold int64  `json:"lowStockThreshold"`
}

// ToInventoryResponse converts a domain.Inventory to InventoryResponse.
func ToInventoryResponse(inv *domain.Inventory) InventoryResponse {
	return InventoryResponse{
		InventoryID:       inv.InventoryID,
		SchoolID:          inv.SchoolID,
		ProductID:         inv.ProductID,
		OnHand:            inv.OnHand,
		Reserved:          inv.Reserved,
		Available:         inv.Available(),
		LowStockThreshold: inv.LowStockThreshold,
	}
}

// AvailabilityResponse answers a stock availability check.
type AvailabilityResponse struct {
	ProductID string `json:"productID"`
	Quantity  int64  `json:"quantity"`
	Available bool   `json:"available"`
}
