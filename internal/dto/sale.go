package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// SaleItemRequest is one product line of a new sale. Every sale item comes
// from stock.
type SaleItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateSaleRequest defines the data needed to create a direct sale.
type CreateSaleRequest struct {
	ClientName string            `json:"clientName" binding:"required"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleItemResponse defines the data returned for one sale line.
type SaleItemResponse struct {
	SaleItemID        string          `json:"saleItemID"`
	ProductID         string          `json:"productID"`
	Quantity          int64           `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	ReservedFromStock bool            `json:"reservedFromStock"`
	QuantityReserved  int64           `json:"quantityReserved"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID     string             `json:"saleID"`
	SchoolID   string             `json:"schoolID"`
	ClientName string             `json:"clientName"`
	Status     domain.SaleStatus  `json:"status"`
	Total      decimal.Decimal    `json:"total"`
	AmountPaid decimal.Decimal    `json:"amountPaid"`
	Items      []SaleItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	CreatedBy  string             `json:"createdBy"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemResponse{
			SaleItemID:        it.SaleItemID,
			ProductID:         it.ProductID,
			Quantity:          it.Quantity,
			UnitPrice:         it.UnitPrice,
			ReservedFromStock: it.ReservedFromStock,
			QuantityReserved:  it.QuantityReserved,
		}
	}
	return SaleResponse{
		SaleID:     s.SaleID,
		SchoolID:   s.SchoolID,
		ClientName: s.ClientName,
		Status:     s.Status,
		Total:      s.Total,
		AmountPaid: s.AmountPaid,
		Items:      items,
		CreatedAt:  s.CreatedAt,
		CreatedBy:  s.CreatedBy,
	}
}

// ListSalesParams holds pagination parameters for listing sales.
type ListSalesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListSalesResponse is a page of sales plus the next-page token.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}
