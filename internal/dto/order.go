package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// OrderItemRequest is one product line of a new order. MadeToOrder items are
// produced on demand and never reserve stock.
type OrderItemRequest struct {
	ProductID   string          `json:"productID" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	MadeToOrder bool            `json:"madeToOrder"`
}

// CreateOrderRequest defines the data needed to create an order.
type CreateOrderRequest struct {
	ClientName string             `json:"clientName" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RecordPaymentRequest records one payment event against a sale or order.
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,paymentmethod"`
}

// OrderItemResponse defines the data returned for one order line.
type OrderItemResponse struct {
	OrderItemID       string          `json:"orderItemID"`
	ProductID         string          `json:"productID"`
	Quantity          int64           `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	ReservedFromStock bool            `json:"reservedFromStock"`
	QuantityReserved  int64           `json:"quantityReserved"`
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	OrderID    string              `json:"orderID"`
	SchoolID   string              `json:"schoolID"`
	ClientName string              `json:"clientName"`
	Status     domain.OrderStatus  `json:"status"`
	Total      decimal.Decimal     `json:"total"`
	AmountPaid decimal.Decimal     `json:"amountPaid"`
	Items      []OrderItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	CreatedBy  string              `json:"createdBy"`
}

// ToOrderResponse converts a domain.Order to OrderResponse.
func ToOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			OrderItemID:       it.OrderItemID,
			ProductID:         it.ProductID,
			Quantity:          it.Quantity,
			UnitPrice:         it.UnitPrice,
			ReservedFromStock: it.ReservedFromStock,
			QuantityReserved:  it.QuantityReserved,
		}
	}
	return OrderResponse{
		OrderID:    o.OrderID,
		SchoolID:   o.SchoolID,
		ClientName: o.ClientName,
		Status:     o.Status,
		Total:      o.Total,
		AmountPaid: o.AmountPaid,
		Items:      items,
		CreatedAt:  o.CreatedAt,
		CreatedBy:  o.CreatedBy,
	}
}

// ListOrdersParams holds pagination parameters for listing orders.
type ListOrdersParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListOrdersResponse is a page of orders plus the next-page token.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}
