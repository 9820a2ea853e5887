package mapping

import (
	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/models"
)

// ToModelOrder converts a domain Order (header only) to a model Order.
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:     d.OrderID,
		SchoolID:    d.SchoolID,
		ClientName:  d.ClientName,
		Status:      string(d.Status),
		Total:       d.Total,
		AmountPaid:  d.AmountPaid,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order (items loaded separately).
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:     m.OrderID,
		SchoolID:    m.SchoolID,
		ClientName:  m.ClientName,
		Status:      domain.OrderStatus(m.Status),
		Total:       m.Total,
		AmountPaid:  m.AmountPaid,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrderItem converts a domain OrderItem to a model OrderItem.
func ToModelOrderItem(d domain.OrderItem) models.OrderItem {
	return models.OrderItem{
		OrderItemID:       d.OrderItemID,
		OrderID:           d.OrderID,
		ProductID:         d.ProductID,
		Quantity:          d.Quantity,
		UnitPrice:         d.UnitPrice,
		ReservedFromStock: d.ReservedFromStock,
		QuantityReserved:  d.QuantityReserved,
	}
}

// ToDomainOrderItem converts a model OrderItem to a domain OrderItem.
func ToDomainOrderItem(m models.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		OrderItemID:       m.OrderItemID,
		OrderID:           m.OrderID,
		ProductID:         m.ProductID,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		ReservedFromStock: m.ReservedFromStock,
		QuantityReserved:  m.QuantityReserved,
	}
}

// ToModelSale converts a domain Sale (header only) to a model Sale.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:      d.SaleID,
		SchoolID:    d.SchoolID,
		ClientName:  d.ClientName,
		Status:      string(d.Status),
		Total:       d.Total,
		AmountPaid:  d.AmountPaid,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale (items loaded separately).
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:      m.SaleID,
		SchoolID:    m.SchoolID,
		ClientName:  m.ClientName,
		Status:      domain.SaleStatus(m.Status),
		Total:       m.Total,
		AmountPaid:  m.AmountPaid,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSaleItem converts a domain SaleItem to a model SaleItem.
func ToModelSaleItem(d domain.SaleItem) models.SaleItem {
	return models.SaleItem{
		SaleItemID:        d.SaleItemID,
		SaleID:            d.SaleID,
		ProductID:         d.ProductID,
		Quantity:          d.Quantity,
		UnitPrice:         d.UnitPrice,
		ReservedFromStock: d.ReservedFromStock,
		QuantityReserved:  d.QuantityReserved,
	}
}

// ToDomainSaleItem converts a model SaleItem to a domain SaleItem.
func ToDomainSaleItem(m models.SaleItem) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID:        m.SaleItemID,
		SaleID:            m.SaleID,
		ProductID:         m.ProductID,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		ReservedFromStock: m.ReservedFromStock,
		QuantityReserved:  m.QuantityReserved,
	}
}
