package mapping

import (
	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/models"
)

// ToModelInventory converts a domain Inventory to a model Inventory.
func ToModelInventory(d domain.Inventory) models.Inventory {
	return models.Inventory{
		InventoryID:       d.InventoryID,
		SchoolID:          d.SchoolID,
		ProductID:         d.ProductID,
		OnHand:            d.OnHand,
		Reserved:          d.Reserved,
		LowStockThreshold: d.LowStockThreshold,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventory converts a model Inventory to a domain Inventory.
func ToDomainInventory(m models.Inventory) domain.Inventory {
	return domain.Inventory{
		InventoryID:       m.InventoryID,
		SchoolID:          m.SchoolID,
		ProductID:         m.ProductID,
		OnHand:            m.OnHand,
		Reserved:          m.Reserved,
		LowStockThreshold: m.LowStockThreshold,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
