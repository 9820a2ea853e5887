package mapping

import (
	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:        d.TransactionID,
		SchoolID:             d.Scope.NullableSchoolID(),
		TransactionType:      models.TransactionType(d.Type),
		Amount:               d.Amount,
		PaymentMethod:        models.PaymentMethod(d.PaymentMethod),
		AccountID:            d.AccountID,
		DestinationAccountID: d.DestinationAccountID,
		SaleID:               d.SaleID,
		OrderID:              d.OrderID,
		ExpenseID:            d.ExpenseID,
		Description:          d.Description,
		OccurredAt:           d.OccurredAt,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		Scope:                domain.ScopeFromSchoolID(m.SchoolID),
		Type:                 domain.TransactionType(m.TransactionType),
		Amount:               m.Amount,
		PaymentMethod:        domain.PaymentMethod(m.PaymentMethod),
		AccountID:            m.AccountID,
		DestinationAccountID: m.DestinationAccountID,
		SaleID:               m.SaleID,
		OrderID:              m.OrderID,
		ExpenseID:            m.ExpenseID,
		Description:          m.Description,
		OccurredAt:           m.OccurredAt,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}
