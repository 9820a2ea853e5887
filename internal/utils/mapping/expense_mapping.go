package mapping

import (
	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/models"
)

func paymentMethodPtrToString(pm *domain.PaymentMethod) *string {
	if pm == nil {
		return nil
	}
	s := string(*pm)
	return &s
}

func stringPtrToPaymentMethod(s *string) *domain.PaymentMethod {
	if s == nil {
		return nil
	}
	pm := domain.PaymentMethod(*s)
	return &pm
}

// ToModelExpense converts a domain Expense to a model Expense.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:     d.ExpenseID,
		SchoolID:      d.Scope.NullableSchoolID(),
		Category:      string(d.Category),
		Description:   d.Description,
		Amount:        d.Amount,
		AmountPaid:    d.AmountPaid,
		PaymentMethod: paymentMethodPtrToString(d.PaymentMethod),
		AccountID:     d.AccountID,
		PaidAt:        d.PaidAt,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:     m.ExpenseID,
		Scope:         domain.ScopeFromSchoolID(m.SchoolID),
		Category:      domain.ExpenseCategory(m.Category),
		Description:   m.Description,
		Amount:        m.Amount,
		AmountPaid:    m.AmountPaid,
		PaymentMethod: stringPtrToPaymentMethod(m.PaymentMethod),
		AccountID:     m.AccountID,
		PaidAt:        m.PaidAt,
		Status:        domain.ExpenseStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExpenseAdjustment converts a domain ExpenseAdjustment to its model shape.
func ToModelExpenseAdjustment(d domain.ExpenseAdjustment) models.ExpenseAdjustment {
	return models.ExpenseAdjustment{
		AdjustmentID:          d.AdjustmentID,
		ExpenseID:             d.ExpenseID,
		Reason:                string(d.Reason),
		Description:           d.Description,
		PreviousAmount:        d.PreviousAmount,
		PreviousAmountPaid:    d.PreviousAmountPaid,
		PreviousPaymentMethod: paymentMethodPtrToString(d.PreviousPaymentMethod),
		PreviousAccountID:     d.PreviousAccountID,
		NewAmount:             d.NewAmount,
		NewAmountPaid:         d.NewAmountPaid,
		NewPaymentMethod:      paymentMethodPtrToString(d.NewPaymentMethod),
		NewAccountID:          d.NewAccountID,
		AdjustmentDelta:       d.AdjustmentDelta,
		RefundEntryID:         d.RefundEntryID,
		NewPaymentEntryID:     d.NewPaymentEntryID,
		AdjustedBy:            d.AdjustedBy,
		AdjustedAt:            d.AdjustedAt,
	}
}

// ToDomainExpenseAdjustment converts a model ExpenseAdjustment to its domain shape.
func ToDomainExpenseAdjustment(m models.ExpenseAdjustment) domain.ExpenseAdjustment {
	return domain.ExpenseAdjustment{
		AdjustmentID:          m.AdjustmentID,
		ExpenseID:             m.ExpenseID,
		Reason:                domain.AdjustmentReason(m.Reason),
		Description:           m.Description,
		PreviousAmount:        m.PreviousAmount,
		PreviousAmountPaid:    m.PreviousAmountPaid,
		PreviousPaymentMethod: stringPtrToPaymentMethod(m.PreviousPaymentMethod),
		PreviousAccountID:     m.PreviousAccountID,
		NewAmount:             m.NewAmount,
		NewAmountPaid:         m.NewAmountPaid,
		NewPaymentMethod:      stringPtrToPaymentMethod(m.NewPaymentMethod),
		NewAccountID:          m.NewAccountID,
		AdjustmentDelta:       m.AdjustmentDelta,
		RefundEntryID:         m.RefundEntryID,
		NewPaymentEntryID:     m.NewPaymentEntryID,
		AdjustedBy:            m.AdjustedBy,
		AdjustedAt:            m.AdjustedAt,
	}
}
