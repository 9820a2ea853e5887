package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

func TestExpenseStatusFor(t *testing.T) {
	amount := decimal.NewFromInt(100000)

	tests := []struct {
		name       string
		amountPaid decimal.Decimal
		want       domain.ExpenseStatus
	}{
		{"nothing paid", decimal.Zero, domain.ExpensePending},
		{"negative paid clamps to pending", decimal.NewFromInt(-1), domain.ExpensePending},
		{"partially paid", decimal.NewFromInt(30000), domain.ExpensePartiallyPaid},
		{"almost paid", decimal.NewFromInt(99999), domain.ExpensePartiallyPaid},
		{"exactly paid", decimal.NewFromInt(100000), domain.ExpensePaid},
		{"overpaid still reads paid", decimal.NewFromInt(100001), domain.ExpensePaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ExpenseStatusFor(amount, tt.amountPaid))
		})
	}
}
