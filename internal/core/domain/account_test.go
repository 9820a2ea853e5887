package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// The bare names (Expense, ...) belong to the entities; account types carry
// the AccountType prefix.
func TestAccountTypeValues(t *testing.T) {
	assert.Equal(t, domain.AccountType("ASSET"), domain.AccountTypeAsset)
	assert.Equal(t, domain.AccountType("LIABILITY"), domain.AccountTypeLiability)
	assert.Equal(t, domain.AccountType("EQUITY"), domain.AccountTypeEquity)
	assert.Equal(t, domain.AccountType("REVENUE"), domain.AccountTypeRevenue)
	assert.Equal(t, domain.AccountType("EXPENSE"), domain.AccountTypeExpense)

	var e domain.Expense
	assert.Equal(t, domain.ExpenseStatus(""), e.Status)
}
