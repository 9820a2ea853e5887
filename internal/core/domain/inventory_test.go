package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uniformes-app/backoffice/internal/core/domain"
)

func TestInventoryAvailable(t *testing.T) {
	inv := domain.Inventory{OnHand: 10, Reserved: 3}
	assert.Equal(t, int64(7), inv.Available())

	fully := domain.Inventory{OnHand: 5, Reserved: 5}
	assert.Equal(t, int64(0), fully.Available())
}

func TestInventoryIsLowStock(t *testing.T) {
	assert.True(t, domain.Inventory{OnHand: 10, Reserved: 6, LowStockThreshold: 5}.IsLowStock())
	assert.True(t, domain.Inventory{OnHand: 5, Reserved: 0, LowStockThreshold: 5}.IsLowStock())
	assert.False(t, domain.Inventory{OnHand: 10, Reserved: 0, LowStockThreshold: 5}.IsLowStock())

	// Threshold zero disables the alert entirely.
	assert.False(t, domain.Inventory{OnHand: 0, Reserved: 0, LowStockThreshold: 0}.IsLowStock())
}

func TestParsePaymentMethod(t *testing.T) {
	for raw, want := range map[string]domain.PaymentMethod{
		"CASH":     domain.PaymentCash,
		"cash":     domain.PaymentCash,
		" nequi ":  domain.PaymentNequi,
		"Transfer": domain.PaymentTransfer,
		"CARD":     domain.PaymentCard,
	} {
		got, err := domain.ParsePaymentMethod(raw)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := domain.ParsePaymentMethod("CHEQUE")
	assert.Error(t, err)
}
