package domain

import (
	"fmt"
	"strings"
)

// PaymentMethod is the canonical tag for how money moved. Input is normalized
// once by ParsePaymentMethod; business logic only ever sees these values.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentNequi    PaymentMethod = "NEQUI"
	PaymentCard     PaymentMethod = "CARD"
)

// ParsePaymentMethod normalizes a raw payment method string into its canonical
// tag. Comparison is case-insensitive at this boundary only.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(raw))); m {
	case PaymentCash, PaymentTransfer, PaymentNequi, PaymentCard:
		return m, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", raw)
	}
}
