package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was transferred.
type PaymentMethod string

const (
	MethodACH        PaymentMethod = "ACH"
	MethodWire       PaymentMethod = "Wire"
	MethodCheck      PaymentMethod = "Check"
	MethodCreditCard PaymentMethod = "Credit Card"
)

// PaymentMethods lists every known method in display order.
var PaymentMethods = []PaymentMethod{MethodACH, MethodWire, MethodCheck, MethodCreditCard}

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// ParsePaymentMethod accepts a known method by name, ignoring case and
// treating '_' as a space ("credit_card").
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(s), "_", " ")
	for _, known := range PaymentMethods {
		if strings.EqualFold(norm, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// Payment is a received transfer of funds.
type Payment struct {
	PaymentID     string          `json:"payment_id"`
	PayerName     string          `json:"payer_name"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   Date            `json:"payment_date"`
	Method        PaymentMethod   `json:"method"`
	ReferenceNote string          `json:"reference_note,omitempty"`
}
