package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Options tunes classification and the payer-name heuristic.
type Options struct {
	// Tolerance is the largest difference still classified as Matched.
	// Amounts are compared at currency precision (two places).
	Tolerance decimal.Decimal
	// MinPlausibleRatio and MaxPlausibleRatio bound payment/amount-due for
	// an invoice to be a heuristic candidate.
	MinPlausibleRatio decimal.Decimal
	MaxPlausibleRatio decimal.Decimal
}

// DefaultOptions returns a one-cent tolerance and a 30%..110% heuristic window.
func DefaultOptions() Options {
	return Options{
		Tolerance:         decimal.New(1, -2),
		MinPlausibleRatio: decimal.New(30, -2),
		MaxPlausibleRatio: decimal.New(110, -2),
	}
}

// Validate reports options that would make classification meaningless.
func (o Options) Validate() error {
	if o.Tolerance.IsNegative() {
		return fmt.Errorf("tolerance %s must not be negative", o.Tolerance)
	}
	if o.MinPlausibleRatio.IsNegative() {
		return fmt.Errorf("min plausible ratio %s must not be negative", o.MinPlausibleRatio)
	}
	if o.MaxPlausibleRatio.LessThan(o.MinPlausibleRatio) {
		return fmt.Errorf("max plausible ratio %s is below min plausible ratio %s", o.MaxPlausibleRatio, o.MinPlausibleRatio)
	}
	return nil
}
