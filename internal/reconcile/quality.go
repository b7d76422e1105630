package reconcile

import (
	"fmt"

	"github.com/cleared-dev/payrecon/internal/id"
	"github.com/cleared-dev/payrecon/internal/model"
)

// checkPayment returns data-quality issues for a single payment. None of
// them stop the payment from being reported.
func checkPayment(p model.Payment) []model.Issue {
	var issues []model.Issue

	if id.Normalize(p.PaymentID) == "" {
		issues = append(issues, model.Issue{
			Code:    model.IssueMissingPaymentID,
			Message: "payment has no identifier",
		})
	}

	if p.Amount.IsNegative() {
		issues = append(issues, model.Issue{
			Code:    model.IssueNegativeAmount,
			Message: fmt.Sprintf("payment amount %s is negative", p.Amount.String()),
		})
	} else if !p.Amount.Equal(p.Amount.Round(2)) {
		issues = append(issues, model.Issue{
			Code:    model.IssueAmountPrecision,
			Message: fmt.Sprintf("payment amount %s has more than 2 decimal places", p.Amount.String()),
		})
	}

	if !p.Method.Valid() {
		issues = append(issues, model.Issue{
			Code:    model.IssueUnknownMethod,
			Message: fmt.Sprintf("unknown payment method %q", p.Method),
		})
	}

	return issues
}
