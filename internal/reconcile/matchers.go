package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payrecon/internal/id"
	"github.com/cleared-dev/payrecon/internal/model"
)

// Candidate is an invoice proposed for a payment by a Matcher.
type Candidate struct {
	Invoice    model.Invoice
	Method     model.MatchMethod
	Confidence decimal.Decimal
	Reason     string
}

// Matcher proposes at most one invoice for a payment. amount is the payment
// amount at currency precision. Issues found along the way are returned even
// when no candidate is.
type Matcher interface {
	Method() model.MatchMethod
	Match(p model.Payment, amount decimal.Decimal, idx *Index) (*Candidate, []model.Issue)
}

// DefaultMatchers returns the ledger, reference and heuristic matchers in
// priority order.
func DefaultMatchers(opts Options) []Matcher {
	return []Matcher{
		LedgerMatcher{},
		ReferenceMatcher{},
		HeuristicMatcher{MinRatio: opts.MinPlausibleRatio, MaxRatio: opts.MaxPlausibleRatio},
	}
}

var (
	ledgerConfidence    = decimal.NewFromInt(1)
	referenceConfidence = decimal.New(90, -2)
	heuristicFloor      = decimal.New(60, -2)
	heuristicSpread     = decimal.New(20, -2)
)

// LedgerMatcher follows ledger entries recorded for the payment.
type LedgerMatcher struct{}

// Method implements Matcher.
func (LedgerMatcher) Method() model.MatchMethod { return model.MatchLedger }

// Match implements Matcher.
func (LedgerMatcher) Match(p model.Payment, amount decimal.Decimal, idx *Index) (*Candidate, []model.Issue) {
	var issues []model.Issue
	for _, e := range idx.LedgerFor(p.PaymentID) {
		inv, ok := idx.Invoice(e.InvoiceID)
		if !ok {
			issues = append(issues, model.Issue{
				Code:    model.IssueLedgerUnknownInvoice,
				Message: fmt.Sprintf("ledger entry %s references unknown invoice %q", e.LedgerEntryID, e.InvoiceID),
			})
			continue
		}
		if inv.AmountDue.IsNegative() {
			issues = append(issues, invalidInvoiceIssue(inv))
			continue
		}
		if !e.Amount.Round(2).Equal(amount) {
			issues = append(issues, model.Issue{
				Code:    model.IssueLedgerAmountMismatch,
				Message: fmt.Sprintf("ledger entry %s records %s, payment is %s", e.LedgerEntryID, e.Amount.StringFixed(2), amount.StringFixed(2)),
			})
		}
		return &Candidate{
			Invoice:    inv,
			Method:     model.MatchLedger,
			Confidence: ledgerConfidence,
			Reason:     fmt.Sprintf("ledger entry %s links invoice %s", e.LedgerEntryID, inv.InvoiceID),
		}, issues
	}
	return nil, issues
}

// ReferenceMatcher looks for invoice IDs in the payment's reference note.
type ReferenceMatcher struct{}

// Method implements Matcher.
func (ReferenceMatcher) Method() model.MatchMethod { return model.MatchReference }

// Match implements Matcher.
func (ReferenceMatcher) Match(p model.Payment, amount decimal.Decimal, idx *Index) (*Candidate, []model.Issue) {
	if id.Normalize(p.ReferenceNote) == "" {
		return nil, nil
	}

	keys := append([]string{id.Normalize(p.ReferenceNote)}, id.Tokens(p.ReferenceNote)...)
	seen := make(map[string]bool, len(keys))
	var candidates []model.Invoice
	var issues []model.Issue
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		inv, ok := idx.Invoice(key)
		if !ok {
			continue
		}
		if inv.AmountDue.IsNegative() {
			issues = append(issues, invalidInvoiceIssue(inv))
			continue
		}
		candidates = append(candidates, inv)
	}

	best, ok := closest(candidates, amount)
	if !ok {
		return nil, issues
	}
	return &Candidate{
		Invoice:    best,
		Method:     model.MatchReference,
		Confidence: referenceConfidence,
		Reason:     fmt.Sprintf("reference note cites invoice %s", best.InvoiceID),
	}, issues
}

// HeuristicMatcher pairs a payment with an invoice billed to the same name
// whose amount due makes the payment amount plausible.
type HeuristicMatcher struct {
	MinRatio decimal.Decimal
	MaxRatio decimal.Decimal
}

// Method implements Matcher.
func (HeuristicMatcher) Method() model.MatchMethod { return model.MatchHeuristic }

// Match implements Matcher.
func (m HeuristicMatcher) Match(p model.Payment, amount decimal.Decimal, idx *Index) (*Candidate, []model.Issue) {
	var candidates []model.Invoice
	for _, inv := range idx.InvoicesFor(p.PayerName) {
		if m.plausible(amount, inv.AmountDue.Round(2)) {
			candidates = append(candidates, inv)
		}
	}

	best, ok := closest(candidates, amount)
	if !ok {
		return nil, nil
	}
	return &Candidate{
		Invoice:    best,
		Method:     model.MatchHeuristic,
		Confidence: heuristicConfidence(amount, best.AmountDue.Round(2)),
		Reason:     fmt.Sprintf("payer name and amount fit invoice %s", best.InvoiceID),
	}, nil
}

func (m HeuristicMatcher) plausible(amount, due decimal.Decimal) bool {
	if due.IsZero() {
		return amount.IsZero()
	}
	return amount.GreaterThanOrEqual(due.Mul(m.MinRatio)) && amount.LessThanOrEqual(due.Mul(m.MaxRatio))
}

// heuristicConfidence scales from 0.60 to 0.80 as amount approaches due.
func heuristicConfidence(amount, due decimal.Decimal) decimal.Decimal {
	if due.IsZero() {
		return heuristicFloor
	}
	closeness := decimal.NewFromInt(1).Sub(amount.Sub(due).Abs().Div(due))
	if closeness.IsNegative() {
		closeness = decimal.Zero
	}
	return heuristicFloor.Add(heuristicSpread.Mul(closeness)).Round(2)
}

// closest picks the invoice whose amount due is nearest amount, then the
// earliest due date, then the smallest invoice ID.
func closest(invoices []model.Invoice, amount decimal.Decimal) (model.Invoice, bool) {
	if len(invoices) == 0 {
		return model.Invoice{}, false
	}
	best := invoices[0]
	bestDiff := best.AmountDue.Round(2).Sub(amount).Abs()
	for _, inv := range invoices[1:] {
		diff := inv.AmountDue.Round(2).Sub(amount).Abs()
		switch cmp := diff.Cmp(bestDiff); {
		case cmp < 0:
		case cmp > 0:
			continue
		case inv.DueDate.Before(best.DueDate.Time):
		case inv.DueDate.Equal(best.DueDate.Time) && inv.InvoiceID < best.InvoiceID:
		default:
			continue
		}
		best, bestDiff = inv, diff
	}
	return best, true
}

func invalidInvoiceIssue(inv model.Invoice) model.Issue {
	return model.Issue{
		Code:    model.IssueInvalidInvoiceAmount,
		Message: fmt.Sprintf("invoice %s has negative amount due %s", inv.InvoiceID, inv.AmountDue.StringFixed(2)),
	}
}
