// Package reconcile matches payments to invoices and summarizes the outcome.
//
// Each payment is offered to an ordered chain of matchers (recorded ledger
// links, then invoice IDs cited in the reference note, then payer name plus a
// plausible amount). The first matcher to propose an invoice wins, and the
// payment is classified by comparing its amount with the invoice's amount due
// at currency precision:
//
//	engine := reconcile.NewEngine(reconcile.DefaultOptions())
//	results := engine.Reconcile(payments, invoices, ledgerEntries)
//	summary := reconcile.Summarize(results)
//
// The engine never fails: data-quality problems are attached to the affected
// result as issues.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payrecon/internal/id"
	"github.com/cleared-dev/payrecon/internal/model"
)

// Engine reconciles payments against invoices and ledger entries.
type Engine struct {
	opts     Options
	matchers []Matcher
}

// NewEngine creates an Engine. With no matchers, DefaultMatchers(opts) is used.
func NewEngine(opts Options, matchers ...Matcher) *Engine {
	if len(matchers) == 0 {
		matchers = DefaultMatchers(opts)
	}
	return &Engine{opts: opts, matchers: matchers}
}

// Reconcile reconciles with DefaultOptions.
func Reconcile(payments []model.Payment, invoices []model.Invoice, entries []model.LedgerEntry) []model.Result {
	return NewEngine(DefaultOptions()).Reconcile(payments, invoices, entries)
}

// dupKey identifies a payment that repeats an earlier one against the same invoice.
type dupKey struct {
	payer   string
	amount  string
	date    string
	invoice string
}

// Reconcile returns one result per payment, in input order.
func (e *Engine) Reconcile(payments []model.Payment, invoices []model.Invoice, entries []model.LedgerEntry) []model.Result {
	idx := NewIndex(invoices, entries)
	results := make([]model.Result, 0, len(payments))

	seenIDs := make(map[string]bool, len(payments))
	seenKeys := make(map[dupKey]string, len(payments))

	for _, p := range payments {
		r := e.reconcileOne(p, idx)

		pid := id.Normalize(p.PaymentID)
		switch {
		case pid != "" && seenIDs[pid]:
			r.Status = model.StatusDuplicate
			r.Reason = fmt.Sprintf("payment ID %s already reconciled; %s", p.PaymentID, r.Reason)
			r.Issues = append(r.Issues, model.Issue{
				Code:    model.IssueDuplicatePaymentID,
				Message: fmt.Sprintf("payment ID %s appears more than once", p.PaymentID),
			})
		case r.HasMatch():
			key := dupKey{
				payer:   id.NormalizeName(p.PayerName),
				amount:  r.PaymentAmount.StringFixed(2),
				date:    p.PaymentDate.String(),
				invoice: id.Normalize(r.InvoiceID),
			}
			if first, ok := seenKeys[key]; ok {
				r.Status = model.StatusDuplicate
				r.Reason = fmt.Sprintf("repeats payment %s against invoice %s", first, r.InvoiceID)
			} else {
				seenKeys[key] = p.PaymentID
			}
		}
		if pid != "" {
			seenIDs[pid] = true
		}

		results = append(results, r)
	}
	return results
}

func (e *Engine) reconcileOne(p model.Payment, idx *Index) model.Result {
	r := model.Result{
		PaymentID:     p.PaymentID,
		PayerName:     p.PayerName,
		PaymentAmount: p.Amount,
		PaymentDate:   p.PaymentDate,
		Method:        p.Method,
		Customer:      p.PayerName,
		Status:        model.StatusUnmatched,
		MatchMethod:   model.MatchNone,
		Issues:        checkPayment(p),
	}

	if p.Amount.IsNegative() {
		r.Reason = "negative payment amount; not matched"
		if links := idx.LedgerFor(p.PaymentID); len(links) > 0 {
			r.Reason += fmt.Sprintf(" (ledger entry %s links invoice %s)", links[0].LedgerEntryID, links[0].InvoiceID)
		}
		return r
	}
	amount := p.Amount.Round(2)

	var cand *Candidate
	for _, m := range e.matchers {
		c, issues := m.Match(p, amount, idx)
		r.Issues = append(r.Issues, issues...)
		if c != nil {
			cand = c
			break
		}
	}
	if cand == nil {
		r.Reason = "no ledger link, invoice reference or payer match"
		return r
	}

	due := cand.Invoice.AmountDue.Round(2)
	r.InvoiceID = cand.Invoice.InvoiceID
	r.Customer = cand.Invoice.CustomerName
	r.InvoiceAmount = cand.Invoice.AmountDue
	r.MatchMethod = cand.Method
	r.Confidence = cand.Confidence
	r.MatchedAmount = decimal.Min(amount, due)
	r.Discrepancy = amount.Sub(due).Abs()
	r.Status = e.classify(amount, due)
	r.Reason = cand.Reason + "; " + describe(r.Status, r.Discrepancy)

	if idx.IsDuplicateInvoice(cand.Invoice.InvoiceID) {
		r.Issues = append(r.Issues, model.Issue{
			Code:    model.IssueDuplicateInvoiceID,
			Message: fmt.Sprintf("invoice ID %s appears more than once; first occurrence used", cand.Invoice.InvoiceID),
		})
	}
	return r
}

// classify compares amounts already rounded to currency precision.
func (e *Engine) classify(amount, due decimal.Decimal) model.Status {
	diff := amount.Sub(due)
	switch {
	case diff.IsZero() || diff.Abs().LessThan(e.opts.Tolerance):
		return model.StatusMatched
	case diff.IsNegative():
		return model.StatusPartialMatch
	default:
		return model.StatusAmountMismatch
	}
}

func describe(s model.Status, discrepancy decimal.Decimal) string {
	switch s {
	case model.StatusMatched:
		return "amount agrees"
	case model.StatusPartialMatch:
		return fmt.Sprintf("partial payment, %s outstanding", discrepancy.StringFixed(2))
	default:
		return fmt.Sprintf("overpaid by %s", discrepancy.StringFixed(2))
	}
}
