package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Status classifies how a payment reconciled against its invoice.
type Status string

const (
	StatusMatched        Status = "Matched"
	StatusPartialMatch   Status = "Partial Match"
	StatusAmountMismatch Status = "Amount Mismatch"
	StatusUnmatched      Status = "Unmatched"
	StatusDuplicate      Status = "Duplicate"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusMatched, StatusPartialMatch, StatusAmountMismatch, StatusUnmatched, StatusDuplicate}

// ParseStatus accepts a status by display name, case-insensitively.
// "partial", "mismatch" and the snake_case forms are also accepted.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	switch norm {
	case "matched":
		return StatusMatched, nil
	case "partial match", "partial":
		return StatusPartialMatch, nil
	case "amount mismatch", "mismatch":
		return StatusAmountMismatch, nil
	case "unmatched":
		return StatusUnmatched, nil
	case "duplicate":
		return StatusDuplicate, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// MatchMethod names the rule that paired a payment with an invoice.
type MatchMethod string

const (
	MatchLedger    MatchMethod = "ledger"
	MatchReference MatchMethod = "reference"
	MatchHeuristic MatchMethod = "heuristic"
	MatchNone      MatchMethod = "none"
)

// IssueCode identifies a data-quality finding.
type IssueCode string

const (
	IssueNegativeAmount       IssueCode = "negative_amount"
	IssueAmountPrecision      IssueCode = "amount_precision"
	IssueUnknownMethod        IssueCode = "unknown_method"
	IssueMissingPaymentID     IssueCode = "missing_payment_id"
	IssueDuplicatePaymentID   IssueCode = "duplicate_payment_id"
	IssueDuplicateInvoiceID   IssueCode = "duplicate_invoice_id"
	IssueLedgerUnknownInvoice IssueCode = "ledger_unknown_invoice"
	IssueLedgerAmountMismatch IssueCode = "ledger_amount_mismatch"
	IssueInvalidInvoiceAmount IssueCode = "invalid_invoice_amount"
)

// Issue is a data-quality finding attached to a single result.
type Issue struct {
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// Result pairs one payment with zero or one invoice.
type Result struct {
	PaymentID     string          `json:"payment_id"`
	PayerName     string          `json:"payer_name"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentDate   Date            `json:"payment_date"`
	Method        PaymentMethod   `json:"method"`

	InvoiceID     string          `json:"invoice_id,omitempty"`
	Customer      string          `json:"customer"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`

	Status        Status          `json:"status"`
	MatchMethod   MatchMethod     `json:"match_method"`
	MatchedAmount decimal.Decimal `json:"matched_amount"`
	Discrepancy   decimal.Decimal `json:"discrepancy"`
	Confidence    decimal.Decimal `json:"confidence"`
	Reason        string          `json:"reason"`
	Issues        []Issue         `json:"issues,omitempty"`
}

// HasMatch reports whether an invoice was found for the payment.
func (r Result) HasMatch() bool {
	return r.InvoiceID != ""
}

// HasIssue reports whether the result carries an issue with the given code.
func (r Result) HasIssue(code IssueCode) bool {
	for _, is := range r.Issues {
		if is.Code == code {
			return true
		}
	}
	return false
}
