package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payrecon/internal/model"
)

// ResultHeader is the results CSV header.
var ResultHeader = []string{
	"payment_id", "payer_name", "amount", "payment_date", "method",
	"invoice_id", "customer", "invoice_amount",
	"status", "match_method", "matched_amount", "discrepancy", "confidence",
	"reason", "issues",
}

// WriteResultsCSV writes results (including header).
func WriteResultsCSV(w io.Writer, results []model.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ResultHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range results {
		if err := cw.Write(MarshalResult(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalResult converts a Result to a CSV row. Issues are joined with "; ".
func MarshalResult(r model.Result) []string {
	issues := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		issues[i] = is.String()
	}

	invoiceAmount, matched, discrepancy := "", "", ""
	if r.HasMatch() {
		invoiceAmount = money(r.InvoiceAmount)
		matched = money(r.MatchedAmount)
		discrepancy = money(r.Discrepancy)
	}

	return []string{
		r.PaymentID,
		r.PayerName,
		money(r.PaymentAmount),
		r.PaymentDate.String(),
		string(r.Method),
		r.InvoiceID,
		r.Customer,
		invoiceAmount,
		string(r.Status),
		string(r.MatchMethod),
		matched,
		discrepancy,
		r.Confidence.StringFixed(2),
		r.Reason,
		strings.Join(issues, "; "),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
