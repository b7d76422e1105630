package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cleared-dev/payrecon/internal/model"
)

// WriteText writes a human-readable results table followed by the summary.
func WriteText(w io.Writer, rep *Report) error {
	fmt.Fprintf(w, "Reconciliation %s\n", rep.ID)
	fmt.Fprintf(w, "Source:    %s\n", rep.Source)
	fmt.Fprintf(w, "Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	if err := WriteResultsText(w, rep.Results); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return WriteSummaryText(w, rep.Summary)
}

// WriteResultsText writes results as an aligned table.
func WriteResultsText(w io.Writer, results []model.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PAYMENT\tPAYER\tAMOUNT\tINVOICE\tDUE\tSTATUS\tVIA\tCONF\tISSUES")
	for _, r := range results {
		invoice, due := "-", "-"
		if r.HasMatch() {
			invoice = r.InvoiceID
			due = money(r.InvoiceAmount)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			r.PaymentID, r.PayerName, money(r.PaymentAmount), invoice, due,
			r.Status, r.MatchMethod, r.Confidence.StringFixed(2), len(r.Issues))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	for _, r := range results {
		for _, is := range r.Issues {
			fmt.Fprintf(w, "  %s: %s\n", r.PaymentID, is)
		}
	}
	return nil
}

// WriteSummaryText writes the summary totals and per-customer breakdown.
func WriteSummaryText(w io.Writer, s model.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Payments\t%d\n", s.TotalPayments)
	for _, st := range model.Statuses {
		fmt.Fprintf(tw, "  %s\t%d\n", st, s.Counts.Get(st))
	}
	fmt.Fprintf(tw, "Total volume\t%s\n", money(s.TotalVolume))
	fmt.Fprintf(tw, "Matched volume\t%s\n", money(s.MatchedVolume))
	fmt.Fprintf(tw, "Unmatched volume\t%s\n", money(s.UnmatchedVolume))
	fmt.Fprintf(tw, "Total discrepancy\t%s\n", money(s.TotalDiscrepancy))
	fmt.Fprintf(tw, "Min / max payment\t%s / %s\n", money(s.MinPayment), money(s.MaxPayment))
	fmt.Fprintf(tw, "Match rate\t%s%%\n", s.MatchRate.Shift(2).StringFixed(2))
	fmt.Fprintf(tw, "With issues\t%d\n", s.WithIssues)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if len(s.Customers) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CUSTOMER\tPAYMENTS\tVOLUME\tDISCREPANCY\tMATCHED\tPARTIAL\tMISMATCH\tUNMATCHED\tDUPLICATE")
	for _, c := range s.Customers {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			c.Customer, c.Payments, money(c.Volume), money(c.Discrepancy),
			c.Counts.Matched, c.Counts.PartialMatch, c.Counts.AmountMismatch,
			c.Counts.Unmatched, c.Counts.Duplicate)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing customers: %w", err)
	}
	return nil
}
