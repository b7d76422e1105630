package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/payrecon/internal/model"
)

func TestReconcile_AcmeExample(t *testing.T) {
	invoices := []model.Invoice{invoice("INV-1", "Acme", "1000.00", date(2025, 1, 31))}
	payments := []model.Payment{
		payment("PAY-1", "Acme", "1000.00", "INV-1"),
		payment("PAY-2", "Acme", "600.00", "INV-1"),
		payment("PAY-3", "Unknown", "50.00", ""),
	}

	results := Reconcile(payments, invoices, nil)
	require.Len(t, results, 3)

	assert.Equal(t, "PAY-1", results[0].PaymentID)
	assert.Equal(t, model.StatusMatched, results[0].Status)
	assert.Equal(t, "INV-1", results[0].InvoiceID)
	assert.Equal(t, model.MatchReference, results[0].MatchMethod)
	assert.Equal(t, "0.00", results[0].Discrepancy.StringFixed(2))
	assert.Equal(t, "1000.00", results[0].MatchedAmount.StringFixed(2))

	assert.Equal(t, model.StatusPartialMatch, results[1].Status)
	assert.Equal(t, "400.00", results[1].Discrepancy.StringFixed(2))
	assert.Equal(t, "600.00", results[1].MatchedAmount.StringFixed(2))
	assert.Contains(t, results[1].Reason, "400.00 outstanding")

	assert.Equal(t, model.StatusUnmatched, results[2].Status)
	assert.Equal(t, model.MatchNone, results[2].MatchMethod)
	assert.Empty(t, results[2].InvoiceID)
	assert.Equal(t, "Unknown", results[2].Customer)
	assert.True(t, results[2].Discrepancy.IsZero())
	assert.True(t, results[2].Confidence.IsZero())
}

func TestReconcile_EmptyInputs(t *testing.T) {
	results := Reconcile(nil, nil, nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestReconcile_NoInvoicesAllUnmatched(t *testing.T) {
	payments := []model.Payment{
		payment("PAY-1", "Acme", "1000.00", "INV-1"),
		payment("PAY-2", "Globex", "10.00", ""),
		payment("PAY-3", "Initech", "0", "anything"),
	}
	entries := []model.LedgerEntry{ledgerEntry("LED-1", "INV-1", "PAY-1", "1000.00", date(2025, 1, 21))}

	results := Reconcile(payments, nil, entries)
	require.Len(t, results, len(payments))
	for i, r := range results {
		assert.Equal(t, model.StatusUnmatched, r.Status, "payment %s", payments[i].PaymentID)
		assert.Equal(t, payments[i].PaymentID, r.PaymentID)
	}
	assert.True(t, results[0].HasIssue(model.IssueLedgerUnknownInvoice))
}

func TestReconcile_LedgerIsAuthoritative(t *testing.T) {
	invoices := []model.Invoice{
		invoice("INV-A", "Acme", "500.00", date(2025, 1, 10)),
		invoice("INV-B", "Globex", "2000.00", date(2025, 2, 10)),
	}
	// Reference note and payer both point at INV-A; the ledger says INV-B.
	payments := []model.Payment{payment("PAY-1", "Acme", "500.00", "INV-A")}
	entries := []model.LedgerEntry{ledgerEntry("LED-1", "INV-B", "PAY-1", "500.00", date(2025, 1, 21))}

	results := Reconcile(payments, invoices, entries)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "INV-B", r.InvoiceID)
	assert.Equal(t, "Globex", r.Customer)
	assert.Equal(t, model.MatchLedger, r.MatchMethod)
	assert.Equal(t, model.StatusPartialMatch, r.Status)
	assert.Equal(t, "1500.00", r.Discrepancy.StringFixed(2))
	assert.Equal(t, "1", r.Confidence.String())
}

func TestReconcile_ExactHeuristicMatch(t *testing.T) {
	invoices := []model.Invoice{invoice("INV-9", "Initech", "750.00", date(2025, 2, 1))}
	payments := []model.Payment{payment("PAY-9", "Initech", "750.00", "")}

	results := Reconcile(payments, invoices, nil)
	require.Len(t, results, 1)
	assert.Equal(t, model.StatusMatched, results[0].Status)
	assert.Equal(t, model.MatchHeuristic, results[0].MatchMethod)
	assert.True(t, results[0].Discrepancy.IsZero())
	assert.Equal(t, "0.8", results[0].Confidence.String())
}

func TestReconcile_PartialRange(t *testing.T) {
	invoices := []model.Invoice{invoice("INV-1", "Acme", "1000.00", date(2025, 1, 31))}
	for _, amount := range []string{"300.01", "450.00", "600.00", "899.99", "989.99"} {
		t.Run(amount, func(t *testing.T) {
			for _, ref := range []string{"INV-1", ""} {
				results := Reconcile([]model.Payment{payment("PAY-1", "Acme", amount, ref)}, invoices, nil)
				require.Len(t, results, 1)
				assert.Equal(t, model.StatusPartialMatch, results[0].Status, "ref %q", ref)
				assert.Equal(t, "INV-1", results[0].InvoiceID)
			}
		})
	}
}

func TestReconcile_Classification(t *testing.T) {
	invoices := []model.Invoice{invoice("INV-1", "Acme", "1000.00", date(2025, 1, 31))}

	tests := []struct {
		name        string
		amount      string
		want        model.Status
		discrepancy string
	}{
		{"exact", "1000.00", model.StatusMatched, "0.00"},
		{"sub-cent below rounds to exact", "999.999", model.StatusMatched, "0.00"},
		{"one cent short", "999.99", model.StatusPartialMatch, "0.01"},
		{"one cent over", "1000.01", model.StatusAmountMismatch, "0.01"},
		{"overpaid", "1250.00", model.StatusAmountMismatch, "250.00"},
		{"tiny partial", "5.00", model.StatusPartialMatch, "995.00"},
		{"zero", "0", model.StatusPartialMatch, "1000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Reconcile([]model.Payment{payment("PAY-1", "Someone", tt.amount, "INV-1")}, invoices, nil)
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Status)
			assert.Equal(t, tt.discrepancy, results[0].Discrepancy.StringFixed(2))
		})
	}
}

func TestReconcile_CustomTolerance(t *testing.T) {
	opts := DefaultOptions()
	opts.Tolerance = dec("1.00")
	engine := NewEngine(opts)
	invoices := []model.Invoice{invoice("INV-1", "Acme", "100.00", date(2025, 1, 31))}

	results := engine.Reconcile([]model.Payment{
		payment("PAY-1", "Acme", "99.50", "INV-1"),
		payment("PAY-2", "Acme", "99.00", "INV-1"),
	}, invoices, nil)
	require.Len(t, results, 2)
	assert.Equal(t, model.StatusMatched, results[0].Status)
	assert.Equal(t, "0.50", results[0].Discrepancy.StringFixed(2))
	assert.Equal(t, model.StatusPartialMatch, results[1].Status)
}

func TestReconcile_ZeroTolerance(t *testing.T) {
	opts := DefaultOptions()
	opts.Tolerance = dec("0")
	results := NewEngine(opts).Reconcile(
		[]model.Payment{payment("PAY-1", "Acme", "100.00", "INV-1")},
		[]model.Invoice{invoice("INV-1", "Acme", "100", date(2025, 1, 31))},
		nil,
	)
	require.Len(t, results, 1)
	assert.Equal(t, model.StatusMatched, results[0].Status)
}

func TestReconcile_NegativeAmount(t *testing.T) {
	invoices := []model.Invoice{invoice("INV-1", "Acme", "100.00", date(2025, 1, 31))}
	payments := []model.Payment{
		payment("PAY-1", "Acme", "-100.00", "INV-1"),
		payment("PAY-2", "Acme", "100.00", "INV-1"),
	}

	results := Reconcile(payments, invoices, nil)
	require.Len(t, results, 2)
	assert.Equal(t, model.StatusUnmatched, results[0].Status)
	assert.True(t, results[0].HasIssue(model.IssueNegativeAmount))
	assert.Empty(t, results[0].InvoiceID)

	// The bad record does not disturb the rest of the batch.
	assert.Equal(t, model.StatusMatched, results[1].Status)
}

func TestReconcile_NegativeAmountWithLedgerLink(t *testing.T) {
	invoices := []model.Invoice{invoice("INV-1", "Acme", "100.00", date(2025, 1, 31))}
	entries := []model.LedgerEntry{ledgerEntry("LED-1", "INV-1", "PAY-1", "-100.00", date(2025, 1, 21))}

	results := Reconcile([]model.Payment{payment("PAY-1", "Acme", "-100.00", "")}, invoices, entries)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, model.StatusUnmatched, r.Status)
	assert.Equal(t, model.MatchNone, r.MatchMethod)
	assert.Empty(t, r.InvoiceID)
	assert.True(t, r.HasIssue(model.IssueNegativeAmount))
	assert.Contains(t, r.Reason, "ledger entry LED-1 links invoice INV-1")
}

func TestReconcile_DataQualityIssues(t *testing.T) {
	invoices := []model.Invoice{invoice("INV-1", "Acme", "100.00", date(2025, 1, 31))}
	p := payment("", "Acme", "100.004", "INV-1")
	p.Method = "Cash"

	results := Reconcile([]model.Payment{p}, invoices, nil)
	require.Len(t, results, 1)
	r := results[0]
	assert.True(t, r.HasIssue(model.IssueMissingPaymentID))
	assert.True(t, r.HasIssue(model.IssueAmountPrecision))
	assert.True(t, r.HasIssue(model.IssueUnknownMethod))
	assert.Equal(t, model.StatusMatched, r.Status)
}

func TestReconcile_DuplicatePaymentID(t *testing.T) {
	invoices := []model.Invoice{
		invoice("INV-1", "Acme", "100.00", date(2025, 1, 31)),
		invoice("INV-2", "Acme", "300.00", date(2025, 1, 31)),
	}
	payments := []model.Payment{
		payment("PAY-1", "Acme", "100.00", "INV-1"),
		payment("pay-1", "Acme", "300.00", "INV-2"),
	}

	results := Reconcile(payments, invoices, nil)
	require.Len(t, results, 2)
	assert.Equal(t, model.StatusMatched, results[0].Status)
	assert.Equal(t, model.StatusDuplicate, results[1].Status)
	assert.Equal(t, "INV-2", results[1].InvoiceID)
	assert.True(t, results[1].HasIssue(model.IssueDuplicatePaymentID))
}

func TestReconcile_RepeatedPayment(t *testing.T) {
	invoices := []model.Invoice{invoice("INV-1", "Acme", "100.00", date(2025, 1, 31))}
	payments := []model.Payment{
		payment("PAY-1", "Acme", "100.00", "INV-1"),
		payment("PAY-2", "ACME", "100.00", ""),
	}

	results := Reconcile(payments, invoices, nil)
	require.Len(t, results, 2)
	assert.Equal(t, model.StatusMatched, results[0].Status)
	assert.Equal(t, model.StatusDuplicate, results[1].Status)
	assert.Equal(t, "INV-1", results[1].InvoiceID)
	assert.Contains(t, results[1].Reason, "PAY-1")

	// A different date is a second payment, not a repeat.
	payments[1].PaymentDate = date(2025, 2, 20)
	results = Reconcile(payments, invoices, nil)
	assert.Equal(t, model.StatusMatched, results[1].Status)
}

func TestReconcile_DuplicateInvoiceID(t *testing.T) {
	invoices := []model.Invoice{
		invoice("INV-1", "Acme", "100.00", date(2025, 1, 31)),
		invoice("INV-1", "Acme", "999.00", date(2025, 1, 31)),
	}
	results := Reconcile([]model.Payment{payment("PAY-1", "Acme", "100.00", "INV-1")}, invoices, nil)
	require.Len(t, results, 1)
	assert.Equal(t, model.StatusMatched, results[0].Status)
	assert.Equal(t, "100.00", results[0].InvoiceAmount.StringFixed(2))
	assert.True(t, results[0].HasIssue(model.IssueDuplicateInvoiceID))
}

func TestReconcile_Deterministic(t *testing.T) {
	invoices := []model.Invoice{
		invoice("INV-1", "Acme", "1000.00", date(2025, 1, 31)),
		invoice("INV-2", "Acme", "1000.00", date(2025, 1, 15)),
		invoice("INV-3", "Globex", "250.00", date(2025, 3, 1)),
	}
	payments := []model.Payment{
		payment("PAY-1", "Acme", "990.00", ""),
		payment("PAY-2", "Globex", "250.00", "inv-3"),
		payment("PAY-3", "Nobody", "1.00", ""),
	}
	entries := []model.LedgerEntry{ledgerEntry("LED-1", "INV-1", "PAY-3", "1.00", date(2025, 1, 2))}

	first := Reconcile(payments, invoices, entries)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Reconcile(payments, invoices, entries))
	}
}

type fixedMatcher struct {
	invoiceID string
}

func (fixedMatcher) Method() model.MatchMethod { return "fixed" }

func (m fixedMatcher) Match(_ model.Payment, _ decimal.Decimal, idx *Index) (*Candidate, []model.Issue) {
	inv, ok := idx.Invoice(m.invoiceID)
	if !ok {
		return nil, nil
	}
	return &Candidate{Invoice: inv, Method: "fixed", Reason: "always " + m.invoiceID}, nil
}

func TestNewEngine_CustomMatchers(t *testing.T) {
	invoices := []model.Invoice{
		invoice("INV-1", "Acme", "100.00", date(2025, 1, 31)),
		invoice("INV-2", "Globex", "100.00", date(2025, 1, 31)),
	}
	engine := NewEngine(DefaultOptions(), fixedMatcher{invoiceID: "INV-2"})

	results := engine.Reconcile([]model.Payment{payment("PAY-1", "Acme", "100.00", "INV-1")}, invoices, nil)
	require.Len(t, results, 1)
	assert.Equal(t, "INV-2", results[0].InvoiceID)
	assert.Equal(t, model.MatchMethod("fixed"), results[0].MatchMethod)
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	o := DefaultOptions()
	o.Tolerance = dec("-0.01")
	assert.Error(t, o.Validate())

	o = DefaultOptions()
	o.MaxPlausibleRatio = dec("0.1")
	assert.Error(t, o.Validate())

	o = DefaultOptions()
	o.MinPlausibleRatio = dec("-1")
	assert.Error(t, o.Validate())
}
