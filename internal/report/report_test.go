package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/payrecon/internal/model"
	"github.com/cleared-dev/payrecon/internal/reconcile"
	"github.com/cleared-dev/payrecon/internal/simulate"
)

func sampleReport() *Report {
	ds := simulate.SampleDataset()
	results := reconcile.Reconcile(ds.Payments, ds.Invoices, ds.LedgerEntries)
	return &Report{
		ID:          "run-1",
		GeneratedAt: time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC),
		Source:      "sample",
		Results:     results,
		Summary:     reconcile.Summarize(results),
	}
}

func TestFilter(t *testing.T) {
	rep := sampleReport()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "empty", filter: Filter{}, want: []string{"PAY-2001", "PAY-2002", "PAY-2003", "PAY-2004", "PAY-2005", "PAY-2006"}},
		{name: "status", filter: Filter{Status: model.StatusMatched}, want: []string{"PAY-2001", "PAY-2004"}},
		{name: "customer by invoice", filter: Filter{Customer: "  acme   CORP "}, want: []string{"PAY-2001", "PAY-2006"}},
		{name: "customer by payer", filter: Filter{Customer: "Umbrella Corporation"}, want: []string{"PAY-2004"}},
		{name: "method", filter: Filter{Method: "wire"}, want: []string{"PAY-2002", "PAY-2004"}},
		{name: "combined", filter: Filter{Status: model.StatusDuplicate, Method: model.MethodACH}, want: []string{"PAY-2006"}},
		{name: "none", filter: Filter{Customer: "Nobody"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(rep.Results)
			require.NotNil(t, got)
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.PaymentID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rep := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rep))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["id"])
	assert.Equal(t, "sample", decoded["source"])
	assert.Equal(t, "2025-03-01T09:30:00Z", decoded["generated_at"])
	assert.Len(t, decoded["results"], 6)

	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 6, summary["total_payments"])
}

func TestWriteResultsCSV(t *testing.T) {
	rep := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, rep.Results))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, ResultHeader, records[0])

	partial := records[2]
	assert.Equal(t, "PAY-2002", partial[0])
	assert.Equal(t, "1500.00", partial[2])
	assert.Equal(t, "INV-1002", partial[5])
	assert.Equal(t, "2500.00", partial[7])
	assert.Equal(t, "Partial Match", partial[8])
	assert.Equal(t, "reference", partial[9])
	assert.Equal(t, "1500.00", partial[10])
	assert.Equal(t, "1000.00", partial[11])
	assert.Equal(t, "0.90", partial[12])

	unmatched := records[5]
	assert.Equal(t, "Unmatched", unmatched[8])
	assert.Equal(t, "", unmatched[5])
	assert.Equal(t, "", unmatched[7])
	assert.Equal(t, "0.00", unmatched[12])
}

func TestMarshalResult_Issues(t *testing.T) {
	r := model.Result{
		PaymentID: "P",
		Status:    model.StatusUnmatched,
		Issues: []model.Issue{
			{Code: model.IssueNegativeAmount, Message: "amount -5.00 is negative"},
			{Code: model.IssueUnknownMethod, Message: `unknown method "Cash"`},
		},
	}
	row := MarshalResult(r)
	assert.Equal(t, `negative_amount: amount -5.00 is negative; unknown_method: unknown method "Cash"`, row[len(row)-1])
}

func TestWriteText(t *testing.T) {
	rep := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, rep))

	out := buf.String()
	assert.Contains(t, out, "Reconciliation run-1")
	assert.Contains(t, out, "Source:    sample")
	assert.Contains(t, out, "Generated: 2025-03-01 09:30:00 UTC")
	assert.Contains(t, out, "PAYMENT")
	assert.Contains(t, out, "PAY-2005")
	assert.Contains(t, out, "Match rate")
	assert.Contains(t, out, "33.33%")
	assert.Contains(t, out, "CUSTOMER")

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "PAY-2003") {
			assert.Contains(t, line, "Amount Mismatch")
			assert.Contains(t, line, "heuristic")
		}
	}
}

func TestWriteSummaryText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryText(&buf, reconcile.Summarize(nil)))
	out := buf.String()
	assert.Contains(t, out, "Payments")
	assert.Contains(t, out, "0.00")
	assert.NotContains(t, out, "CUSTOMER")
}
