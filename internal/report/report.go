// Package report renders reconciliation output as JSON, CSV or text.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cleared-dev/payrecon/internal/id"
	"github.com/cleared-dev/payrecon/internal/model"
)

// Report is one reconciliation run.
type Report struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Source      string         `json:"source"`
	Results     []model.Result `json:"results"`
	Summary     model.Summary  `json:"summary"`
}

// Filter selects results. Zero fields match everything.
type Filter struct {
	Status   model.Status
	Customer string
	Method   model.PaymentMethod
}

// Match reports whether r passes the filter. Customer compares against the
// invoice customer or the payer, ignoring case and spacing.
func (f Filter) Match(r model.Result) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Method != "" && !strings.EqualFold(string(r.Method), string(f.Method)) {
		return false
	}
	if f.Customer != "" {
		want := id.NormalizeName(f.Customer)
		if id.NormalizeName(r.Customer) != want && id.NormalizeName(r.PayerName) != want {
			return false
		}
	}
	return true
}

// Apply returns the results passing the filter, in order. Never nil.
func (f Filter) Apply(results []model.Result) []model.Result {
	out := make([]model.Result, 0, len(results))
	for _, r := range results {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
