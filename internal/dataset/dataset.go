// Package dataset bundles the three reconciliation inputs and reads and
// writes them as CSV.
package dataset

import (
	"context"

	"github.com/cleared-dev/payrecon/internal/model"
)

// Dataset is one snapshot of reconciliation inputs.
type Dataset struct {
	Invoices      []model.Invoice     `json:"invoices"`
	Payments      []model.Payment     `json:"payments"`
	LedgerEntries []model.LedgerEntry `json:"ledger_entries"`
}

// Source supplies datasets, from files or a generator.
type Source interface {
	// Name describes the source for logs and reports.
	Name() string
	Load(ctx context.Context) (*Dataset, error)
}
