package service

import (
	"context"

	"github.com/cleared-dev/payrecon/internal/dataset"
)

// DataSource supplies the invoices, payments and ledger entries to reconcile.
// The service depends on this interface, not on a concrete loader.
//
//go:generate mockgen -destination=mocks/mock_source.go -source=interface.go DataSource
type DataSource interface {
	Name() string
	Load(ctx context.Context) (*dataset.Dataset, error)
}
