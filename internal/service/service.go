// Package service runs reconciliations end to end: load a dataset, match,
// summarize, and stamp the run.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/payrecon/internal/dataset"
	"github.com/cleared-dev/payrecon/internal/logging"
	"github.com/cleared-dev/payrecon/internal/reconcile"
	"github.com/cleared-dev/payrecon/internal/report"
)

// Service orchestrates reconciliation runs.
type Service struct {
	source DataSource
	engine *reconcile.Engine
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the run timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the run ID source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New creates a Service. A nil logger discards output.
func New(source DataSource, engine *reconcile.Engine, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Service{
		source: source,
		engine: engine,
		logger: logging.WithComponent(logger, "service"),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SourceName returns the configured source's name.
func (s *Service) SourceName() string {
	return s.source.Name()
}

// Run loads the configured source and reconciles it.
func (s *Service) Run(ctx context.Context) (*report.Report, error) {
	name := s.source.Name()
	s.logger.Debug("loading dataset", "source", name)

	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return s.ReconcileDataset(name, ds), nil
}

// ReconcileDataset reconciles an already loaded dataset. A nil dataset is
// treated as empty.
func (s *Service) ReconcileDataset(source string, ds *dataset.Dataset) *report.Report {
	if ds == nil {
		ds = &dataset.Dataset{}
	}

	results := s.engine.Reconcile(ds.Payments, ds.Invoices, ds.LedgerEntries)
	rep := &report.Report{
		ID:          s.newID(),
		GeneratedAt: s.now().UTC(),
		Source:      source,
		Results:     results,
		Summary:     reconcile.Summarize(results),
	}

	s.logger.Info("reconciled",
		"run", rep.ID,
		"source", source,
		"payments", rep.Summary.TotalPayments,
		"matched", rep.Summary.Counts.Matched,
		"partial", rep.Summary.Counts.PartialMatch,
		"mismatch", rep.Summary.Counts.AmountMismatch,
		"unmatched", rep.Summary.Counts.Unmatched,
		"duplicate", rep.Summary.Counts.Duplicate,
		"with_issues", rep.Summary.WithIssues,
	)
	for _, r := range results {
		for _, is := range r.Issues {
			s.logger.Warn("data quality issue", "payment", r.PaymentID, "code", is.Code, "detail", is.Message)
		}
	}
	return rep
}
