// Package simulate produces demo datasets: a fixed sample plus seeded random
// extras.
package simulate

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payrecon/internal/dataset"
	"github.com/cleared-dev/payrecon/internal/id"
	"github.com/cleared-dev/payrecon/internal/model"
)

// Default number of generated records beyond the sample.
const (
	DefaultExtraInvoices = 3
	DefaultExtraPayments = 3
)

// Simulated IDs draw their sequence from [minSeq, maxSeq].
const (
	minSeq = 1000
	maxSeq = 9999
)

// Customers used for generated invoices.
var Customers = []string{"Simulated Corp", "Demo Inc", "Test LLC", "Example Co", "Mock Partners"}

var statuses = []model.InvoiceStatus{model.InvoiceOpen, model.InvoicePaid, model.InvoiceOverdue}

var year2025 = model.NewDate(2025, time.January, 1)

// Generator is a dataset.Source that returns SampleDataset plus extras drawn
// from a PCG stream seeded with Seed. The same Generator always yields the
// same dataset.
type Generator struct {
	Seed          uint64
	ExtraInvoices int
	ExtraPayments int
	// Delay is slept before Load returns, emulating a remote feed.
	Delay time.Duration
}

var _ dataset.Source = (*Generator)(nil)

// Name implements dataset.Source.
func (g *Generator) Name() string {
	return fmt.Sprintf("simulated:seed=%d", g.Seed)
}

// Validate checks the extra counts fit the simulated ID space.
func (g *Generator) Validate() error {
	if g.ExtraInvoices < 0 || g.ExtraPayments < 0 {
		return fmt.Errorf("extra counts must be non-negative, got invoices=%d payments=%d", g.ExtraInvoices, g.ExtraPayments)
	}
	capacity := maxSeq - minSeq + 1
	if g.ExtraInvoices > capacity || g.ExtraPayments > capacity {
		return fmt.Errorf("extra counts must be at most %d", capacity)
	}
	if g.Delay < 0 {
		return fmt.Errorf("delay must be non-negative, got %s", g.Delay)
	}
	return nil
}

// Load implements dataset.Source.
func (g *Generator) Load(ctx context.Context) (*dataset.Dataset, error) {
	ds, err := g.Generate()
	if err != nil {
		return nil, err
	}

	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Generate builds the dataset without any delay.
func (g *Generator) Generate() (*dataset.Dataset, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(g.Seed, g.Seed^0x9e3779b97f4a7c15))
	ds := SampleDataset()

	invIDs := newSeqPool(rng)
	for range g.ExtraInvoices {
		ds.Invoices = append(ds.Invoices, model.Invoice{
			InvoiceID:    id.FormatSim("INV", invIDs.next()),
			CustomerName: Customers[rng.IntN(len(Customers))],
			AmountDue:    decimal.New(int64(50000+rng.IntN(450001)), -2),
			DueDate:      randomDate(rng),
			Status:       statuses[rng.IntN(len(statuses))],
		})
	}

	payIDs := newSeqPool(rng)
	ledIDs := newSeqPool(rng)
	methods := model.PaymentMethods
	for range g.ExtraPayments {
		inv := ds.Invoices[rng.IntN(len(ds.Invoices))]

		amount := inv.AmountDue
		if rng.Float64() >= 0.7 {
			// 30% to 90% of the amount due, in basis points.
			bp := 3000 + rng.IntN(6001)
			amount = inv.AmountDue.Mul(decimal.New(int64(bp), -4)).Round(2)
		}

		p := model.Payment{
			PaymentID:     id.FormatSim("PAY", payIDs.next()),
			PayerName:     inv.CustomerName,
			Amount:        amount,
			PaymentDate:   randomDate(rng),
			Method:        methods[rng.IntN(len(methods))],
			ReferenceNote: inv.InvoiceID,
		}
		ds.Payments = append(ds.Payments, p)
		ds.LedgerEntries = append(ds.LedgerEntries, model.LedgerEntry{
			LedgerEntryID: id.FormatSim("LED", ledIDs.next()),
			InvoiceID:     inv.InvoiceID,
			PaymentID:     p.PaymentID,
			Amount:        p.Amount,
			EntryDate:     p.PaymentDate,
		})
	}
	return ds, nil
}

func randomDate(rng *rand.Rand) model.Date {
	return model.Date{Time: year2025.AddDate(0, 0, rng.IntN(365))}
}

// seqPool hands out distinct random sequence numbers.
type seqPool struct {
	rng  *rand.Rand
	used map[int]bool
}

func newSeqPool(rng *rand.Rand) *seqPool {
	return &seqPool{rng: rng, used: make(map[int]bool)}
}

// next must not be called more than maxSeq-minSeq+1 times.
func (p *seqPool) next() int {
	for {
		n := minSeq + p.rng.IntN(maxSeq-minSeq+1)
		if !p.used[n] {
			p.used[n] = true
			return n
		}
	}
}
