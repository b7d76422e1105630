package reconcile

import (
	"sort"

	"github.com/cleared-dev/payrecon/internal/id"
	"github.com/cleared-dev/payrecon/internal/model"
)

// Index provides read-only lookups over one reconciliation's inputs.
// It is built per call and never shared between calls.
type Index struct {
	byID         map[string]model.Invoice
	duplicateIDs map[string]bool
	byCustomer   map[string][]model.Invoice
	ledger       map[string][]model.LedgerEntry
}

// NewIndex indexes invoices by ID and customer, and ledger entries by payment.
// When an invoice ID repeats, the first occurrence is kept.
func NewIndex(invoices []model.Invoice, entries []model.LedgerEntry) *Index {
	idx := &Index{
		byID:         make(map[string]model.Invoice, len(invoices)),
		duplicateIDs: make(map[string]bool),
		byCustomer:   make(map[string][]model.Invoice),
		ledger:       make(map[string][]model.LedgerEntry),
	}

	for _, inv := range invoices {
		key := id.Normalize(inv.InvoiceID)
		if key == "" {
			continue
		}
		if _, seen := idx.byID[key]; seen {
			idx.duplicateIDs[key] = true
			continue
		}
		idx.byID[key] = inv
		if inv.AmountDue.IsNegative() {
			continue
		}
		name := id.NormalizeName(inv.CustomerName)
		if name == "" {
			continue
		}
		idx.byCustomer[name] = append(idx.byCustomer[name], inv)
	}

	for _, e := range entries {
		key := id.Normalize(e.PaymentID)
		if key == "" {
			continue
		}
		idx.ledger[key] = append(idx.ledger[key], e)
	}
	for _, list := range idx.ledger {
		sort.SliceStable(list, func(i, j int) bool {
			if !list[i].EntryDate.Equal(list[j].EntryDate.Time) {
				return list[i].EntryDate.Before(list[j].EntryDate.Time)
			}
			return list[i].LedgerEntryID < list[j].LedgerEntryID
		})
	}

	return idx
}

// Invoice returns the invoice with the given ID.
func (idx *Index) Invoice(invoiceID string) (model.Invoice, bool) {
	inv, ok := idx.byID[id.Normalize(invoiceID)]
	return inv, ok
}

// IsDuplicateInvoice reports whether invoiceID occurred more than once.
func (idx *Index) IsDuplicateInvoice(invoiceID string) bool {
	return idx.duplicateIDs[id.Normalize(invoiceID)]
}

// InvoicesFor returns invoices with a non-negative amount due billed to
// customer. A blank name matches nothing.
func (idx *Index) InvoicesFor(customer string) []model.Invoice {
	name := id.NormalizeName(customer)
	if name == "" {
		return nil
	}
	return idx.byCustomer[name]
}

// LedgerFor returns ledger entries for a payment, earliest entry first.
func (idx *Index) LedgerFor(paymentID string) []model.LedgerEntry {
	return idx.ledger[id.Normalize(paymentID)]
}
