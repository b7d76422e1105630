package model

import "github.com/shopspring/decimal"

// LedgerEntry is a recorded link between a payment and an invoice in the
// books of record.
type LedgerEntry struct {
	LedgerEntryID string          `json:"ledger_entry_id"`
	InvoiceID     string          `json:"invoice_id"`
	PaymentID     string          `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
	EntryDate     Date            `json:"entry_date"`
}
