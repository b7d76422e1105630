package simulate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payrecon/internal/dataset"
	"github.com/cleared-dev/payrecon/internal/model"
)

// SampleDataset returns the fixed demo dataset. Reconciled, it produces one
// result of every status:
//
//	PAY-2001  ledger     Matched
//	PAY-2002  reference  Partial Match
//	PAY-2003  heuristic  Amount Mismatch
//	PAY-2004  ledger     Matched
//	PAY-2005  none       Unmatched
//	PAY-2006  reference  Duplicate (repeats PAY-2001)
//
// Each call returns fresh slices.
func SampleDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Invoices: []model.Invoice{
			{InvoiceID: "INV-1001", CustomerName: "Acme Corp", AmountDue: cents(100000), DueDate: model.NewDate(2025, time.January, 15), Status: model.InvoiceOpen},
			{InvoiceID: "INV-1002", CustomerName: "Globex Corporation", AmountDue: cents(250000), DueDate: model.NewDate(2025, time.January, 20), Status: model.InvoiceOpen},
			{InvoiceID: "INV-1003", CustomerName: "Initech", AmountDue: cents(75000), DueDate: model.NewDate(2025, time.January, 25), Status: model.InvoiceOverdue},
			{InvoiceID: "INV-1004", CustomerName: "Umbrella Corp", AmountDue: cents(420000), DueDate: model.NewDate(2025, time.February, 1), Status: model.InvoiceOpen},
			{InvoiceID: "INV-1005", CustomerName: "Acme Corp", AmountDue: cents(120000), DueDate: model.NewDate(2025, time.February, 15), Status: model.InvoiceOpen},
			{InvoiceID: "INV-1006", CustomerName: "Stark Industries", AmountDue: cents(300000), DueDate: model.NewDate(2025, time.February, 28), Status: model.InvoicePaid},
		},
		Payments: []model.Payment{
			{PaymentID: "PAY-2001", PayerName: "Acme Corp", Amount: cents(100000), PaymentDate: model.NewDate(2025, time.January, 14), Method: model.MethodACH, ReferenceNote: "INV-1001"},
			{PaymentID: "PAY-2002", PayerName: "Globex Corporation", Amount: cents(150000), PaymentDate: model.NewDate(2025, time.January, 18), Method: model.MethodWire, ReferenceNote: "Payment for INV-1002"},
			{PaymentID: "PAY-2003", PayerName: "Initech", Amount: cents(80000), PaymentDate: model.NewDate(2025, time.January, 26), Method: model.MethodCheck},
			{PaymentID: "PAY-2004", PayerName: "Umbrella Corporation", Amount: cents(420000), PaymentDate: model.NewDate(2025, time.January, 30), Method: model.MethodWire},
			{PaymentID: "PAY-2005", PayerName: "Wayne Enterprises", Amount: cents(50000), PaymentDate: model.NewDate(2025, time.February, 2), Method: model.MethodCreditCard},
			{PaymentID: "PAY-2006", PayerName: "Acme Corp", Amount: cents(100000), PaymentDate: model.NewDate(2025, time.January, 14), Method: model.MethodACH, ReferenceNote: "INV-1001"},
		},
		LedgerEntries: []model.LedgerEntry{
			{LedgerEntryID: "LED-3001", InvoiceID: "INV-1004", PaymentID: "PAY-2004", Amount: cents(420000), EntryDate: model.NewDate(2025, time.January, 31)},
			{LedgerEntryID: "LED-3002", InvoiceID: "INV-1001", PaymentID: "PAY-2001", Amount: cents(100000), EntryDate: model.NewDate(2025, time.January, 15)},
		},
	}
}

func cents(n int64) decimal.Decimal {
	return decimal.New(n, -2)
}
