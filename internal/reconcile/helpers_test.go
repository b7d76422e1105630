package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payrecon/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year, month, day int) model.Date {
	return model.NewDate(year, time.Month(month), day)
}

func invoice(invoiceID, customer, amount string, due model.Date) model.Invoice {
	return model.Invoice{
		InvoiceID:    invoiceID,
		CustomerName: customer,
		AmountDue:    dec(amount),
		DueDate:      due,
		Status:       model.InvoiceOpen,
	}
}

func payment(paymentID, payer, amount, ref string) model.Payment {
	return model.Payment{
		PaymentID:     paymentID,
		PayerName:     payer,
		Amount:        dec(amount),
		PaymentDate:   date(2025, 1, 20),
		Method:        model.MethodACH,
		ReferenceNote: ref,
	}
}

func ledgerEntry(entryID, invoiceID, paymentID, amount string, on model.Date) model.LedgerEntry {
	return model.LedgerEntry{
		LedgerEntryID: entryID,
		InvoiceID:     invoiceID,
		PaymentID:     paymentID,
		Amount:        dec(amount),
		EntryDate:     on,
	}
}
