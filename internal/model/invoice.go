package model

import "github.com/shopspring/decimal"

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceOpen    InvoiceStatus = "Open"
	InvoicePaid    InvoiceStatus = "Paid"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceOpen, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// Invoice is a billing record owed by a customer.
type Invoice struct {
	InvoiceID    string          `json:"invoice_id"`
	CustomerName string          `json:"customer_name"`
	AmountDue    decimal.Decimal `json:"amount_due"`
	DueDate      Date            `json:"due_date"`
	Status       InvoiceStatus   `json:"status"`
}
