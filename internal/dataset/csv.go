package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payrecon/internal/model"
)

// CSV headers, one per file.
var (
	InvoiceHeader = []string{"invoice_id", "customer_name", "amount_due", "due_date", "status"}
	PaymentHeader = []string{"payment_id", "payer_name", "amount", "payment_date", "method", "reference_note"}
	LedgerHeader  = []string{"ledger_entry_id", "invoice_id", "payment_id", "amount", "entry_date"}
)

const (
	invColID       = 0
	invColCustomer = 1
	invColAmount   = 2
	invColDueDate  = 3
	invColStatus   = 4

	payColID     = 0
	payColPayer  = 1
	payColAmount = 2
	payColDate   = 3
	payColMethod = 4
	payColRef    = 5

	ledColID      = 0
	ledColInvoice = 1
	ledColPayment = 2
	ledColAmount  = 3
	ledColDate    = 4
)

// ReadInvoices reads invoices.csv.
func ReadInvoices(r io.Reader) ([]model.Invoice, error) {
	return readRows(r, "invoices", len(InvoiceHeader), UnmarshalInvoice)
}

// ReadPayments reads payments.csv.
func ReadPayments(r io.Reader) ([]model.Payment, error) {
	return readRows(r, "payments", len(PaymentHeader), UnmarshalPayment)
}

// ReadLedgerEntries reads ledger.csv.
func ReadLedgerEntries(r io.Reader) ([]model.LedgerEntry, error) {
	return readRows(r, "ledger", len(LedgerHeader), UnmarshalLedgerEntry)
}

// WriteInvoices writes invoices.csv (including header).
func WriteInvoices(w io.Writer, invoices []model.Invoice) error {
	return writeRows(w, InvoiceHeader, invoices, MarshalInvoice)
}

// WritePayments writes payments.csv (including header).
func WritePayments(w io.Writer, payments []model.Payment) error {
	return writeRows(w, PaymentHeader, payments, MarshalPayment)
}

// WriteLedgerEntries writes ledger.csv (including header).
func WriteLedgerEntries(w io.Writer, entries []model.LedgerEntry) error {
	return writeRows(w, LedgerHeader, entries, MarshalLedgerEntry)
}

func readRows[T any](r io.Reader, name string, numFields int, unmarshal func([]string) (T, error)) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", name, err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	// Skip header row.
	var rows []T
	for i, rec := range records[1:] {
		row, err := unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeRows[T any](w io.Writer, header []string, rows []T, marshal func(T) []string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(marshal(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalInvoice converts an Invoice to a CSV row.
func MarshalInvoice(inv model.Invoice) []string {
	row := make([]string, len(InvoiceHeader))
	row[invColID] = inv.InvoiceID
	row[invColCustomer] = inv.CustomerName
	row[invColAmount] = formatAmount(inv.AmountDue)
	row[invColDueDate] = inv.DueDate.String()
	row[invColStatus] = string(inv.Status)
	return row
}

// UnmarshalInvoice converts a CSV row to an Invoice.
func UnmarshalInvoice(record []string) (model.Invoice, error) {
	if len(record) != len(InvoiceHeader) {
		return model.Invoice{}, fmt.Errorf("expected %d fields, got %d", len(InvoiceHeader), len(record))
	}

	amount, err := parseAmount(record[invColAmount])
	if err != nil {
		return model.Invoice{}, err
	}

	due, err := model.ParseDate(record[invColDueDate])
	if err != nil {
		return model.Invoice{}, err
	}

	return model.Invoice{
		InvoiceID:    strings.TrimSpace(record[invColID]),
		CustomerName: strings.TrimSpace(record[invColCustomer]),
		AmountDue:    amount,
		DueDate:      due,
		Status:       model.InvoiceStatus(strings.TrimSpace(record[invColStatus])),
	}, nil
}

// MarshalPayment converts a Payment to a CSV row.
func MarshalPayment(p model.Payment) []string {
	row := make([]string, len(PaymentHeader))
	row[payColID] = p.PaymentID
	row[payColPayer] = p.PayerName
	row[payColAmount] = formatAmount(p.Amount)
	row[payColDate] = p.PaymentDate.String()
	row[payColMethod] = string(p.Method)
	row[payColRef] = p.ReferenceNote
	return row
}

// UnmarshalPayment converts a CSV row to a Payment. Unknown methods are kept
// as-is; the engine reports them.
func UnmarshalPayment(record []string) (model.Payment, error) {
	if len(record) != len(PaymentHeader) {
		return model.Payment{}, fmt.Errorf("expected %d fields, got %d", len(PaymentHeader), len(record))
	}

	amount, err := parseAmount(record[payColAmount])
	if err != nil {
		return model.Payment{}, err
	}

	date, err := model.ParseDate(record[payColDate])
	if err != nil {
		return model.Payment{}, err
	}

	return model.Payment{
		PaymentID:     strings.TrimSpace(record[payColID]),
		PayerName:     strings.TrimSpace(record[payColPayer]),
		Amount:        amount,
		PaymentDate:   date,
		Method:        model.PaymentMethod(strings.TrimSpace(record[payColMethod])),
		ReferenceNote: strings.TrimSpace(record[payColRef]),
	}, nil
}

// MarshalLedgerEntry converts a LedgerEntry to a CSV row.
func MarshalLedgerEntry(e model.LedgerEntry) []string {
	row := make([]string, len(LedgerHeader))
	row[ledColID] = e.LedgerEntryID
	row[ledColInvoice] = e.InvoiceID
	row[ledColPayment] = e.PaymentID
	row[ledColAmount] = formatAmount(e.Amount)
	row[ledColDate] = e.EntryDate.String()
	return row
}

// UnmarshalLedgerEntry converts a CSV row to a LedgerEntry.
func UnmarshalLedgerEntry(record []string) (model.LedgerEntry, error) {
	if len(record) != len(LedgerHeader) {
		return model.LedgerEntry{}, fmt.Errorf("expected %d fields, got %d", len(LedgerHeader), len(record))
	}

	amount, err := parseAmount(record[ledColAmount])
	if err != nil {
		return model.LedgerEntry{}, err
	}

	date, err := model.ParseDate(record[ledColDate])
	if err != nil {
		return model.LedgerEntry{}, err
	}

	return model.LedgerEntry{
		LedgerEntryID: strings.TrimSpace(record[ledColID]),
		InvoiceID:     strings.TrimSpace(record[ledColInvoice]),
		PaymentID:     strings.TrimSpace(record[ledColPayment]),
		Amount:        amount,
		EntryDate:     date,
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return amount, nil
}

// formatAmount keeps two places, or every place when there are more.
func formatAmount(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}
