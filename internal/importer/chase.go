package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payrecon/internal/model"
)

// ChaseParser parses Chase checking CSV exports. Only credits become
// payments; debits are skipped.
type ChaseParser struct{}

const (
	chaseDateFormat = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
	chaseColType    = 4
)

// ACH descriptions carry the originator between these markers.
const (
	achNameMarker = "ORIG CO NAME:"
	achIDMarker   = "ORIG ID:"
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns one payment per credit row.
func (p *ChaseParser) Parse(r io.Reader) ([]model.Payment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var payments []model.Payment
	seen := make(map[string]int)
	for i, rec := range records[1:] {
		pay, ok, err := parseChaseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if !ok {
			continue
		}
		// Same-day credits with the same description get a sequence suffix.
		seen[pay.PaymentID]++
		if n := seen[pay.PaymentID]; n > 1 {
			pay.PaymentID = fmt.Sprintf("%s_%d", pay.PaymentID, n)
		}
		payments = append(payments, pay)
	}
	return payments, nil
}

func parseChaseRow(rec []string) (model.Payment, bool, error) {
	date, err := time.Parse(chaseDateFormat, strings.TrimSpace(rec[chaseColDate]))
	if err != nil {
		return model.Payment{}, false, fmt.Errorf("parsing date %q: %w", rec[chaseColDate], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[chaseColAmount]))
	if err != nil {
		return model.Payment{}, false, fmt.Errorf("parsing amount %q: %w", rec[chaseColAmount], err)
	}
	if !amount.IsPositive() {
		return model.Payment{}, false, nil
	}

	desc := strings.TrimSpace(rec[chaseColDesc])
	payer := payerName(desc)
	return model.Payment{
		PaymentID:     makeChaseRef(date, payer),
		PayerName:     payer,
		Amount:        amount,
		PaymentDate:   model.Date{Time: date},
		Method:        paymentMethod(strings.TrimSpace(rec[chaseColType])),
		ReferenceNote: desc,
	}, true, nil
}

// makeChaseRef creates a payment ID like chase_20250114_ACMECORP.
func makeChaseRef(date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("chase_%s_%s", date.Format("20060102"), prefix)
}

// payerName extracts the ACH originator, or returns desc unchanged.
func payerName(desc string) string {
	_, rest, ok := strings.Cut(desc, achNameMarker)
	if !ok {
		return desc
	}
	name, _, _ := strings.Cut(rest, achIDMarker)
	if name = strings.TrimSpace(name); name == "" {
		return desc
	}
	return name
}

// paymentMethod maps a Chase transaction type. Unrecognized types pass
// through so reconciliation reports them.
func paymentMethod(typ string) model.PaymentMethod {
	switch upper := strings.ToUpper(typ); {
	case strings.HasPrefix(upper, "ACH"):
		return model.MethodACH
	case strings.HasPrefix(upper, "WIRE"):
		return model.MethodWire
	case strings.Contains(upper, "CHECK") || upper == "DEPOSIT":
		return model.MethodCheck
	case strings.Contains(upper, "CARD"):
		return model.MethodCreditCard
	default:
		return model.PaymentMethod(typ)
	}
}
