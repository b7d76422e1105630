package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payrecon/internal/id"
	"github.com/cleared-dev/payrecon/internal/model"
)

// Summarize folds results into a Summary. The outcome does not depend on
// the order of results.
func Summarize(results []model.Result) model.Summary {
	s := model.Summary{
		TotalVolume:      decimal.Zero,
		MatchedVolume:    decimal.Zero,
		UnmatchedVolume:  decimal.Zero,
		TotalDiscrepancy: decimal.Zero,
		MinPayment:       decimal.Zero,
		MaxPayment:       decimal.Zero,
		MatchRate:        decimal.Zero,
		Customers:        []model.CustomerSummary{},
	}

	customers := make(map[string]*model.CustomerSummary)
	haveRange := false

	for _, r := range results {
		s.TotalPayments++
		s.Counts.Add(r.Status)
		if len(r.Issues) > 0 {
			s.WithIssues++
		}

		key := id.NormalizeName(r.Customer)
		cs, ok := customers[key]
		if !ok {
			cs = &model.CustomerSummary{
				Customer:    r.Customer,
				Volume:      decimal.Zero,
				Discrepancy: decimal.Zero,
			}
			customers[key] = cs
		} else if r.Customer < cs.Customer {
			// Spellings differing only in case or spacing share a key; keep
			// the smallest so the label does not depend on order.
			cs.Customer = r.Customer
		}
		cs.Payments++
		cs.Counts.Add(r.Status)

		s.TotalDiscrepancy = s.TotalDiscrepancy.Add(r.Discrepancy)
		s.MatchedVolume = s.MatchedVolume.Add(r.MatchedAmount)
		cs.Discrepancy = cs.Discrepancy.Add(r.Discrepancy)

		if r.HasIssue(model.IssueNegativeAmount) {
			continue
		}
		s.TotalVolume = s.TotalVolume.Add(r.PaymentAmount)
		cs.Volume = cs.Volume.Add(r.PaymentAmount)
		if r.Status == model.StatusUnmatched {
			s.UnmatchedVolume = s.UnmatchedVolume.Add(r.PaymentAmount)
		}
		if !haveRange {
			s.MinPayment, s.MaxPayment = r.PaymentAmount, r.PaymentAmount
			haveRange = true
			continue
		}
		s.MinPayment = decimal.Min(s.MinPayment, r.PaymentAmount)
		s.MaxPayment = decimal.Max(s.MaxPayment, r.PaymentAmount)
	}

	if s.TotalPayments > 0 {
		s.MatchRate = decimal.NewFromInt(int64(s.Counts.Matched)).
			Div(decimal.NewFromInt(int64(s.TotalPayments))).
			Round(4)
	}

	for _, cs := range customers {
		s.Customers = append(s.Customers, *cs)
	}
	sort.Slice(s.Customers, func(i, j int) bool {
		return s.Customers[i].Customer < s.Customers[j].Customer
	})

	return s
}
