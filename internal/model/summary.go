package model

import "github.com/shopspring/decimal"

// StatusCounts holds one counter per Status.
type StatusCounts struct {
	Matched        int `json:"matched"`
	PartialMatch   int `json:"partial_match"`
	AmountMismatch int `json:"amount_mismatch"`
	Unmatched      int `json:"unmatched"`
	Duplicate      int `json:"duplicate"`
}

// Add increments the counter for s. Unknown statuses are ignored.
func (c *StatusCounts) Add(s Status) {
	switch s {
	case StatusMatched:
		c.Matched++
	case StatusPartialMatch:
		c.PartialMatch++
	case StatusAmountMismatch:
		c.AmountMismatch++
	case StatusUnmatched:
		c.Unmatched++
	case StatusDuplicate:
		c.Duplicate++
	}
}

// Get returns the counter for s.
func (c StatusCounts) Get(s Status) int {
	switch s {
	case StatusMatched:
		return c.Matched
	case StatusPartialMatch:
		return c.PartialMatch
	case StatusAmountMismatch:
		return c.AmountMismatch
	case StatusUnmatched:
		return c.Unmatched
	case StatusDuplicate:
		return c.Duplicate
	}
	return 0
}

// Total returns the sum of all counters.
func (c StatusCounts) Total() int {
	return c.Matched + c.PartialMatch + c.AmountMismatch + c.Unmatched + c.Duplicate
}

// CustomerSummary rolls up results for one customer.
type CustomerSummary struct {
	Customer    string          `json:"customer"`
	Payments    int             `json:"payments"`
	Volume      decimal.Decimal `json:"volume"`
	Discrepancy decimal.Decimal `json:"discrepancy"`
	Counts      StatusCounts    `json:"counts"`
}

// Summary aggregates a result collection.
type Summary struct {
	TotalPayments    int               `json:"total_payments"`
	Counts           StatusCounts      `json:"counts"`
	TotalVolume      decimal.Decimal   `json:"total_volume"`
	MatchedVolume    decimal.Decimal   `json:"matched_volume"`
	UnmatchedVolume  decimal.Decimal   `json:"unmatched_volume"`
	TotalDiscrepancy decimal.Decimal   `json:"total_discrepancy"`
	WithIssues       int               `json:"with_issues"`
	MinPayment       decimal.Decimal   `json:"min_payment"`
	MaxPayment       decimal.Decimal   `json:"max_payment"`
	MatchRate        decimal.Decimal   `json:"match_rate"`
	Customers        []CustomerSummary `json:"customers"`
}
