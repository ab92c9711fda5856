// Package report is the FEC aggregation core: journal-entry balance
// validation, the three-level operating-model rollup with flow-vs-stock
// semantics, mock budget synthesis, and the flat account worksheets.
// Everything here is pure over its inputs; the tree is rebuilt from scratch
// on every call.
package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MonthlySeries maps "YYYY-MM" keys to amounts. Keys sort
// lexicographically, which for this format is also chronological.
type MonthlySeries map[string]decimal.Decimal

// Add accumulates an amount into a month bucket. Empty keys are ignored;
// entries without a parseable date contribute to totals only.
func (s MonthlySeries) Add(month string, amount decimal.Decimal) {
	if month == "" {
		return
	}
	s[month] = s[month].Add(amount)
}

// AddSeries accumulates every bucket of other into s.
func (s MonthlySeries) AddSeries(other MonthlySeries) {
	for k, v := range other {
		s[k] = s[k].Add(v)
	}
}

// Keys returns the month keys in ascending order.
func (s MonthlySeries) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Cumulative returns a new series holding the running sum over sorted
// month keys. Stock (balance-sheet) nodes report balances as of each
// month, not period movements.
func (s MonthlySeries) Cumulative() MonthlySeries {
	out := make(MonthlySeries, len(s))
	running := decimal.Zero
	for _, k := range s.Keys() {
		running = running.Add(s[k])
		out[k] = running
	}
	return out
}

// AccountDetail is the per-account leaf aggregate attached under a concept.
type AccountDetail struct {
	Number         string
	Label          string
	Amount         decimal.Decimal
	MonthlyAmounts MonthlySeries
	MonthlyBudgets MonthlySeries
}

// Concept is the finest taxonomy row. It carries account-level detail and
// never has child rows.
type Concept struct {
	Key            string
	Name           string
	Amount         decimal.Decimal
	MonthlyAmounts MonthlySeries
	MonthlyBudgets MonthlySeries
	AccountNumbers []string
	Accounts       []AccountDetail
	IsCollapsed    bool
}

// SubCategory groups concepts under a grand category.
type SubCategory struct {
	Key            string
	Name           string
	Amount         decimal.Decimal
	MonthlyAmounts MonthlySeries
	MonthlyBudgets MonthlySeries
	AccountNumbers []string
	Concepts       []*Concept
	IsCollapsed    bool
}

// Category is a top-level row of the operating model.
type Category struct {
	Key            string
	Name           string
	Amount         decimal.Decimal
	MonthlyAmounts MonthlySeries
	MonthlyBudgets MonthlySeries
	AccountNumbers []string
	SubCategories  []*SubCategory
	IsCollapsed    bool
}

// mergeNumbers unions sorted account-number sets.
func mergeNumbers(sets ...[]string) []string {
	seen := map[string]struct{}{}
	for _, set := range sets {
		for _, n := range set {
			seen[n] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
