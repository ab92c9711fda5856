package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fecworks/fecreport/internal/fec"
	"github.com/fecworks/fecreport/internal/mapping"
)

// UnmappedAccount is one account the static system cannot place, with its
// aggregate debit/credit weight for operator triage.
type UnmappedAccount struct {
	CompteNum   string
	CompteLib   string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	NetAmount   decimal.Decimal
	Count       int
}

// AccountSummary is one account of the file, mapped or not, for the manual
// mapping review surface.
type AccountSummary struct {
	CompteNum   string
	CompteLib   string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	NetAmount   decimal.Decimal
	Count       int
	IsMapped    bool
	Mapping     *mapping.Mapping
}

// accountAggregate accumulates entries sharing a normalized account number.
type accountAggregate struct {
	num    string
	label  string
	debit  decimal.Decimal
	credit decimal.Decimal
	count  int
}

// aggregateKey prefers the normalized number and falls back to the raw one
// so blank-normalizing accounts still group.
func aggregateKey(raw string) string {
	if n := fec.NormalizeAccountNumber(raw); n != "" {
		return n
	}
	return raw
}

func aggregateAccounts(entries []fec.Entry, keep func(fec.Entry) bool) []*accountAggregate {
	byKey := make(map[string]*accountAggregate)
	var order []string
	for _, e := range entries {
		if keep != nil && !keep(e) {
			continue
		}
		key := aggregateKey(e.CompteNum)
		agg, ok := byKey[key]
		if !ok {
			agg = &accountAggregate{num: key, debit: decimal.Zero, credit: decimal.Zero}
			byKey[key] = agg
			order = append(order, key)
		}
		if agg.label == "" {
			agg.label = e.CompteLib
		}
		agg.debit = agg.debit.Add(e.DebitAmount())
		agg.credit = agg.credit.Add(e.CreditAmount())
		agg.count++
	}
	out := make([]*accountAggregate, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out
}

// UnmappedAccounts lists accounts that resolve to nothing through the
// static table alone, sorted by descending absolute net amount. Session
// overrides are deliberately not consulted: the view answers what the
// static system leaves unmapped, and the caller subtracts session-mapped
// accounts afterwards.
func (g *Engine) UnmappedAccounts(entries []fec.Entry) []UnmappedAccount {
	aggs := aggregateAccounts(entries, func(e fec.Entry) bool {
		_, ok := g.resolver.ResolveStatic(e.CompteNum)
		return !ok
	})
	out := make([]UnmappedAccount, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, UnmappedAccount{
			CompteNum:   a.num,
			CompteLib:   a.label,
			TotalDebit:  a.debit,
			TotalCredit: a.credit,
			NetAmount:   a.debit.Sub(a.credit),
			Count:       a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := out[i].NetAmount.Abs(), out[j].NetAmount.Abs()
		if !ni.Equal(nj) {
			return ni.GreaterThan(nj)
		}
		return out[i].CompteNum < out[j].CompteNum
	})
	return out
}

// AllAccounts lists every distinct account of the file, tagged with its
// static mapping when one exists, sorted ascending by account number.
// As with UnmappedAccounts, session overrides are applied by the caller.
func (g *Engine) AllAccounts(entries []fec.Entry) []AccountSummary {
	aggs := aggregateAccounts(entries, nil)
	out := make([]AccountSummary, 0, len(aggs))
	for _, a := range aggs {
		s := AccountSummary{
			CompteNum:   a.num,
			CompteLib:   a.label,
			TotalDebit:  a.debit,
			TotalCredit: a.credit,
			NetAmount:   a.debit.Sub(a.credit),
			Count:       a.count,
		}
		if m, ok := g.resolver.ResolveStatic(a.num); ok {
			s.IsMapped = true
			s.Mapping = &m
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompteNum < out[j].CompteNum })
	return out
}
