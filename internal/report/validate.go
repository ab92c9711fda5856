package report

import (
	"github.com/shopspring/decimal"

	"github.com/fecworks/fecreport/internal/fec"
)

// balanceTolerance is the maximum |debit-credit| difference still
// considered balanced, both per écriture and globally.
var balanceTolerance = decimal.New(1, -2) // 0.01

// UnbalancedEntry describes one journal entry whose lines do not net to
// zero within tolerance.
type UnbalancedEntry struct {
	EcritureNum string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
}

// ValidationResult is the per-écriture balance check over a whole file.
type ValidationResult struct {
	IsValid    bool
	Unbalanced []UnbalancedEntry
}

// ValidateEntries groups entries by EcritureNum and checks that debits and
// credits balance within tolerance for each group. Malformed amounts count
// as zero; the check never fails, it only reports.
func ValidateEntries(entries []fec.Entry) ValidationResult {
	type totals struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	groups := make(map[string]*totals)
	var order []string
	for _, e := range entries {
		g, ok := groups[e.EcritureNum]
		if !ok {
			g = &totals{}
			groups[e.EcritureNum] = g
			order = append(order, e.EcritureNum)
		}
		g.debit = g.debit.Add(e.DebitAmount())
		g.credit = g.credit.Add(e.CreditAmount())
	}

	res := ValidationResult{IsValid: true}
	for _, num := range order {
		g := groups[num]
		diff := g.debit.Sub(g.credit).Abs()
		if diff.GreaterThan(balanceTolerance) {
			res.Unbalanced = append(res.Unbalanced, UnbalancedEntry{
				EcritureNum: num,
				TotalDebit:  g.debit,
				TotalCredit: g.credit,
				Difference:  diff,
			})
		}
	}
	res.IsValid = len(res.Unbalanced) == 0
	return res
}

// Balance is the whole-file debit/credit cross-check, computed over every
// entry regardless of mapping status.
type Balance struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	NetBalance  decimal.Decimal
	IsBalanced  bool
}

// GlobalBalance sums debits and credits across all entries. A file can be
// globally balanced while individual écritures are not, so both checks are
// exposed separately.
func GlobalBalance(entries []fec.Entry) Balance {
	var b Balance
	b.TotalDebit = decimal.Zero
	b.TotalCredit = decimal.Zero
	for _, e := range entries {
		b.TotalDebit = b.TotalDebit.Add(e.DebitAmount())
		b.TotalCredit = b.TotalCredit.Add(e.CreditAmount())
	}
	b.NetBalance = b.TotalDebit.Sub(b.TotalCredit)
	b.IsBalanced = b.NetBalance.Abs().LessThanOrEqual(balanceTolerance)
	return b
}
