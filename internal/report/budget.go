package report

import (
	"math"
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// BudgetSynthesizer produces mock budget figures for the budget-vs-actual
// comparison. Figures carry no forecasting semantics: each is the actual
// amount scaled by a multiplier in [0.85, 1.15] and rounded to a "human"
// figure. The draw is seeded from the (account, month) pair so the same
// cell always yields the same budget across recomputes.
type BudgetSynthesizer struct{}

// Synthesize returns the mock budget for an account-month given its actual
// net amount. Zero actuals stay zero.
func (BudgetSynthesizer) Synthesize(accountNumber, monthKey string, actual decimal.Decimal) decimal.Decimal {
	if actual.IsZero() {
		return decimal.Zero
	}
	seed := xxhash.Sum64String(accountNumber + "|" + monthKey)
	rng := rand.New(rand.NewSource(int64(seed)))
	multiplier := 0.85 + rng.Float64()*0.30

	raw := actual.InexactFloat64() * multiplier
	return decimal.NewFromFloat(humanRound(raw))
}

// humanRound rounds to the nearest 10 below 100, nearest 50 below 1000 and
// nearest 100 beyond, judged on magnitude.
func humanRound(v float64) float64 {
	var step float64
	switch abs := math.Abs(v); {
	case abs < 100:
		step = 10
	case abs < 1000:
		step = 50
	default:
		step = 100
	}
	return math.Round(v/step) * step
}
