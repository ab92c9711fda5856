package report

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSynthesizeZeroStaysZero(t *testing.T) {
	var s BudgetSynthesizer
	if got := s.Synthesize("512000000", "2025-01", decimal.Zero); !got.IsZero() {
		t.Fatalf("zero actual must yield zero budget, got %s", got)
	}
}

func TestSynthesizeDeterministicPerAccountMonth(t *testing.T) {
	var s BudgetSynthesizer
	actual := decimal.NewFromInt(1234)
	a := s.Synthesize("613520030", "2025-03", actual)
	b := s.Synthesize("613520030", "2025-03", actual)
	if !a.Equal(b) {
		t.Fatalf("same cell must synthesize identically: %s vs %s", a, b)
	}
	// A different month draws a different multiplier (with overwhelming
	// likelihood for this input).
	c := s.Synthesize("613520030", "2025-04", actual)
	d := s.Synthesize("613520031", "2025-03", actual)
	if a.Equal(c) && a.Equal(d) {
		t.Fatalf("distinct cells should not all coincide: %s", a)
	}
}

func TestSynthesizeStaysWithinBand(t *testing.T) {
	var s BudgetSynthesizer
	for _, actual := range []int64{50, -80, 400, -750, 12000, -99999} {
		d := decimal.NewFromInt(actual)
		got, _ := s.Synthesize("401100000", "2025-06", d).Float64()
		lo, hi := float64(actual)*0.85, float64(actual)*1.15
		if lo > hi {
			lo, hi = hi, lo
		}
		// Human rounding can push past the band edge by up to half a step.
		slack := 50.0
		if got < lo-slack || got > hi+slack {
			t.Fatalf("budget %v for actual %d outside [%v, %v]", got, actual, lo, hi)
		}
	}
}

func TestHumanRounding(t *testing.T) {
	var s BudgetSynthesizer
	cases := []struct {
		actual int64
		step   float64
	}{
		{42, 10},     // |result| < 100 → nearest 10
		{600, 50},    // < 1000 → nearest 50
		{50000, 100}, // else → nearest 100
	}
	for _, c := range cases {
		got, _ := s.Synthesize("606100000", "2025-02", decimal.NewFromInt(c.actual)).Float64()
		if r := math.Mod(math.Abs(got), c.step); r > 1e-9 && c.step-r > 1e-9 {
			t.Fatalf("budget %v for actual %d not a multiple of %v", got, c.actual, c.step)
		}
	}
}
