package mapping

import (
	"testing"

	"github.com/fecworks/fecreport/internal/fec"
)

func TestTableFallbackLongestPrefixWins(t *testing.T) {
	tbl := Default()

	m, ok := tbl.Fallback("70100000")
	if !ok || m.Concept != "Product Sales" {
		t.Fatalf("701 prefix should beat 70: %+v ok=%v", m, ok)
	}
	m, ok = tbl.Fallback("70900000")
	if !ok || m.Concept != "Sales" {
		t.Fatalf("709 should fall back to 70: %+v ok=%v", m, ok)
	}
	m, ok = tbl.Fallback("44566000")
	if !ok || m.Concept != "VAT Deductible" {
		t.Fatalf("4456 prefix should beat 44: %+v ok=%v", m, ok)
	}
	if _, ok := tbl.Fallback("99999999"); ok {
		t.Fatal("class 9 should not resolve")
	}
	if _, ok := tbl.Fallback(""); ok {
		t.Fatal("empty number should not resolve")
	}
}

func TestResolverChainOrder(t *testing.T) {
	r := NewResolver(Default())

	custom := Mapping{Concept: "Software", SubCategory: "R&D Expenses", Category: CategoryOpex}
	overrides := Overrides{}.With(fec.NormalizeAccountNumber("61352003"), custom)

	// Override wins over the static 613 prefix rule.
	m, ok := r.Resolve("61352003", overrides)
	if !ok || m != custom {
		t.Fatalf("override should win: %+v ok=%v", m, ok)
	}

	// Without override, the 613 prefix rule applies.
	m, ok = r.Resolve("61352003", nil)
	if !ok || m.Concept != "Rent & Leasing" {
		t.Fatalf("static fallback expected: %+v ok=%v", m, ok)
	}

	// ResolveStatic must ignore overrides.
	m, ok = r.ResolveStatic("61352003")
	if !ok || m.Concept != "Rent & Leasing" {
		t.Fatalf("static resolution should ignore overrides: %+v ok=%v", m, ok)
	}

	if _, ok := r.Resolve("99999999", overrides); ok {
		t.Fatal("unmapped class 9 account should not resolve")
	}
}

func TestResolverExactNormalizedLookup(t *testing.T) {
	tbl := NewTable(map[string]Mapping{}, map[string]Mapping{
		"613520030": {Concept: "Software", SubCategory: "R&D Expenses", Category: CategoryOpex},
	})
	r := NewResolver(tbl)

	// No prefix rules; only the exact normalized entry matches, reached via
	// the short raw form through padding.
	m, ok := r.Resolve("61352003", nil)
	if !ok || m.Concept != "Software" {
		t.Fatalf("exact normalized lookup failed: %+v ok=%v", m, ok)
	}
}

func TestOverridesCopyOnWrite(t *testing.T) {
	base := Overrides{}.With("613520030", Mapping{Concept: "A"})
	next := base.With("701000000", Mapping{Concept: "B"})
	if len(base) != 1 {
		t.Fatalf("base mutated: %d entries", len(base))
	}
	if len(next) != 2 {
		t.Fatalf("next missing entries: %d", len(next))
	}
	pruned := next.Without("613520030")
	if _, ok := next.Get("613520030"); !ok {
		t.Fatal("next mutated by Without")
	}
	if _, ok := pruned.Get("613520030"); ok {
		t.Fatal("pruned still has removed entry")
	}
}

func TestIsStockCategory(t *testing.T) {
	for _, name := range []string{CategoryCurrentAssets, CategoryCurrentLiabilities, CategoryEquityFunding, CategoryNonCurrentAssets} {
		if !IsStockCategory(name) {
			t.Fatalf("%s should be stock", name)
		}
	}
	if IsStockCategory(CategoryOpex) || IsStockCategory(CategoryRevenue) {
		t.Fatal("P&L categories must not be stock")
	}
}
