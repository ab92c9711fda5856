package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Operating Expenses (OPEX)", "operating_expenses_opex"},
		{"Equity & Long-term Funding", "equity_long_term_funding"},
		{"Cash & Equivalents", "cash_equivalents"},
		{"Revenue", "revenue"},
		{"  VAT  Collected  ", "vat_collected"},
		{"", ""},
		{"---", ""},
	}
	for _, tc := range tests {
		if got := Make(tc.in); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join("", "Revenue"); got != "revenue" {
		t.Errorf("root join: %q", got)
	}
	if got := Join("revenue", "Operating Revenue"); got != "revenue.operating_revenue" {
		t.Errorf("child join: %q", got)
	}
}
