package mapping

import (
	"sort"
	"strings"

	"github.com/fecworks/fecreport/internal/fec"
)

// Table is the static account-to-taxonomy table. It matches in two ways:
// longest-prefix rules over the raw account number (the hierarchy of the
// plan comptable général makes prefixes meaningful) and exact entries keyed
// by normalized 9-character number.
type Table struct {
	prefixes map[string]Mapping
	exact    map[string]Mapping
	// prefix lengths present in prefixes, longest first
	lengths []int
}

// NewTable builds a table from prefix rules and exact normalized entries.
func NewTable(prefixes map[string]Mapping, exact map[string]Mapping) *Table {
	t := &Table{prefixes: prefixes, exact: exact}
	seen := map[int]struct{}{}
	for p := range prefixes {
		if _, ok := seen[len(p)]; !ok {
			seen[len(p)] = struct{}{}
			t.lengths = append(t.lengths, len(p))
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(t.lengths)))
	return t
}

// Fallback resolves a raw account number against the prefix rules,
// longest prefix first. The raw number is trimmed but not padded; prefix
// matching does not care about canonical width.
func (t *Table) Fallback(raw string) (Mapping, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Mapping{}, false
	}
	for _, n := range t.lengths {
		if n > len(s) {
			continue
		}
		if m, ok := t.prefixes[s[:n]]; ok {
			return m, true
		}
	}
	return Mapping{}, false
}

// Exact resolves a normalized account number against the exact entries.
func (t *Table) Exact(normalized string) (Mapping, bool) {
	m, ok := t.exact[normalized]
	return m, ok
}

// Default returns the built-in table covering classes 1-7 of the plan
// comptable général. The grand-category placement follows standard French
// statutory reporting: classes 1-5 are balance-sheet, 6-7 are P&L.
func Default() *Table {
	prefixes := map[string]Mapping{
		// Class 1: capital and long-term funding
		"101": {Concept: "Share Capital", SubCategory: "Equity", Category: CategoryEquityFunding},
		"106": {Concept: "Reserves", SubCategory: "Equity", Category: CategoryEquityFunding},
		"108": {Concept: "Owner's Account", SubCategory: "Equity", Category: CategoryEquityFunding},
		"11":  {Concept: "Retained Earnings", SubCategory: "Equity", Category: CategoryEquityFunding},
		"12":  {Concept: "Net Income", SubCategory: "Equity", Category: CategoryEquityFunding},
		"13":  {Concept: "Investment Grants", SubCategory: "Long-term Funding", Category: CategoryEquityFunding},
		"14":  {Concept: "Regulated Provisions", SubCategory: "Long-term Funding", Category: CategoryEquityFunding},
		"15":  {Concept: "Provisions", SubCategory: "Long-term Funding", Category: CategoryEquityFunding},
		"16":  {Concept: "Borrowings", SubCategory: "Long-term Funding", Category: CategoryEquityFunding},
		"17":  {Concept: "Intercompany Funding", SubCategory: "Long-term Funding", Category: CategoryEquityFunding},
		"18":  {Concept: "Intercompany Funding", SubCategory: "Long-term Funding", Category: CategoryEquityFunding},

		// Class 2: fixed assets
		"20": {Concept: "Intangible Assets", SubCategory: "Fixed Assets", Category: CategoryNonCurrentAssets},
		"21": {Concept: "Tangible Assets", SubCategory: "Fixed Assets", Category: CategoryNonCurrentAssets},
		"23": {Concept: "Assets in Progress", SubCategory: "Fixed Assets", Category: CategoryNonCurrentAssets},
		"26": {Concept: "Financial Assets", SubCategory: "Fixed Assets", Category: CategoryNonCurrentAssets},
		"27": {Concept: "Financial Assets", SubCategory: "Fixed Assets", Category: CategoryNonCurrentAssets},
		"28": {Concept: "Depreciation & Impairment", SubCategory: "Fixed Assets", Category: CategoryNonCurrentAssets},
		"29": {Concept: "Depreciation & Impairment", SubCategory: "Fixed Assets", Category: CategoryNonCurrentAssets},

		// Class 3: inventory
		"3": {Concept: "Inventory", SubCategory: "Inventory", Category: CategoryCurrentAssets},

		// Class 4: receivables and payables
		"40":   {Concept: "Trade Payables", SubCategory: "Payables", Category: CategoryCurrentLiabilities},
		"41":   {Concept: "Trade Receivables", SubCategory: "Receivables", Category: CategoryCurrentAssets},
		"42":   {Concept: "Payroll Liabilities", SubCategory: "Payables", Category: CategoryCurrentLiabilities},
		"43":   {Concept: "Social Security Liabilities", SubCategory: "Payables", Category: CategoryCurrentLiabilities},
		"44":   {Concept: "Tax Liabilities", SubCategory: "Payables", Category: CategoryCurrentLiabilities},
		"4456": {Concept: "VAT Deductible", SubCategory: "Receivables", Category: CategoryCurrentAssets},
		"4457": {Concept: "VAT Collected", SubCategory: "Payables", Category: CategoryCurrentLiabilities},
		"45":   {Concept: "Group & Associates", SubCategory: "Payables", Category: CategoryCurrentLiabilities},
		"46":   {Concept: "Other Receivables & Payables", SubCategory: "Payables", Category: CategoryCurrentLiabilities},
		"47":   {Concept: "Suspense", SubCategory: "Other Current Assets", Category: CategoryCurrentAssets},
		"48":   {Concept: "Accruals", SubCategory: "Other Current Assets", Category: CategoryCurrentAssets},
		"49":   {Concept: "Impairment of Receivables", SubCategory: "Receivables", Category: CategoryCurrentAssets},

		// Class 5: cash
		"50": {Concept: "Marketable Securities", SubCategory: "Cash & Equivalents", Category: CategoryCurrentAssets},
		"51": {Concept: "Bank", SubCategory: "Cash & Equivalents", Category: CategoryCurrentAssets},
		"53": {Concept: "Petty Cash", SubCategory: "Cash & Equivalents", Category: CategoryCurrentAssets},
		"58": {Concept: "Internal Transfers", SubCategory: "Cash & Equivalents", Category: CategoryCurrentAssets},

		// Class 6: expenses
		"60":  {Concept: "Purchases", SubCategory: "Cost of Goods & Services", Category: CategoryOpex},
		"606": {Concept: "Supplies", SubCategory: "Cost of Goods & Services", Category: CategoryOpex},
		"61":  {Concept: "External Services", SubCategory: "General & Administrative", Category: CategoryOpex},
		"613": {Concept: "Rent & Leasing", SubCategory: "General & Administrative", Category: CategoryOpex},
		"62":  {Concept: "Professional Services", SubCategory: "General & Administrative", Category: CategoryOpex},
		"623": {Concept: "Marketing & Advertising", SubCategory: "Sales & Marketing", Category: CategoryOpex},
		"625": {Concept: "Travel & Entertainment", SubCategory: "General & Administrative", Category: CategoryOpex},
		"63":  {Concept: "Taxes & Duties", SubCategory: "General & Administrative", Category: CategoryOpex},
		"64":  {Concept: "Wages & Salaries", SubCategory: "Personnel", Category: CategoryOpex},
		"645": {Concept: "Social Charges", SubCategory: "Personnel", Category: CategoryOpex},
		"65":  {Concept: "Other Operating Expenses", SubCategory: "General & Administrative", Category: CategoryOpex},
		"66":  {Concept: "Interest Expense", SubCategory: "Financial Expenses", Category: CategoryOpex},
		"67":  {Concept: "Exceptional Expenses", SubCategory: "Exceptional Items", Category: CategoryOpex},
		"68":  {Concept: "Depreciation Expense", SubCategory: "Depreciation & Provisions", Category: CategoryOpex},
		"69":  {Concept: "Income Tax", SubCategory: "Income Tax", Category: CategoryOpex},

		// Class 7: revenue
		"70":  {Concept: "Sales", SubCategory: "Operating Revenue", Category: CategoryRevenue},
		"701": {Concept: "Product Sales", SubCategory: "Operating Revenue", Category: CategoryRevenue},
		"706": {Concept: "Service Revenue", SubCategory: "Operating Revenue", Category: CategoryRevenue},
		"708": {Concept: "Ancillary Revenue", SubCategory: "Operating Revenue", Category: CategoryRevenue},
		"74":  {Concept: "Operating Subsidies", SubCategory: "Other Revenue", Category: CategoryRevenue},
		"75":  {Concept: "Other Operating Revenue", SubCategory: "Other Revenue", Category: CategoryRevenue},
		"76":  {Concept: "Financial Income", SubCategory: "Other Revenue", Category: CategoryRevenue},
		"77":  {Concept: "Exceptional Income", SubCategory: "Other Revenue", Category: CategoryRevenue},
		"78":  {Concept: "Provision Reversals", SubCategory: "Other Revenue", Category: CategoryRevenue},
		"79":  {Concept: "Expense Transfers", SubCategory: "Other Revenue", Category: CategoryRevenue},
	}

	// Exact entries for accounts whose padded form is commonly emitted
	// verbatim by accounting packages.
	exact := map[string]Mapping{
		fec.NormalizeAccountNumber("512"):  {Concept: "Bank", SubCategory: "Cash & Equivalents", Category: CategoryCurrentAssets},
		fec.NormalizeAccountNumber("530"):  {Concept: "Petty Cash", SubCategory: "Cash & Equivalents", Category: CategoryCurrentAssets},
		fec.NormalizeAccountNumber("4011"): {Concept: "Trade Payables", SubCategory: "Payables", Category: CategoryCurrentLiabilities},
		fec.NormalizeAccountNumber("4111"): {Concept: "Trade Receivables", SubCategory: "Receivables", Category: CategoryCurrentAssets},
		fec.NormalizeAccountNumber("6061"): {Concept: "Supplies", SubCategory: "Cost of Goods & Services", Category: CategoryOpex},
		fec.NormalizeAccountNumber("7061"): {Concept: "Service Revenue", SubCategory: "Operating Revenue", Category: CategoryRevenue},
	}

	return NewTable(prefixes, exact)
}
