// Package mapping assigns chart-of-accounts numbers to the three-level
// reporting taxonomy (grand category, sub-category, concept). Resolution
// layers a session override map over a static table derived from the French
// plan comptable général.
package mapping

// Mapping places an account under the reporting taxonomy.
type Mapping struct {
	Concept     string `json:"concept"`
	SubCategory string `json:"sub_category"`
	Category    string `json:"category"`
}

// Grand category names used by the static table. Callers may introduce new
// category names through overrides; flow-vs-stock classification keys off
// the name, not this list.
const (
	CategoryCurrentAssets      = "Current Assets"
	CategoryCurrentLiabilities = "Current Liabilities"
	CategoryEquityFunding      = "Equity & Long-term Funding"
	CategoryNonCurrentAssets   = "Non-Current Assets"
	CategoryOpex               = "Operating Expenses (OPEX)"
	CategoryRevenue            = "Revenue"
)

// stockCategories are balance-sheet categories: their monthly series carry
// cumulative balances rather than period movements.
var stockCategories = map[string]struct{}{
	CategoryCurrentAssets:      {},
	CategoryCurrentLiabilities: {},
	CategoryEquityFunding:      {},
	CategoryNonCurrentAssets:   {},
}

// IsStockCategory reports whether the named grand category is a
// balance-sheet (stock) category.
func IsStockCategory(name string) bool {
	_, ok := stockCategories[name]
	return ok
}
