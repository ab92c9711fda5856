package report

// ExportRows flattens the category and sub-category levels into the
// {Grande Catégorie, Sous-Catégorie, Montant} projection consumed by the
// CSV export. The first row is the header; each category row precedes its
// sub-category rows.
func ExportRows(categories []*Category) [][]string {
	rows := [][]string{{"Grande Catégorie", "Sous-Catégorie", "Montant"}}
	for _, cat := range categories {
		rows = append(rows, []string{cat.Name, "", cat.Amount.StringFixed(2)})
		for _, sub := range cat.SubCategories {
			rows = append(rows, []string{cat.Name, sub.Name, sub.Amount.StringFixed(2)})
		}
	}
	return rows
}
