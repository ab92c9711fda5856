package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fecworks/fecreport/internal/fec"
	"github.com/fecworks/fecreport/internal/mapping"
	"github.com/fecworks/fecreport/internal/slug"
)

// Engine builds the operating-model tree from raw entries and the current
// session overrides. It holds no mutable state; every Build is a full
// recompute.
type Engine struct {
	resolver *mapping.Resolver
	budget   BudgetSynthesizer
}

// NewEngine wraps an account resolver.
func NewEngine(resolver *mapping.Resolver) *Engine {
	return &Engine{resolver: resolver}
}

// classified is one mappable entry with its parsed fields, ready for
// grouping.
type classified struct {
	mapping mapping.Mapping
	account string // normalized number, raw as fallback
	label   string
	month   string
	net     decimal.Decimal
}

// Build maps every entry to its taxonomy position and folds the tree
// bottom-up: concepts first from account details, then sub-category and
// category rows derived purely from already-built children. Entries that
// resolve to no mapping are dropped; they surface through the unmapped
// worksheet instead. Categories are ordered by French collation.
func (g *Engine) Build(entries []fec.Entry, overrides mapping.Overrides) []*Category {
	// Group mappable entries by category / sub-category / concept. Key
	// equality is exact string match.
	type conceptGroup map[string][]classified
	type subGroup map[string]conceptGroup
	byCategory := make(map[string]subGroup)

	for _, e := range entries {
		m, ok := g.resolver.Resolve(e.CompteNum, overrides)
		if !ok {
			continue
		}
		acct := fec.NormalizeAccountNumber(e.CompteNum)
		if acct == "" {
			acct = e.CompteNum
		}
		c := classified{
			mapping: m,
			account: acct,
			label:   e.CompteLib,
			month:   e.MonthKey(),
			net:     e.NetAmount(),
		}
		subs, ok := byCategory[m.Category]
		if !ok {
			subs = make(subGroup)
			byCategory[m.Category] = subs
		}
		concepts, ok := subs[m.SubCategory]
		if !ok {
			concepts = make(conceptGroup)
			subs[m.SubCategory] = concepts
		}
		concepts[m.Concept] = append(concepts[m.Concept], c)
	}

	collator := collate.New(language.French)
	categories := make([]*Category, 0, len(byCategory))
	for catName, subs := range byCategory {
		stock := mapping.IsStockCategory(catName)

		cat := &Category{
			Key:            slug.Make(catName),
			Name:           catName,
			Amount:         decimal.Zero,
			MonthlyAmounts: MonthlySeries{},
			MonthlyBudgets: MonthlySeries{},
		}
		for subName, concepts := range subs {
			sub := g.buildSubCategory(cat.Key, subName, concepts, stock)
			cat.SubCategories = append(cat.SubCategories, sub)
			cat.Amount = cat.Amount.Add(sub.Amount)
			// Sub-category series are already cumulative for stock
			// categories; summing them keeps the invariant at this level.
			cat.MonthlyAmounts.AddSeries(sub.MonthlyAmounts)
			cat.MonthlyBudgets.AddSeries(sub.MonthlyBudgets)
		}
		sort.Slice(cat.SubCategories, func(i, j int) bool {
			return collator.CompareString(cat.SubCategories[i].Name, cat.SubCategories[j].Name) < 0
		})
		sets := make([][]string, 0, len(cat.SubCategories))
		for _, sub := range cat.SubCategories {
			sets = append(sets, sub.AccountNumbers)
		}
		cat.AccountNumbers = mergeNumbers(sets...)
		categories = append(categories, cat)
	}

	sort.Slice(categories, func(i, j int) bool {
		return collator.CompareString(categories[i].Name, categories[j].Name) < 0
	})
	return categories
}

func (g *Engine) buildSubCategory(catKey, subName string, concepts map[string][]classified, stock bool) *SubCategory {
	sub := &SubCategory{
		Key:            slug.Join(catKey, subName),
		Name:           subName,
		Amount:         decimal.Zero,
		MonthlyAmounts: MonthlySeries{},
		MonthlyBudgets: MonthlySeries{},
		IsCollapsed:    true,
	}
	for conceptName, items := range concepts {
		concept := g.buildConcept(sub.Key, conceptName, items)
		sub.Concepts = append(sub.Concepts, concept)
		sub.Amount = sub.Amount.Add(concept.Amount)
	}
	// Sub-category raw series is the sum of the concepts' raw movements;
	// the cumulative transform below is then applied to the sub's own
	// series, independently of its children's transforms.
	for _, concept := range sub.Concepts {
		sub.MonthlyAmounts.AddSeries(concept.MonthlyAmounts)
		sub.MonthlyBudgets.AddSeries(concept.MonthlyBudgets)
	}
	if stock {
		sub.MonthlyAmounts = sub.MonthlyAmounts.Cumulative()
		sub.MonthlyBudgets = sub.MonthlyBudgets.Cumulative()
		for _, concept := range sub.Concepts {
			concept.MonthlyAmounts = concept.MonthlyAmounts.Cumulative()
			concept.MonthlyBudgets = concept.MonthlyBudgets.Cumulative()
			for i := range concept.Accounts {
				concept.Accounts[i].MonthlyAmounts = concept.Accounts[i].MonthlyAmounts.Cumulative()
				concept.Accounts[i].MonthlyBudgets = concept.Accounts[i].MonthlyBudgets.Cumulative()
			}
		}
	}

	collator := collate.New(language.French)
	sort.Slice(sub.Concepts, func(i, j int) bool {
		return collator.CompareString(sub.Concepts[i].Name, sub.Concepts[j].Name) < 0
	})
	sets := make([][]string, 0, len(sub.Concepts))
	for _, concept := range sub.Concepts {
		sets = append(sets, concept.AccountNumbers)
	}
	sub.AccountNumbers = mergeNumbers(sets...)
	return sub
}

// buildConcept folds one concept group: one AccountDetail per distinct
// account number with raw monthly movements, a budget figure per
// account-month synthesized from the raw actual, and concept totals summed
// from the accounts. Series stay raw here; any cumulative transform is
// applied by the caller.
func (g *Engine) buildConcept(subKey, name string, items []classified) *Concept {
	byAccount := make(map[string]*AccountDetail)
	var numbers []string
	for _, c := range items {
		acc, ok := byAccount[c.account]
		if !ok {
			acc = &AccountDetail{
				Number:         c.account,
				Label:          c.label,
				Amount:         decimal.Zero,
				MonthlyAmounts: MonthlySeries{},
				MonthlyBudgets: MonthlySeries{},
			}
			byAccount[c.account] = acc
			numbers = append(numbers, c.account)
		}
		if acc.Label == "" {
			acc.Label = c.label
		}
		acc.Amount = acc.Amount.Add(c.net)
		acc.MonthlyAmounts.Add(c.month, c.net)
	}
	sort.Strings(numbers)

	concept := &Concept{
		Key:            slug.Join(subKey, name),
		Name:           name,
		Amount:         decimal.Zero,
		MonthlyAmounts: MonthlySeries{},
		MonthlyBudgets: MonthlySeries{},
		AccountNumbers: numbers,
		IsCollapsed:    true,
	}
	for _, number := range numbers {
		acc := byAccount[number]
		for _, month := range acc.MonthlyAmounts.Keys() {
			acc.MonthlyBudgets[month] = g.budget.Synthesize(number, month, acc.MonthlyAmounts[month])
		}
		concept.Amount = concept.Amount.Add(acc.Amount)
		concept.MonthlyAmounts.AddSeries(acc.MonthlyAmounts)
		concept.MonthlyBudgets.AddSeries(acc.MonthlyBudgets)
		concept.Accounts = append(concept.Accounts, *acc)
	}
	return concept
}
