package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fecworks/fecreport/internal/mapping"
	"github.com/fecworks/fecreport/internal/report"
	"github.com/fecworks/fecreport/internal/service/session"
)

// Amounts cross the wire as plain JSON numbers; the rendering layer deals
// in floats. Decimal stays internal.
func num(d decimal.Decimal) float64 { return d.InexactFloat64() }

func seriesDTO(s report.MonthlySeries) map[string]float64 {
	out := make(map[string]float64, len(s))
	for k, v := range s {
		out[k] = num(v)
	}
	return out
}

type sessionResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	EntryCount int       `json:"entry_count"`
	Overrides  int       `json:"override_count"`
}

func toSessionResponse(s session.Session) sessionResponse {
	return sessionResponse{
		ID:         s.ID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
		EntryCount: s.EntryCount,
		Overrides:  len(s.Overrides),
	}
}

type uploadResponse struct {
	Session    sessionResponse    `json:"session"`
	Validation validationResponse `json:"validation"`
	Balance    balanceResponse    `json:"global_balance"`
}

type accountDetailDTO struct {
	Number         string             `json:"account_number"`
	Label          string             `json:"account_label"`
	Amount         float64            `json:"amount"`
	MonthlyAmounts map[string]float64 `json:"monthly_amounts"`
	MonthlyBudgets map[string]float64 `json:"monthly_budgets"`
}

type conceptDTO struct {
	Key            string             `json:"key"`
	RowType        string             `json:"row_type"`
	Name           string             `json:"name"`
	Amount         float64            `json:"amount"`
	MonthlyAmounts map[string]float64 `json:"monthly_amounts"`
	MonthlyBudgets map[string]float64 `json:"monthly_budgets"`
	AccountNumbers []string           `json:"account_numbers"`
	Accounts       []accountDetailDTO `json:"accounts"`
	IsCollapsed    bool               `json:"is_collapsed"`
}

type subCategoryDTO struct {
	Key            string             `json:"key"`
	RowType        string             `json:"row_type"`
	Name           string             `json:"name"`
	Amount         float64            `json:"amount"`
	MonthlyAmounts map[string]float64 `json:"monthly_amounts"`
	MonthlyBudgets map[string]float64 `json:"monthly_budgets"`
	AccountNumbers []string           `json:"account_numbers"`
	Concepts       []conceptDTO       `json:"concepts"`
	IsCollapsed    bool               `json:"is_collapsed"`
}

type categoryDTO struct {
	Key            string             `json:"key"`
	RowType        string             `json:"row_type"`
	Name           string             `json:"name"`
	Amount         float64            `json:"amount"`
	MonthlyAmounts map[string]float64 `json:"monthly_amounts"`
	MonthlyBudgets map[string]float64 `json:"monthly_budgets"`
	AccountNumbers []string           `json:"account_numbers"`
	SubCategories  []subCategoryDTO   `json:"sub_categories"`
	IsCollapsed    bool               `json:"is_collapsed"`
}

func toCategoryDTO(c *report.Category) categoryDTO {
	out := categoryDTO{
		Key:            c.Key,
		RowType:        "category",
		Name:           c.Name,
		Amount:         num(c.Amount),
		MonthlyAmounts: seriesDTO(c.MonthlyAmounts),
		MonthlyBudgets: seriesDTO(c.MonthlyBudgets),
		AccountNumbers: c.AccountNumbers,
		IsCollapsed:    c.IsCollapsed,
	}
	for _, sub := range c.SubCategories {
		out.SubCategories = append(out.SubCategories, toSubCategoryDTO(sub))
	}
	return out
}

func toSubCategoryDTO(s *report.SubCategory) subCategoryDTO {
	out := subCategoryDTO{
		Key:            s.Key,
		RowType:        "subcategory",
		Name:           s.Name,
		Amount:         num(s.Amount),
		MonthlyAmounts: seriesDTO(s.MonthlyAmounts),
		MonthlyBudgets: seriesDTO(s.MonthlyBudgets),
		AccountNumbers: s.AccountNumbers,
		IsCollapsed:    s.IsCollapsed,
	}
	for _, concept := range s.Concepts {
		out.Concepts = append(out.Concepts, toConceptDTO(concept))
	}
	return out
}

func toConceptDTO(c *report.Concept) conceptDTO {
	out := conceptDTO{
		Key:            c.Key,
		RowType:        "concept",
		Name:           c.Name,
		Amount:         num(c.Amount),
		MonthlyAmounts: seriesDTO(c.MonthlyAmounts),
		MonthlyBudgets: seriesDTO(c.MonthlyBudgets),
		AccountNumbers: c.AccountNumbers,
		IsCollapsed:    c.IsCollapsed,
	}
	for _, acc := range c.Accounts {
		out.Accounts = append(out.Accounts, accountDetailDTO{
			Number:         acc.Number,
			Label:          acc.Label,
			Amount:         num(acc.Amount),
			MonthlyAmounts: seriesDTO(acc.MonthlyAmounts),
			MonthlyBudgets: seriesDTO(acc.MonthlyBudgets),
		})
	}
	return out
}

type unbalancedDTO struct {
	EcritureNum string  `json:"ecriture_num"`
	TotalDebit  float64 `json:"total_debit"`
	TotalCredit float64 `json:"total_credit"`
	Difference  float64 `json:"difference"`
}

type validationResponse struct {
	IsValid    bool            `json:"is_valid"`
	Unbalanced []unbalancedDTO `json:"unbalanced_entries"`
}

func toValidationResponse(v report.ValidationResult) validationResponse {
	out := validationResponse{IsValid: v.IsValid, Unbalanced: make([]unbalancedDTO, 0, len(v.Unbalanced))}
	for _, u := range v.Unbalanced {
		out.Unbalanced = append(out.Unbalanced, unbalancedDTO{
			EcritureNum: u.EcritureNum,
			TotalDebit:  num(u.TotalDebit),
			TotalCredit: num(u.TotalCredit),
			Difference:  num(u.Difference),
		})
	}
	return out
}

type balanceResponse struct {
	TotalDebit  float64 `json:"total_debit"`
	TotalCredit float64 `json:"total_credit"`
	NetBalance  float64 `json:"net_balance"`
	IsBalanced  bool    `json:"is_balanced"`
}

func toBalanceResponse(b report.Balance) balanceResponse {
	return balanceResponse{
		TotalDebit:  num(b.TotalDebit),
		TotalCredit: num(b.TotalCredit),
		NetBalance:  num(b.NetBalance),
		IsBalanced:  b.IsBalanced,
	}
}

type mappingDTO struct {
	Concept     string `json:"concept"`
	SubCategory string `json:"sub_category"`
	Category    string `json:"category"`
}

type unmappedDTO struct {
	CompteNum   string  `json:"compte_num"`
	CompteLib   string  `json:"compte_lib"`
	TotalDebit  float64 `json:"total_debit"`
	TotalCredit float64 `json:"total_credit"`
	NetAmount   float64 `json:"net_amount"`
	Count       int     `json:"count"`
}

type accountSummaryDTO struct {
	CompteNum   string      `json:"compte_num"`
	CompteLib   string      `json:"compte_lib"`
	TotalDebit  float64     `json:"total_debit"`
	TotalCredit float64     `json:"total_credit"`
	NetAmount   float64     `json:"net_amount"`
	Count       int         `json:"count"`
	IsMapped    bool        `json:"is_mapped"`
	Mapping     *mappingDTO `json:"mapping,omitempty"`
}

func toAccountSummaryDTO(a report.AccountSummary) accountSummaryDTO {
	out := accountSummaryDTO{
		CompteNum:   a.CompteNum,
		CompteLib:   a.CompteLib,
		TotalDebit:  num(a.TotalDebit),
		TotalCredit: num(a.TotalCredit),
		NetAmount:   num(a.NetAmount),
		Count:       a.Count,
		IsMapped:    a.IsMapped,
	}
	if a.Mapping != nil {
		out.Mapping = &mappingDTO{Concept: a.Mapping.Concept, SubCategory: a.Mapping.SubCategory, Category: a.Mapping.Category}
	}
	return out
}

// putMappingRequest is the body of PUT /v1/sessions/{id}/mappings/{n}.
type putMappingRequest struct {
	Concept     string `json:"concept"`
	SubCategory string `json:"sub_category"`
	Category    string `json:"category"`
}

func (r putMappingRequest) toDomain() mapping.Mapping {
	return mapping.Mapping{Concept: r.Concept, SubCategory: r.SubCategory, Category: r.Category}
}
