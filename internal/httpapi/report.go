package httpapi

import (
	"encoding/csv"
	"net/http"
	"time"

	"github.com/fecworks/fecreport/internal/report"
)

// getReport handles GET /v1/sessions/{id}/report: the full operating-model
// tree plus the balance checks, recomputed from scratch.
func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	start := time.Now()
	rep, err := s.svc.BuildReport(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	reportBuildsTotal.Inc()
	reportBuildDuration.Observe(time.Since(start).Seconds())

	categories := make([]categoryDTO, 0, len(rep.Categories))
	for _, c := range rep.Categories {
		categories = append(categories, toCategoryDTO(c))
	}
	toJSON(w, http.StatusOK, struct {
		SessionID  string             `json:"session_id"`
		EntryCount int                `json:"entry_count"`
		Categories []categoryDTO      `json:"categories"`
		Validation validationResponse `json:"validation"`
		Balance    balanceResponse    `json:"global_balance"`
	}{
		SessionID:  rep.SessionID.String(),
		EntryCount: rep.EntryCount,
		Categories: categories,
		Validation: toValidationResponse(rep.Validation),
		Balance:    toBalanceResponse(rep.Balance),
	})
}

func (s *Server) getValidation(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	rep, err := s.svc.BuildReport(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, struct {
		Validation validationResponse `json:"validation"`
		Balance    balanceResponse    `json:"global_balance"`
	}{
		Validation: toValidationResponse(rep.Validation),
		Balance:    toBalanceResponse(rep.Balance),
	})
}

func (s *Server) getAccounts(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	rep, err := s.svc.BuildReport(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	out := make([]accountSummaryDTO, 0, len(rep.Accounts))
	for _, a := range rep.Accounts {
		out = append(out, toAccountSummaryDTO(a))
	}
	toJSON(w, http.StatusOK, struct {
		Items []accountSummaryDTO `json:"items"`
	}{Items: out})
}

func (s *Server) getUnmapped(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	rep, err := s.svc.BuildReport(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	out := make([]unmappedDTO, 0, len(rep.Unmapped))
	for _, u := range rep.Unmapped {
		out = append(out, unmappedDTO{
			CompteNum:   u.CompteNum,
			CompteLib:   u.CompteLib,
			TotalDebit:  num(u.TotalDebit),
			TotalCredit: num(u.TotalCredit),
			NetAmount:   num(u.NetAmount),
			Count:       u.Count,
		})
	}
	toJSON(w, http.StatusOK, struct {
		Items []unmappedDTO `json:"items"`
	}{Items: out})
}

// exportReport handles GET /v1/sessions/{id}/export: the category and
// sub-category levels flattened to CSV, semicolon-separated like the
// exports French accounting tools expect.
func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	rep, err := s.svc.BuildReport(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="operating-model.csv"`)
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	for _, row := range report.ExportRows(rep.Categories) {
		if err := cw.Write(row); err != nil {
			s.log.Error("csv export write failed", "err", err)
			return
		}
	}
	cw.Flush()
}
