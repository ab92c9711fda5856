package httpapi

import (
	"mime/multipart"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fecworks/fecreport/internal/fec"
	"github.com/fecworks/fecreport/internal/report"
)

// createSession handles POST /v1/sessions: a FEC file either as the
// "file" part of a multipart form or as a raw CSV body. The file is parsed
// and column-checked here; the response carries the balance warnings so the
// upload surface can show them immediately.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	var (
		entries []fec.Entry
		name    string
		err     error
	)
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(strings.ToLower(ct), "multipart/form-data") {
		var file multipart.File
		var header *multipart.FileHeader
		file, header, err = r.FormFile("file")
		if err != nil {
			badRequest(w, "multipart upload requires a \"file\" part")
			return
		}
		defer file.Close()
		name = header.Filename
		entries, err = fec.ReadCSV(file)
	} else {
		name = r.URL.Query().Get("name")
		entries, err = fec.ReadCSV(r.Body)
	}
	if err != nil {
		s.log.Warn("upload rejected", "err", err)
		writeServiceErr(w, err)
		return
	}
	if name == "" {
		name = "upload"
	}

	sess, err := s.svc.Create(r.Context(), name, entries)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	uploadsTotal.Inc()
	uploadEntriesTotal.Add(float64(len(entries)))
	s.log.Info("session created", "session_id", sess.ID, "entries", len(entries), "name", name)

	toJSON(w, http.StatusCreated, uploadResponse{
		Session:    toSessionResponse(sess),
		Validation: toValidationResponse(report.ValidateEntries(entries)),
		Balance:    toBalanceResponse(report.GlobalBalance(entries)),
	})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.svc.List(r.Context())
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	out := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionResponse(sess))
	}
	toJSON(w, http.StatusOK, struct {
		Items []sessionResponse `json:"items"`
	}{Items: out})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sess, err := s.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Delete(r.Context(), id); err != nil {
		writeServiceErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionID parses the {id} path parameter, writing a 400 on failure.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(w, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}
