package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"
)

type ctxKey string

const ctxKeyPutMapping ctxKey = "validatedPutMapping"

// validatePutMapping ensures the PUT mapping request is well-formed JSON
// with all three taxonomy levels present, and stores the parsed request in
// the context for the handler.
func (s *Server) validatePutMapping() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req putMappingRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			if req.Concept == "" || req.SubCategory == "" || req.Category == "" {
				unprocessable(w, "concept, sub_category and category are required", "incomplete_mapping")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyPutMapping, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// putMapping handles PUT /v1/sessions/{id}/mappings/{accountNumber}: a
// manual override for one account, keyed by its normalized number. The
// report is not rebuilt here; the next report fetch recomputes with the
// new override in place.
func (s *Server) putMapping(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	req, _ := r.Context().Value(ctxKeyPutMapping).(putMappingRequest)
	accountNumber := chi.URLParam(r, "accountNumber")

	sess, err := s.svc.PutMapping(r.Context(), id, accountNumber, req.toDomain())
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	s.log.Info("mapping override saved", "session_id", id, "account", accountNumber)
	toJSON(w, http.StatusOK, toSessionResponse(sess))
}

// deleteMapping removes a manual override.
func (s *Server) deleteMapping(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	accountNumber := chi.URLParam(r, "accountNumber")
	sess, err := s.svc.DeleteMapping(r.Context(), id, accountNumber)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	s.log.Info("mapping override removed", "session_id", id, "account", accountNumber)
	toJSON(w, http.StatusOK, toSessionResponse(sess))
}
