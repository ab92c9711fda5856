package httpapi

import (
	"errors"
	"net/http"

	"github.com/fecworks/fecreport/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }
func unprocessable(w http.ResponseWriter, msg, code string) {
	writeErr(w, http.StatusUnprocessableEntity, msg, code)
}

// writeServiceErr maps sentinel errors from the service/storage layers to
// HTTP statuses.
func writeServiceErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, errs.ErrInvalid):
		badRequest(w, err.Error())
	case errors.Is(err, errs.ErrConflict):
		writeErr(w, http.StatusConflict, err.Error(), "conflict")
	case errors.Is(err, errs.ErrMissingColumn), errors.Is(err, errs.ErrEmptyFile), errors.Is(err, errs.ErrUnprocessable):
		unprocessable(w, err.Error(), "invalid_file")
	default:
		writeErr(w, http.StatusInternalServerError, "internal_error", "internal_error")
	}
}
