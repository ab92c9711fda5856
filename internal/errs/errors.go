package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	// ErrUnprocessable is used for semantic validation failures (HTTP 422)
	ErrUnprocessable = errors.New("unprocessable")
	// ErrMissingColumn indicates an uploaded FEC file lacks a required column
	ErrMissingColumn = errors.New("missing_column")
	// ErrEmptyFile indicates an uploaded FEC file carries no data rows
	ErrEmptyFile = errors.New("empty_file")
)
