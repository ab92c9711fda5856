package postgres

import (
	"github.com/fecworks/fecreport/internal/service/session"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ session.Repo   = (*Store)(nil)
	_ session.Writer = (*Store)(nil)
)
