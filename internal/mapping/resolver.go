package mapping

import "github.com/fecworks/fecreport/internal/fec"

// Resolver resolves raw account numbers to mappings through an ordered
// chain of lookups with early exit on the first hit. Absence is the
// signaled outcome for unresolvable accounts; no error is ever returned.
type Resolver struct {
	table *Table
}

// NewResolver wraps a static table.
func NewResolver(table *Table) *Resolver { return &Resolver{table: table} }

// Resolve tries, in order: session overrides by normalized number, the
// static table's prefix fallback on the raw number, then an exact lookup on
// the normalized number.
func (r *Resolver) Resolve(raw string, overrides Overrides) (Mapping, bool) {
	normalized := fec.NormalizeAccountNumber(raw)
	chain := []func() (Mapping, bool){
		func() (Mapping, bool) { return overrides.Get(normalized) },
		func() (Mapping, bool) { return r.table.Fallback(raw) },
		func() (Mapping, bool) { return r.table.Exact(normalized) },
	}
	for _, lookup := range chain {
		if m, ok := lookup(); ok {
			return m, true
		}
	}
	return Mapping{}, false
}

// ResolveStatic resolves against the static table only, ignoring session
// overrides. The account worksheets use it to answer "what does the static
// system map" independent of ad hoc session fixes.
func (r *Resolver) ResolveStatic(raw string) (Mapping, bool) {
	if m, ok := r.table.Fallback(raw); ok {
		return m, true
	}
	return r.table.Exact(fec.NormalizeAccountNumber(raw))
}
