// Package slug derives stable row keys for report tree nodes from their
// display names. Keys survive re-aggregation unchanged, so the rendering
// layer can persist collapse state against them.
package slug

import "strings"

// Make converts a display name to a key fragment: lowercase, any run of
// non [a-z0-9] characters collapses to a single '_', leading and trailing
// underscores trimmed. "Operating Expenses (OPEX)" becomes
// "operating_expenses_opex".
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			if b.Len() > 0 {
				pendingSep = true
			}
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Join builds a child key from its parent's key and its own name.
func Join(parent, name string) string {
	child := Make(name)
	if parent == "" {
		return child
	}
	return parent + "." + child
}
