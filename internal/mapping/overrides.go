package mapping

// Overrides is the session-scoped override map, keyed by normalized account
// number. Values are copy-on-write: With and Without return a new map and
// never mutate the receiver, so a report build holding a reference never
// observes a partial update.
type Overrides map[string]Mapping

// Get looks up an override by normalized account number. Safe on nil.
func (o Overrides) Get(normalized string) (Mapping, bool) {
	m, ok := o[normalized]
	return m, ok
}

// With returns a copy of the overrides with the given entry set.
func (o Overrides) With(normalized string, m Mapping) Overrides {
	out := make(Overrides, len(o)+1)
	for k, v := range o {
		out[k] = v
	}
	out[normalized] = m
	return out
}

// Without returns a copy of the overrides with the given entry removed.
func (o Overrides) Without(normalized string) Overrides {
	out := make(Overrides, len(o))
	for k, v := range o {
		if k != normalized {
			out[k] = v
		}
	}
	return out
}
