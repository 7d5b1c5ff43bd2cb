package domain

// StoreBuilder accumulates rules into a RuleStore under construction.
// It exists so bulk loading avoids the per-rule copy WithRule performs;
// the built store is the same immutable value callers get everywhere else.
// A builder must not be used after Build.
type StoreBuilder struct {
	store RuleStore
}

// NewStoreBuilder returns an empty builder.
func NewStoreBuilder() *StoreBuilder {
	return &StoreBuilder{store: NewRuleStore()}
}

// Add classifies raw and inserts it into the store under construction.
func (b *StoreBuilder) Add(raw string, public bool) {
	kind, pattern := ClassifyRule(raw)
	rule := NewRule(pattern, public)
	switch kind {
	case RuleException:
		b.store.exceptions[pattern] = rule
	case RuleWildcard:
		b.store.exact[pattern] = rule
		b.store.wildcards[pattern] = struct{}{}
	default:
		b.store.exact[pattern] = rule
	}
}

// Len returns the number of entries accumulated so far.
func (b *StoreBuilder) Len() int {
	return b.store.Len()
}

// Build returns the accumulated store.
func (b *StoreBuilder) Build() RuleStore {
	return b.store
}
