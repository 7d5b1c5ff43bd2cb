package domain

// SuffixList is the caller-visible, immutable handle around a RuleStore.
// AddRule returns a new handle; no in-place mutation is observable, so a
// single SuffixList can be shared across goroutines freely.
type SuffixList struct {
	store RuleStore
}

// NewSuffixList wraps an already-built store.
func NewSuffixList(store RuleStore) SuffixList {
	return SuffixList{store: store}
}

// AddRule returns a new SuffixList containing all existing rules plus raw,
// classified the same way the loader classifies list lines.
func (l SuffixList) AddRule(raw string, public bool) SuffixList {
	return SuffixList{store: l.store.WithRule(raw, public)}
}

// Store exposes the underlying rule store for matching.
func (l SuffixList) Store() RuleStore {
	return l.store
}

// Len returns the number of entries in the underlying store.
func (l SuffixList) Len() int {
	return l.store.Len()
}
