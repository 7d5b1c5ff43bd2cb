package domain

// RuleStore is an immutable collection of suffix rules partitioned by kind.
//
// A wildcard rule "*.X" registers X in both exact and wildcards: a bare X is
// itself always a valid public suffix in addition to any label.X. Exception
// entries mean "this specific string is NOT a public suffix" and take
// precedence over exact and wildcard coverage of the same candidate.
//
// All mutation goes through WithRule, which returns a fresh store; a single
// RuleStore value can be read concurrently without locking.
type RuleStore struct {
	exact      map[string]Rule
	wildcards  map[string]struct{}
	exceptions map[string]Rule
}

// NewRuleStore returns an empty store.
func NewRuleStore() RuleStore {
	return RuleStore{
		exact:      make(map[string]Rule),
		wildcards:  make(map[string]struct{}),
		exceptions: make(map[string]Rule),
	}
}

// WithRule classifies raw and returns a new store containing all existing
// rules plus the new one. The receiver is never modified.
func (s RuleStore) WithRule(raw string, public bool) RuleStore {
	next := s.clone()
	kind, pattern := ClassifyRule(raw)
	rule := NewRule(pattern, public)
	switch kind {
	case RuleException:
		next.exceptions[pattern] = rule
	case RuleWildcard:
		// The parent is both a suffix in its own right and a wildcard anchor.
		next.exact[pattern] = rule
		next.wildcards[pattern] = struct{}{}
	default:
		next.exact[pattern] = rule
	}
	return next
}

// Exact returns the normal rule registered for pattern, if any.
func (s RuleStore) Exact(pattern string) (Rule, bool) {
	r, ok := s.exact[pattern]
	return r, ok
}

// IsWildcardParent reports whether pattern is the parent domain of a
// registered wildcard rule.
func (s RuleStore) IsWildcardParent(pattern string) bool {
	_, ok := s.wildcards[pattern]
	return ok
}

// Exception returns the exception rule registered for pattern, if any.
func (s RuleStore) Exception(pattern string) (Rule, bool) {
	r, ok := s.exceptions[pattern]
	return r, ok
}

// Len returns the number of distinct rules in the store. A wildcard rule
// counts once even though its parent occupies both the exact and wildcard
// partitions.
func (s RuleStore) Len() int {
	return len(s.exact) + len(s.exceptions)
}

// Walk visits every stored rule grouped by kind. Wildcard anchors are visited
// under RuleWildcard; their implied exact entries are not revisited. Iteration
// order within a kind is unspecified.
func (s RuleStore) Walk(visit func(kind RuleKind, r Rule)) {
	for pattern, r := range s.exact {
		if _, ok := s.wildcards[pattern]; ok {
			continue
		}
		visit(RuleNormal, r)
	}
	for pattern := range s.wildcards {
		visit(RuleWildcard, s.exact[pattern])
	}
	for _, r := range s.exceptions {
		visit(RuleException, r)
	}
}

// clone deep-copies the rule maps so the new store shares nothing with the
// receiver.
func (s RuleStore) clone() RuleStore {
	next := RuleStore{
		exact:      make(map[string]Rule, len(s.exact)+1),
		wildcards:  make(map[string]struct{}, len(s.wildcards)+1),
		exceptions: make(map[string]Rule, len(s.exceptions)+1),
	}
	for k, v := range s.exact {
		next.exact[k] = v
	}
	for k := range s.wildcards {
		next.wildcards[k] = struct{}{}
	}
	for k, v := range s.exceptions {
		next.exceptions[k] = v
	}
	return next
}
