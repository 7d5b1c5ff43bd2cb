package domain

import (
	"fmt"
	"strings"
)

// FindSuffix returns the longest public suffix of host according to the
// rules in store, or ErrUnknownSuffix when no rule covers the host.
//
// Candidates are scanned from the rightmost label outward, shortest first.
// An exception entry blocks its candidate outright, even where a wildcard
// would otherwise cover it. Of the surviving matches the longest string
// wins; on equal length the later-scanned candidate (more labels) is kept,
// which makes the selection deterministic.
func FindSuffix(host string, store RuleStore) (string, error) {
	labels := strings.Split(host, ".")

	var best string
	var found bool
	for i := 1; i <= len(labels); i++ {
		candidate := strings.Join(labels[len(labels)-i:], ".")

		if _, excepted := store.Exception(candidate); excepted {
			// Explicitly carved out: not a suffix, and no wildcard
			// fallthrough for this candidate.
			continue
		}
		if !matches(candidate, i, labels, store) {
			continue
		}
		if !found || len(candidate) >= len(best) {
			best = candidate
			found = true
		}
	}

	if !found {
		return "", fmt.Errorf("%w: %q", ErrUnknownSuffix, host)
	}
	return best, nil
}

// matches reports whether candidate (the rightmost i labels of the host) is
// covered by an exact rule or by a wildcard over its parent. A one-label
// candidate has no parent and can never satisfy a wildcard.
func matches(candidate string, i int, labels []string, store RuleStore) bool {
	if _, ok := store.Exact(candidate); ok {
		return true
	}
	if i < 2 {
		return false
	}
	parent := strings.Join(labels[len(labels)-i+1:], ".")
	return store.IsWildcardParent(parent)
}
