package domain

import (
	"fmt"
	"strings"
)

// RuleKind defines how a suffix rule matches hostnames.
//
// normal    - the pattern itself is a public suffix
// wildcard  - any single label under the pattern is a public suffix
// exception - the pattern is NOT a public suffix, overriding a wildcard
type RuleKind uint8

const (
	// RuleNormal matches the pattern verbatim.
	RuleNormal RuleKind = iota
	// RuleWildcard matches any single label under the pattern.
	RuleWildcard
	// RuleException excludes the pattern from an otherwise-covering wildcard.
	RuleException
)

// String returns a stable string representation of the rule kind.
func (k RuleKind) String() string {
	switch k {
	case RuleNormal:
		return "normal"
	case RuleWildcard:
		return "wildcard"
	case RuleException:
		return "exception"
	default:
		return fmt.Sprintf("RuleKind(%d)", k)
	}
}

// Rule represents a single suffix rule sourced from a suffix list.
//
// Pattern is a dot-separated suffix string. For wildcard rules it is the
// wildcard's parent domain ("ck" for the rule "*.ck"); for exception rules
// it is the full excepted domain ("www.ck" for "!www.ck").
//
// Public marks whether the rule came from the public (ICANN) section of the
// source list. It is informational and never consulted during matching.
//
// Length is the character length of Pattern, retained for introspection.
// The matcher compares candidate strings directly and does not read it.
type Rule struct {
	Pattern string
	Public  bool
	Length  int
}

// NewRule constructs a Rule for an already-classified pattern.
func NewRule(pattern string, public bool) Rule {
	return Rule{
		Pattern: pattern,
		Public:  public,
		Length:  len(pattern),
	}
}

// ClassifyRule inspects a raw rule string and returns its kind together with
// the stored pattern. Exception rules shed the leading "!", wildcard rules
// shed the leading "*." so the pattern is the wildcard's parent domain.
// Anything else is a normal rule verbatim; no further syntax is recognized
// and no validation is performed.
func ClassifyRule(raw string) (RuleKind, string) {
	switch {
	case strings.HasPrefix(raw, "!"):
		return RuleException, strings.TrimPrefix(raw, "!")
	case strings.HasPrefix(raw, "*."):
		return RuleWildcard, strings.TrimPrefix(raw, "*.")
	default:
		return RuleNormal, raw
	}
}
