package domain

import (
	"errors"
	"testing"
)

// testStore builds a store with the reference rules used across match tests.
func testStore() RuleStore {
	b := NewStoreBuilder()
	for _, raw := range []string{
		"com",
		"run",
		"uk",
		"co.uk",
		"aero",
		"airline.aero",
		"*.ck",
		"!www.ck",
	} {
		b.Add(raw, true)
	}
	return b.Build()
}

func TestFindSuffix_Exact(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"gleam.run", "run"},
		{"fun.packages.gleam.run", "run"},
		{"example.com", "com"},
		{"com", "com"}, // the host being only the suffix is the decomposer's problem, not the matcher's
	}

	for _, tc := range cases {
		got, err := FindSuffix(tc.host, testStore())
		if err != nil {
			t.Fatalf("FindSuffix(%q) unexpected error: %v", tc.host, err)
		}
		if got != tc.want {
			t.Errorf("FindSuffix(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}
}

func TestFindSuffix_LongestWins(t *testing.T) {
	// Both "uk" and "co.uk" match; the longer one wins.
	got, err := FindSuffix("example.co.uk", testStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "co.uk" {
		t.Errorf("FindSuffix = %q, want co.uk", got)
	}

	got, err = FindSuffix("gleam.airline.aero", testStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "airline.aero" {
		t.Errorf("FindSuffix = %q, want airline.aero", got)
	}
}

func TestFindSuffix_Wildcard(t *testing.T) {
	// *.ck covers any single label under ck.
	got, err := FindSuffix("something.anything.ck", testStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "anything.ck" {
		t.Errorf("FindSuffix = %q, want anything.ck", got)
	}

	// The bare wildcard parent is itself a suffix.
	got, err = FindSuffix("ck", testStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ck" {
		t.Errorf("FindSuffix = %q, want ck", got)
	}
}

func TestFindSuffix_ExceptionDefeatsWildcard(t *testing.T) {
	// !www.ck blocks the wildcard at www.ck; the match falls back to ck.
	got, err := FindSuffix("www.ck", testStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ck" {
		t.Errorf("FindSuffix = %q, want ck", got)
	}

	// Subdomains of the excepted name still fall back the same way: the
	// wildcard only ever covers one label under its parent.
	got, err = FindSuffix("deep.www.ck", testStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ck" {
		t.Errorf("FindSuffix = %q, want ck", got)
	}
}

func TestFindSuffix_Unknown(t *testing.T) {
	_, err := FindSuffix("example.invalid", testStore())
	if !errors.Is(err, ErrUnknownSuffix) {
		t.Fatalf("expected ErrUnknownSuffix, got %v", err)
	}
}

func TestFindSuffix_SingleLabelNeverWildcard(t *testing.T) {
	// A one-label candidate has no parent, so a wildcard alone cannot make
	// an unlisted TLD a suffix.
	b := NewStoreBuilder()
	b.Add("*.zz", true)
	store := b.Build()

	got, err := FindSuffix("label.zz", store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "label.zz" {
		t.Errorf("FindSuffix = %q, want label.zz", got)
	}

	// "yy" matches nothing: not exact, and no parent to check.
	if _, err := FindSuffix("yy", store); !errors.Is(err, ErrUnknownSuffix) {
		t.Errorf("expected ErrUnknownSuffix for bare unlisted label, got %v", err)
	}
}
