package domain

import (
	"errors"
	"testing"
)

func TestExtractParts(t *testing.T) {
	cases := []struct {
		name    string
		host    string
		suffix  string
		wantSLD string
		wantTRD string
		wantSub []string
	}{
		{
			name:    "registrable domain only",
			host:    "gleam.run",
			suffix:  "run",
			wantSLD: "gleam",
			wantTRD: "",
			wantSub: []string{},
		},
		{
			name:    "two subdomain labels",
			host:    "fun.packages.gleam.run",
			suffix:  "run",
			wantSLD: "gleam",
			wantTRD: "fun.packages",
			wantSub: []string{"fun", "packages"},
		},
		{
			name:    "multi-label suffix",
			host:    "gleam.airline.aero",
			suffix:  "airline.aero",
			wantSLD: "gleam",
			wantTRD: "",
			wantSub: []string{},
		},
		{
			name:    "one subdomain label",
			host:    "www.example.co.uk",
			suffix:  "co.uk",
			wantSLD: "example",
			wantTRD: "www",
			wantSub: []string{"www"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parts, err := ExtractParts(tc.host, tc.suffix)
			if err != nil {
				t.Fatalf("ExtractParts(%q, %q) error: %v", tc.host, tc.suffix, err)
			}
			if parts.TopLevelDomain != tc.suffix {
				t.Errorf("TopLevelDomain = %q, want %q", parts.TopLevelDomain, tc.suffix)
			}
			if parts.SecondLevelDomain != tc.wantSLD {
				t.Errorf("SecondLevelDomain = %q, want %q", parts.SecondLevelDomain, tc.wantSLD)
			}
			if parts.TransitRoutingDomain != tc.wantTRD {
				t.Errorf("TransitRoutingDomain = %q, want %q", parts.TransitRoutingDomain, tc.wantTRD)
			}
			if len(parts.Subdomains) != len(tc.wantSub) {
				t.Fatalf("Subdomains = %v, want %v", parts.Subdomains, tc.wantSub)
			}
			for i := range tc.wantSub {
				if parts.Subdomains[i] != tc.wantSub[i] {
					t.Errorf("Subdomains[%d] = %q, want %q", i, parts.Subdomains[i], tc.wantSub[i])
				}
			}
			if parts.Host() != tc.host {
				t.Errorf("Host() = %q, want %q", parts.Host(), tc.host)
			}
		})
	}
}

func TestExtractParts_HostIsSuffix(t *testing.T) {
	_, err := ExtractParts("com", "com")
	if !errors.Is(err, ErrInvalidDomain) {
		t.Fatalf("expected ErrInvalidDomain, got %v", err)
	}

	// Host shorter than suffix is equally invalid.
	_, err = ExtractParts("uk", "co.uk")
	if !errors.Is(err, ErrInvalidDomain) {
		t.Fatalf("expected ErrInvalidDomain, got %v", err)
	}
}

func TestExtractParts_SingleRemainingLabel(t *testing.T) {
	// Exactly one label left of the suffix: it is the SLD, never a subdomain.
	parts, err := ExtractParts("gleam.run", "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts.Subdomains) != 0 {
		t.Errorf("Subdomains = %v, want empty", parts.Subdomains)
	}
	if parts.TransitRoutingDomain != "" {
		t.Errorf("TransitRoutingDomain = %q, want empty", parts.TransitRoutingDomain)
	}
}

func TestRegistrableDomain(t *testing.T) {
	parts, err := ExtractParts("fun.packages.gleam.run", "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parts.RegistrableDomain() != "gleam.run" {
		t.Errorf("RegistrableDomain() = %q, want gleam.run", parts.RegistrableDomain())
	}
}
