package domain

import (
	"fmt"
	"strings"
)

// DomainParts is the structural decomposition of a hostname.
//
// TopLevelDomain is the matched public suffix and may span several labels
// ("co.uk"). SecondLevelDomain is exactly one label, the registrable label
// immediately left of the suffix. Subdomains holds the labels left of the
// second-level domain in their original left-to-right order;
// TransitRoutingDomain is those labels joined with ".", empty when none.
type DomainParts struct {
	TopLevelDomain       string   `json:"top_level_domain"`
	SecondLevelDomain    string   `json:"second_level_domain"`
	TransitRoutingDomain string   `json:"transit_routing_domain"`
	Subdomains           []string `json:"subdomain_parts"`
}

// RegistrableDomain returns the second-level domain joined with the suffix,
// e.g. "gleam.run" for host "fun.packages.gleam.run".
func (p DomainParts) RegistrableDomain() string {
	return p.SecondLevelDomain + "." + p.TopLevelDomain
}

// Host reconstructs the full hostname the parts were derived from.
func (p DomainParts) Host() string {
	if p.TransitRoutingDomain == "" {
		return p.RegistrableDomain()
	}
	return p.TransitRoutingDomain + "." + p.RegistrableDomain()
}

// ExtractParts splits host around its matched suffix. It fails with
// ErrInvalidDomain when the host is no longer than the suffix, i.e. there is
// no label left to serve as the second-level domain.
func ExtractParts(host, suffix string) (DomainParts, error) {
	hostLabels := strings.Split(host, ".")
	suffixLabels := strings.Split(suffix, ".")

	remaining := len(hostLabels) - len(suffixLabels)
	if remaining <= 0 {
		return DomainParts{}, fmt.Errorf("%w: %q is no longer than suffix %q", ErrInvalidDomain, host, suffix)
	}

	prefix := hostLabels[:remaining]
	subdomains := prefix[:remaining-1]

	parts := DomainParts{
		TopLevelDomain:    suffix,
		SecondLevelDomain: prefix[remaining-1],
		Subdomains:        subdomains,
	}
	if len(subdomains) > 0 {
		parts.TransitRoutingDomain = strings.Join(subdomains, ".")
	}
	return parts, nil
}
