package domain

import "errors"

// Parse errors form the complete error surface of the parsing pipeline.
// Each step short-circuits on first failure; callers match with errors.Is.
var (
	// ErrInvalidURI indicates the input string is not a syntactically valid URI.
	ErrInvalidURI = errors.New("invalid uri")

	// ErrNoHost indicates the URI parsed but carries no host component.
	ErrNoHost = errors.New("uri has no host")

	// ErrUnknownSuffix indicates no rule in the list covers the host's
	// rightmost labels, so no public suffix can be determined.
	ErrUnknownSuffix = errors.New("unknown public suffix")

	// ErrInvalidDomain indicates a suffix was found but the host has no
	// labels left of it to form a second-level domain.
	ErrInvalidDomain = errors.New("host has no registrable domain")
)
