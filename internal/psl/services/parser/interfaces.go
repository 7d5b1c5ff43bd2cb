package parser

import (
	"time"

	"github.com/haukened/hostparts/internal/psl/domain"
)

// ListProvider supplies the active suffix list and accepts runtime rule
// additions. Implementations must hand out immutable list values so lookups
// never observe a half-applied change.
type ListProvider interface {
	Current() domain.SuffixList
	LoadedAt() time.Time
	Add(raw string, public bool) domain.SuffixList
}

// PartsCache caches successful decompositions keyed by decoded host.
type PartsCache interface {
	Get(host string) (domain.DomainParts, bool)
	Put(host string, parts domain.DomainParts)
	Purge()
	Stats() (hits, misses, evictions uint64)
}
