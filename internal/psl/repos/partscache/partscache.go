// Package partscache caches successful hostname decompositions keyed by the
// decoded host, so repeat lookups skip the matcher entirely.
package partscache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/hostparts/internal/psl/domain"
)

// Cache is the parse-result cache port consumed by the parser service.
// Errors are never cached; only successful decompositions land here.
type Cache interface {
	Get(host string) (domain.DomainParts, bool)
	Put(host string, parts domain.DomainParts)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}

// partsCache is an LRU-backed Cache tracking hit/miss/eviction counters.
type partsCache struct {
	lru       *lru.Cache[string, domain.DomainParts]
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledCache is a no-op Cache used when size <= 0.
type disabledCache struct{}

// New creates a Cache with the given capacity. If size <= 0, a disabled
// no-op cache is returned that always misses and tracks no metrics.
func New(size int) (Cache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	var pc partsCache
	// NewWithEvict observes evictions, including Purge-induced ones.
	cache, err := lru.NewWithEvict(size, func(_ string, _ domain.DomainParts) {
		atomic.AddUint64(&pc.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	pc.lru = cache
	return &pc, nil
}

// Get looks up parts by host. When found, increments hits; otherwise misses.
func (c *partsCache) Get(host string) (domain.DomainParts, bool) {
	if val, ok := c.lru.Get(host); ok {
		atomic.AddUint64(&c.hits, 1)
		return val, true
	}
	atomic.AddUint64(&c.misses, 1)
	return domain.DomainParts{}, false
}

// Put stores parts by host.
func (c *partsCache) Put(host string, parts domain.DomainParts) {
	c.lru.Add(host, parts)
}

// Len returns the number of cached entries.
func (c *partsCache) Len() int { return c.lru.Len() }

// Purge clears all entries. Evictions are counted via the eviction callback.
func (c *partsCache) Purge() { c.lru.Purge() }

// Stats returns cumulative hit/miss/eviction counters.
func (c *partsCache) Stats() (hits, misses, evictions uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses), atomic.LoadUint64(&c.evictions)
}

func (d *disabledCache) Get(string) (domain.DomainParts, bool) { return domain.DomainParts{}, false }

func (d *disabledCache) Put(string, domain.DomainParts) {}

func (d *disabledCache) Len() int { return 0 }

func (d *disabledCache) Purge() {}

func (d *disabledCache) Stats() (uint64, uint64, uint64) { return 0, 0, 0 }

var _ Cache = (*partsCache)(nil)
var _ Cache = (*disabledCache)(nil)
