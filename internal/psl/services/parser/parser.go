// Package parser composes URI host extraction, conditional IDNA decoding,
// suffix matching, and domain decomposition into a single parse operation.
package parser

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/idna"

	"github.com/haukened/hostparts/internal/psl/common/log"
	"github.com/haukened/hostparts/internal/psl/common/utils"
	"github.com/haukened/hostparts/internal/psl/domain"
)

// acePrefix is the ASCII-compatible-encoding marker for internationalized
// labels.
const acePrefix = "xn--"

// Service is the hostname decomposition facade.
type Service struct {
	lists  ListProvider
	cache  PartsCache
	logger log.Logger
}

// Options configures a Service. Cache may be nil to disable caching.
type Options struct {
	Lists  ListProvider
	Cache  PartsCache
	Logger log.Logger
}

// New constructs a Service from options.
func New(opts Options) *Service {
	return &Service{
		lists:  opts.Lists,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
}

// Parse extracts the host from uri and decomposes it against the active
// suffix list. The pipeline short-circuits on first failure:
// ErrInvalidURI, ErrNoHost, ErrUnknownSuffix, or ErrInvalidDomain.
func (s *Service) Parse(uri string) (domain.DomainParts, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return domain.DomainParts{}, fmt.Errorf("%w: %v", domain.ErrInvalidURI, err)
	}
	host := u.Hostname()
	if host == "" {
		return domain.DomainParts{}, fmt.Errorf("%w: %q", domain.ErrNoHost, uri)
	}
	return s.ParseHost(host)
}

// ParseHost decomposes an already-extracted hostname against the active
// suffix list.
func (s *Service) ParseHost(host string) (domain.DomainParts, error) {
	host = utils.CanonicalHost(host)
	if host == "" {
		return domain.DomainParts{}, fmt.Errorf("%w: empty host", domain.ErrNoHost)
	}

	decoded := s.decodeHost(host)

	if s.cache != nil {
		if parts, ok := s.cache.Get(decoded); ok {
			return parts, nil
		}
	}

	suffix, err := domain.FindSuffix(decoded, s.lists.Current().Store())
	if err != nil {
		return domain.DomainParts{}, err
	}

	parts, err := domain.ExtractParts(decoded, suffix)
	if err != nil {
		return domain.DomainParts{}, err
	}

	if s.cache != nil {
		s.cache.Put(decoded, parts)
	}

	s.logger.Debug(map[string]any{
		"host":   decoded,
		"suffix": parts.TopLevelDomain,
		"sld":    parts.SecondLevelDomain,
	}, "host_decomposed")

	return parts, nil
}

// decodeHost converts an ACE-encoded host to Unicode before matching, since
// list rules store internationalized suffixes in Unicode form.
//
// The trigger is a raw substring test over the whole host, not a per-label
// anchored check: any occurrence of "xn--", even mid-label, causes a
// whole-host decode. ToUnicode output is used as returned even when it
// reports an error; it maps what it can and passes the rest through.
func (s *Service) decodeHost(host string) string {
	if !strings.Contains(host, acePrefix) {
		return host
	}
	decoded, err := idna.ToUnicode(host)
	if err != nil {
		s.logger.Warn(map[string]any{
			"host":  host,
			"error": err.Error(),
		}, "idna_decode_partial")
	}
	return decoded
}

// AddRule appends raw to the active list and returns the new rule count.
// Cached decompositions are dropped: a new rule can lengthen the best match
// for hosts that already resolved.
func (s *Service) AddRule(raw string, public bool) int {
	next := s.lists.Add(raw, public)
	if s.cache != nil {
		s.cache.Purge()
	}
	s.logger.Info(map[string]any{
		"rule":   raw,
		"public": public,
		"rules":  next.Len(),
	}, "rule_added")
	return next.Len()
}

// Stats summarizes the active list and the parts cache.
type Stats struct {
	RuleCount      int       `json:"rule_count"`
	ListLoadedAt   time.Time `json:"list_loaded_at"`
	CacheHits      uint64    `json:"cache_hits"`
	CacheMisses    uint64    `json:"cache_misses"`
	CacheEvictions uint64    `json:"cache_evictions"`
}

// Stats reports current list and cache counters.
func (s *Service) Stats() Stats {
	st := Stats{
		RuleCount:    s.lists.Current().Len(),
		ListLoadedAt: s.lists.LoadedAt(),
	}
	if s.cache != nil {
		st.CacheHits, st.CacheMisses, st.CacheEvictions = s.cache.Stats()
	}
	return st
}
