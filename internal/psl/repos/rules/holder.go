package rules

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/haukened/hostparts/internal/psl/common/clock"
	"github.com/haukened/hostparts/internal/psl/domain"
)

// Holder publishes the currently active SuffixList. Lists are immutable, so
// readers take a plain snapshot pointer and swaps never block lookups;
// reloads and runtime rule additions install a whole replacement list.
type Holder struct {
	value atomic.Pointer[snapshot]
	clk   clock.Clock

	// mu serializes writers; readers never take it.
	mu sync.Mutex
}

type snapshot struct {
	list     domain.SuffixList
	loadedAt time.Time
}

// NewHolder returns a holder seeded with list.
func NewHolder(list domain.SuffixList, clk clock.Clock) *Holder {
	h := &Holder{clk: clk}
	h.value.Store(&snapshot{list: list, loadedAt: clk.Now()})
	return h
}

// Current returns the active SuffixList.
func (h *Holder) Current() domain.SuffixList {
	return h.value.Load().list
}

// LoadedAt returns the time the active list was installed.
func (h *Holder) LoadedAt() time.Time {
	return h.value.Load().loadedAt
}

// Replace installs list as the active SuffixList.
func (h *Holder) Replace(list domain.SuffixList) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.value.Store(&snapshot{list: list, loadedAt: h.clk.Now()})
}

// Add derives a new list from the active one with raw appended and installs
// it. The returned list is the newly installed value. Concurrent Add calls
// are serialized so no addition is lost.
func (h *Holder) Add(raw string, public bool) domain.SuffixList {
	h.mu.Lock()
	defer h.mu.Unlock()
	next := h.value.Load().list.AddRule(raw, public)
	h.value.Store(&snapshot{list: next, loadedAt: h.clk.Now()})
	return next
}
