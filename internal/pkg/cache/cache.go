// Package cache is a time-bounded memoization store for expensive derived
// ledger values. It is never a source of truth: every read path must work
// identically with the cache disabled or empty.
package cache

import (
	"fmt"
	"sync"
	"time"
)

// Kind selects the TTL class for an entry.
type Kind string

const (
	// KindAllocation caches derived (prorated) monthly allocations; short TTL.
	KindAllocation Kind = "allocation"
	// KindFinalization caches finalization outcomes; longer TTL.
	KindFinalization Kind = "finalization"
)

type entry struct {
	value      any
	computedAt time.Time
}

type Cache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	ttls     map[Kind]time.Duration
	disabled bool

	now func() time.Time
}

func New(allocationTTL, finalizationTTL time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttls: map[Kind]time.Duration{
			KindAllocation:   allocationTTL,
			KindFinalization: finalizationTTL,
		},
		now: time.Now,
	}
}

func key(employeeID string, year int, month time.Month, kind Kind) string {
	return fmt.Sprintf("%s:%d:%d:%s", employeeID, year, int(month), kind)
}

// Get returns the cached value if present and fresh.
func (c *Cache) Get(employeeID string, year int, month time.Month, kind Kind) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.disabled {
		return nil, false
	}
	e, ok := c.entries[key(employeeID, year, month, kind)]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.computedAt) > c.ttls[kind] {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(employeeID string, year int, month time.Month, kind Kind, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled {
		return
	}
	c.entries[key(employeeID, year, month, kind)] = entry{value: value, computedAt: c.now()}
}

// Invalidate drops an entry after a mutation made it stale.
func (c *Cache) Invalidate(employeeID string, year int, month time.Month, kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key(employeeID, year, month, kind))
}

// Disable turns the cache into a pure pass-through. Outcomes must not change.
func (c *Cache) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = true
	c.entries = make(map[string]entry)
}
