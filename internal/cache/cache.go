// Package cache provides an in-memory TTL memoization store for expensive
// catalog lookups.
//
// Entries are keyed by a call-site identity plus the call arguments and carry
// an absolute expiry. Expired entries are evicted lazily on read; there is no
// background sweep, so unread stale entries may occupy memory until the next
// read or an explicit Clear. Staleness is always checked at read time, so
// this is a memory bound, not a correctness issue.
package cache

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is used when neither the call site nor the cache configuration
// specifies a TTL.
const DefaultTTL = 600 * time.Second

// keySep joins identity and argument parts into a single map key. It must
// not occur in identities or arguments.
const keySep = "\x1f"

// Key identifies one memoized call within an identity.
type Key string

// NewKey builds a Key from the call arguments in positional order.
func NewKey(parts ...string) Key {
	return Key(strings.Join(parts, keySep))
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Observer is notified of cache reads, e.g. to feed metrics.
type Observer func(identity string, hit bool)

// Cache is a TTL memoization store. It is owned by the service instance and
// injected into consumers; there is no package-level store.
//
// The backing map is guarded by a mutex and concurrent computations for the
// same key are deduplicated, so an expiring hot key triggers exactly one
// upstream call.
type Cache struct {
	mu    sync.Mutex
	store map[string]entry

	group      singleflight.Group
	defaultTTL time.Duration
	now        func() time.Time
	observe    Observer
}

// Option configures a Cache.
type Option func(*Cache)

// WithDefaultTTL sets the process-wide default TTL. Call sites passing an
// explicit positive TTL still win.
func WithDefaultTTL(d time.Duration) Option {
	return func(c *Cache) {
		c.defaultTTL = d
	}
}

// WithClock overrides the time source. Used by tests to exercise expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithObserver registers a hook invoked on every read with the entry
// identity and whether it was a hit.
func WithObserver(fn Observer) Option {
	return func(c *Cache) {
		c.observe = fn
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		store: make(map[string]entry),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the cached value for (identity, key) if present and
// unexpired; otherwise it invokes fn, stores the result and returns it.
//
// TTL precedence: ttl > 0 wins, then the configured default, then DefaultTTL.
// Errors from fn are returned to the caller and never cached.
func (c *Cache) GetOrCompute(identity string, key Key, ttl time.Duration, fn func() (any, error)) (any, error) {
	full := identity + keySep + string(key)

	if v, ok := c.lookup(full); ok {
		if c.observe != nil {
			c.observe(identity, true)
		}
		return v, nil
	}

	v, err, _ := c.group.Do(full, func() (any, error) {
		// Another caller may have filled the entry while this one waited
		// on the flight group. A miss is only recorded once the entry is
		// confirmed absent here, so misses count computations, not callers.
		if v, ok := c.lookup(full); ok {
			if c.observe != nil {
				c.observe(identity, true)
			}
			return v, nil
		}
		if c.observe != nil {
			c.observe(identity, false)
		}
		v, err := fn()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.store[full] = entry{value: v, expiresAt: c.now().Add(c.ttlFor(ttl))}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// lookup returns the live value for full, lazily evicting an expired entry.
func (c *Cache) lookup(full string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.store[full]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.store, full)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) ttlFor(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	if c.defaultTTL > 0 {
		return c.defaultTTL
	}
	return DefaultTTL
}

// Invalidate drops every entry stored under identity, regardless of
// arguments.
func (c *Cache) Invalidate(identity string) {
	prefix := identity + keySep
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
}

// Clear drops the entire store.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]entry)
}

// Len reports the number of stored entries, including ones that have
// expired but not yet been read.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.store)
}

// GetTyped is a typed wrapper around Cache.GetOrCompute for call sites that
// memoize a concrete type.
func GetTyped[T any](c *Cache, identity string, key Key, ttl time.Duration, fn func() (T, error)) (T, error) {
	v, err := c.GetOrCompute(identity, key, ttl, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
