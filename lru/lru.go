// Package lru implements a bounded cache with least-recently-used
// eviction. See doc.go for complete package documentation.
package lru

import (
	"github.com/dreamware/cachekit"
	"github.com/dreamware/cachekit/internal/list"
	"github.com/dreamware/cachekit/metrics"
)

// entry is the payload carried by each list node: the key (so an
// evicted back node can be removed from the index), the value, and the
// caller-declared size.
type entry[K comparable, V any] struct {
	key   K
	value V
	size  uint64
}

// Cache is a bounded least-recently-used cache.
//
// The cache couples a hash index (key → node handle) with one intrusive
// list kept in most-recently-used-first order. Get and Put hits move
// the entry to the front; eviction always takes the back, which is the
// unique least recently used entry.
//
// Two limits are enforced together: the entry count never exceeds the
// configured capacity and the sum of entry sizes never exceeds the
// configured max size. A Put whose own size exceeds the max size is
// rejected outright without touching cache state.
//
// Cache is not synchronized: an instance assumes exclusive access. Use
// the sharded package for concurrent use.
//
// The zero value is not usable; create instances with New.
type Cache[K comparable, V any] struct {
	cfg      cachekit.Config
	index    map[K]*list.Node[entry[K, V]]
	order    *list.List[entry[K, V]]
	sizeSum  uint64
	counters metrics.Counters
}

// New returns an LRU cache for the given configuration, or the
// configuration's validation error.
func New[K comparable, V any](cfg cachekit.Config) (*Cache[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		cfg:   cfg,
		index: make(map[K]*list.Node[entry[K, V]], cfg.Capacity),
		order: list.New[entry[K, V]](cfg.Capacity),
	}, nil
}

// Get returns the value stored under key and marks it most recently
// used. Reports a hit or miss in the cache metrics.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		c.counters.Misses++
		var zero V
		return zero, false
	}
	c.order.MoveToFront(n)
	c.counters.Hits++
	return n.Value.value, true
}

// Put inserts or replaces the value stored under key, evicting least
// recently used entries until both capacity limits hold. Returns the
// replaced value when the key was already present.
//
// A put whose size alone exceeds the configured max size is rejected:
// the cache is left untouched and a miss is recorded.
func (c *Cache[K, V]) Put(key K, value V, size uint64) (V, bool) {
	var zero V
	if size > c.cfg.MaxSize {
		c.counters.Misses++
		return zero, false
	}

	if n, ok := c.index[key]; ok {
		old := n.Value.value
		c.sizeSum -= n.Value.size
		n.Value.value = value
		n.Value.size = size
		c.sizeSum += size
		c.order.MoveToFront(n)
		// A grown replacement can push the size sum over the limit;
		// the replaced entry itself sits at the front and survives.
		c.evictFor(0, 0)
		return old, true
	}

	c.evictFor(1, size)

	n, err := c.order.PushFront(entry[K, V]{key: key, value: value, size: size})
	if err != nil {
		panic("lru: insert after eviction left no room")
	}
	c.index[key] = n
	c.sizeSum += size
	c.counters.Insertions++
	return zero, false
}

// Remove deletes the entry stored under key, returning its value.
// Removing an absent key is not an error and has no metric effect.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(c.index, key)
	e := c.order.Unlink(n)
	c.sizeSum -= e.size
	return e.value, true
}

// Peek returns the value stored under key without disturbing the
// recency order. Still reports a hit or miss in the cache metrics.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		c.counters.Misses++
		var zero V
		return zero, false
	}
	c.counters.Hits++
	return n.Value.value, true
}

// Contains reports whether key is present, with no ordering or metric
// effect.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int { return len(c.index) }

// IsEmpty reports whether the cache holds no entries.
func (c *Cache[K, V]) IsEmpty() bool { return len(c.index) == 0 }

// Cap returns the configured maximum entry count.
func (c *Cache[K, V]) Cap() int { return c.cfg.Capacity }

// Size returns the current sum of entry sizes.
func (c *Cache[K, V]) Size() uint64 { return c.sizeSum }

// MaxSize returns the configured size ceiling.
func (c *Cache[K, V]) MaxSize() uint64 { return c.cfg.MaxSize }

// Clear frees every entry. Cumulative counters survive; only the live
// entry count and size sum reset.
func (c *Cache[K, V]) Clear() {
	c.index = make(map[K]*list.Node[entry[K, V]], c.cfg.Capacity)
	c.order.Init()
	c.sizeSum = 0
}

// Metrics returns a snapshot of the cache's counters and gauges.
func (c *Cache[K, V]) Metrics() metrics.Snapshot {
	return metrics.Collect(c.counters, len(c.index), c.sizeSum)
}

// Counters returns the raw cumulative counters. Used by the sharded
// facade to aggregate across shards.
func (c *Cache[K, V]) Counters() metrics.Counters { return c.counters }

// evictFor evicts back entries until slots more entries of incoming
// total bytes fit both limits. incoming must already be known to be at
// most MaxSize. The loop is bounded by the entry count; running dry
// while still over limit is an invariant violation.
func (c *Cache[K, V]) evictFor(slots int, incoming uint64) {
	for len(c.index) > 0 &&
		(len(c.index) > c.cfg.Capacity-slots || c.sizeSum > c.cfg.MaxSize-incoming) {
		e, ok := c.order.PopBack()
		if !ok {
			panic("lru: no eviction victim despite live entries")
		}
		delete(c.index, e.key)
		c.sizeSum -= e.size
		c.counters.Evictions++
	}
}
