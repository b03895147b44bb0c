// Package slru implements a bounded cache with segmented LRU eviction.
// See doc.go for complete package documentation.
package slru

import (
	"github.com/dreamware/cachekit"
	"github.com/dreamware/cachekit/internal/list"
	"github.com/dreamware/cachekit/metrics"
)

// segment tags which of the two lists an entry currently lives in.
type segment uint8

const (
	probationary segment = iota
	protected
)

// entry is the payload carried by each list node. The segment tag
// travels with the node so the index needs no second lookup structure.
type entry[K comparable, V any] struct {
	key   K
	value V
	size  uint64
	seg   segment
}

// Cache is a bounded segmented-LRU cache.
//
// Entries enter the probationary list and are promoted to the
// protected list on their second access. Capacity pressure only ever
// evicts from the probationary back; when the protected list outgrows
// its ceiling, its back entry is demoted to the probationary front
// rather than evicted. A single-pass scan therefore churns only the
// probationary list and cannot displace the protected working set.
//
// Cache is not synchronized: an instance assumes exclusive access. Use
// the sharded package for concurrent use.
//
// The zero value is not usable; create instances with New.
type Cache[K comparable, V any] struct {
	cfg       cachekit.Config
	index     map[K]*list.Node[entry[K, V]]
	probation *list.List[entry[K, V]]
	guarded   *list.List[entry[K, V]]
	sizeSum   uint64
	counters  metrics.Counters
}

// New returns an SLRU cache for the given configuration. The
// configured ProtectedCapacity must be smaller than Capacity; the
// probationary segment holds the remainder.
func New[K comparable, V any](cfg cachekit.Config) (*Cache[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		cfg:       cfg,
		index:     make(map[K]*list.Node[entry[K, V]], cfg.Capacity),
		probation: list.New[entry[K, V]](cfg.Capacity),
		guarded:   list.New[entry[K, V]](cfg.Capacity),
	}, nil
}

// probationCap is the probationary entry ceiling: whatever the
// protected segment does not claim.
func (c *Cache[K, V]) probationCap() int {
	return c.cfg.Capacity - c.cfg.ProtectedCapacity
}

// Get returns the value stored under key. A probationary hit promotes
// the entry to the protected segment; a protected hit refreshes its
// recency there.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		c.counters.Misses++
		var zero V
		return zero, false
	}
	c.touch(n)
	c.counters.Hits++
	return n.Value.value, true
}

// Put inserts or replaces the value stored under key. New entries land
// at the probationary front; a put on a present key counts as an access
// and promotes exactly like Get. Returns the replaced value when the
// key was already present.
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
		c.touch(n)
		c.evictFor(0, 0)
		return old, true
	}

	c.evictFor(1, size)

	n, err := c.probation.PushFront(entry[K, V]{key: key, value: value, size: size, seg: probationary})
	if err != nil {
		panic("slru: insert after eviction left no room")
	}
	c.index[key] = n
	c.sizeSum += size
	c.counters.Insertions++
	return zero, false
}

// Remove deletes the entry stored under key from whichever segment
// holds it, returning its value.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(c.index, key)
	e := c.listOf(n.Value.seg).Unlink(n)
	c.sizeSum -= e.size
	return e.value, true
}

// Peek returns the value stored under key without promotion or
// recency movement. Still reports a hit or miss in the cache metrics.
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

// Contains reports whether key is present, with no segment or metric
// effect.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Len returns the number of live entries across both segments.
func (c *Cache[K, V]) Len() int { return len(c.index) }

// IsEmpty reports whether the cache holds no entries.
func (c *Cache[K, V]) IsEmpty() bool { return len(c.index) == 0 }

// Cap returns the configured maximum entry count.
func (c *Cache[K, V]) Cap() int { return c.cfg.Capacity }

// Size returns the current sum of entry sizes.
func (c *Cache[K, V]) Size() uint64 { return c.sizeSum }

// MaxSize returns the configured size ceiling.
func (c *Cache[K, V]) MaxSize() uint64 { return c.cfg.MaxSize }

// ProbationaryLen returns the probationary segment's entry count.
func (c *Cache[K, V]) ProbationaryLen() int { return c.probation.Len() }

// ProtectedLen returns the protected segment's entry count.
func (c *Cache[K, V]) ProtectedLen() int { return c.guarded.Len() }

// Clear frees every entry. Cumulative counters survive.
func (c *Cache[K, V]) Clear() {
	c.index = make(map[K]*list.Node[entry[K, V]], c.cfg.Capacity)
	c.probation.Init()
	c.guarded.Init()
	c.sizeSum = 0
}

// Metrics returns a snapshot of the cache's counters and gauges.
func (c *Cache[K, V]) Metrics() metrics.Snapshot {
	return metrics.Collect(c.counters, len(c.index), c.sizeSum)
}

// Counters returns the raw cumulative counters for shard aggregation.
func (c *Cache[K, V]) Counters() metrics.Counters { return c.counters }

func (c *Cache[K, V]) listOf(seg segment) *list.List[entry[K, V]] {
	if seg == probationary {
		return c.probation
	}
	return c.guarded
}

// touch applies the access rule: promote a probationary entry into the
// protected segment, refresh a protected one in place.
func (c *Cache[K, V]) touch(n *list.Node[entry[K, V]]) {
	if n.Value.seg == protected {
		c.guarded.MoveToFront(n)
		return
	}

	c.probation.Unlink(n)
	n.Value.seg = protected
	if err := c.guarded.PushFrontNode(n); err != nil {
		panic("slru: protected list refused promoted entry")
	}
	if c.guarded.Len() > c.cfg.ProtectedCapacity {
		c.demote()
	}
}

// demote moves the protected back entry to the probationary front.
// Promotion removes one probationary entry before demotion adds one
// back, so demotion alone can never overflow the probationary segment.
func (c *Cache[K, V]) demote() {
	n := c.guarded.Back()
	if n == nil {
		panic("slru: demotion from empty protected list")
	}
	c.guarded.Unlink(n)
	n.Value.seg = probationary
	if err := c.probation.PushFrontNode(n); err != nil {
		panic("slru: probationary list refused demoted entry")
	}
}

// evictFor makes room for slots more entries of incoming total bytes.
// Victims always come from the probationary back; if the probationary
// list is empty while limits are still exceeded, a protected entry is
// demoted first; protected entries are never evicted directly.
func (c *Cache[K, V]) evictFor(slots int, incoming uint64) {
	for len(c.index) > 0 &&
		(c.probation.Len() > c.probationCap()-slots ||
			len(c.index) > c.cfg.Capacity-slots ||
			c.sizeSum > c.cfg.MaxSize-incoming) {
		if c.probation.Len() == 0 {
			c.demote()
			continue
		}
		e, ok := c.probation.PopBack()
		if !ok {
			panic("slru: no eviction victim despite live entries")
		}
		delete(c.index, e.key)
		c.sizeSum -= e.size
		c.counters.Evictions++
	}
}
