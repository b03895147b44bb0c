// Package lfuda implements a bounded cache with LFU-with-dynamic-aging
// eviction. See doc.go for complete package documentation.
package lfuda

import (
	"golang.org/x/exp/slices"

	"github.com/dreamware/cachekit"
	"github.com/dreamware/cachekit/internal/list"
	"github.com/dreamware/cachekit/metrics"
)

// entry is the payload carried by each bucket-list node.
type entry[K comparable, V any] struct {
	key   K
	value V
	size  uint64
	freq  uint64
	prio  uint64
}

// Cache is a bounded LFU-with-dynamic-aging cache.
//
// Each entry carries a priority of frequency + age, where age is a
// cache-global scalar that only moves on eviction: it rises to the
// evicted victim's priority. Entries that were popular long ago stop
// being untouchable: once enough evictions push the age past their
// stale priority, fresh entries (inserted at priority 1 + age) overtake
// them. Without the aging term this is plain LFU and yesterday's hot
// keys can pin the cache forever.
//
// Entries live in priority buckets: one intrusive list per distinct
// priority, most recently moved first, with the occupied priorities
// held in a sorted slice. Eviction takes the back of the smallest
// priority bucket.
//
// Cache is not synchronized: an instance assumes exclusive access. Use
// the sharded package for concurrent use.
//
// The zero value is not usable; create instances with New.
type Cache[K comparable, V any] struct {
	cfg      cachekit.Config
	index    map[K]*list.Node[entry[K, V]]
	buckets  map[uint64]*list.List[entry[K, V]]
	prios    []uint64 // occupied priorities, ascending
	age      uint64
	sizeSum  uint64
	counters metrics.Counters
}

// New returns an LFUDA cache for the given configuration. The age
// scalar starts at the configured InitialAge.
func New[K comparable, V any](cfg cachekit.Config) (*Cache[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		cfg:     cfg,
		index:   make(map[K]*list.Node[entry[K, V]], cfg.Capacity),
		buckets: make(map[uint64]*list.List[entry[K, V]]),
		age:     cfg.InitialAge,
	}, nil
}

// Get returns the value stored under key, bumping its frequency and
// re-bucketing it at priority frequency + age.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		c.counters.Misses++
		var zero V
		return zero, false
	}
	c.bump(n)
	c.counters.Hits++
	return n.Value.value, true
}

// Put inserts or replaces the value stored under key. A put on a
// present key counts as an access and bumps exactly like Get before
// the value and size are replaced. New entries start at frequency 1,
// priority 1 + age. Returns the replaced value when the key was
// present.
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
		c.bump(n)
		c.evictFor(0, 0)
		return old, true
	}

	c.evictFor(1, size)

	e := entry[K, V]{key: key, value: value, size: size, freq: 1, prio: 1 + c.age}
	n, err := c.bucketFor(e.prio).PushFront(e)
	if err != nil {
		panic("lfuda: insert after eviction left no room")
	}
	c.index[key] = n
	c.sizeSum += size
	c.counters.Insertions++
	return zero, false
}

// Remove deletes the entry stored under key, returning its value.
// Removal does not advance the age.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(c.index, key)
	e := c.unlinkFromBucket(n)
	c.sizeSum -= e.size
	return e.value, true
}

// Peek returns the value stored under key without bumping. Still
// reports a hit or miss in the cache metrics.
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

// Contains reports whether key is present, with no priority or metric
// effect.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Age returns the cache's current aging scalar. It is monotonically
// non-decreasing: eviction raises it to the victim's priority.
func (c *Cache[K, V]) Age() uint64 { return c.age }

// Priority returns the current priority recorded for key, or false if
// the key is absent.
func (c *Cache[K, V]) Priority(key K) (uint64, bool) {
	n, ok := c.index[key]
	if !ok {
		return 0, false
	}
	return n.Value.prio, true
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

// Clear frees every entry and every bucket. Cumulative counters and
// the age survive; age is monotonic across the cache's lifetime.
func (c *Cache[K, V]) Clear() {
	c.index = make(map[K]*list.Node[entry[K, V]], c.cfg.Capacity)
	c.buckets = make(map[uint64]*list.List[entry[K, V]])
	c.prios = c.prios[:0]
	c.sizeSum = 0
}

// Metrics returns a snapshot of the cache's counters and gauges.
func (c *Cache[K, V]) Metrics() metrics.Snapshot {
	return metrics.Collect(c.counters, len(c.index), c.sizeSum)
}

// Counters returns the raw cumulative counters for shard aggregation.
func (c *Cache[K, V]) Counters() metrics.Counters { return c.counters }

// bucketFor returns the list for priority p, creating it (and
// recording p in the sorted priority slice) on demand.
func (c *Cache[K, V]) bucketFor(p uint64) *list.List[entry[K, V]] {
	b, ok := c.buckets[p]
	if !ok {
		b = list.New[entry[K, V]](c.cfg.Capacity)
		c.buckets[p] = b
		i, _ := slices.BinarySearch(c.prios, p)
		c.prios = slices.Insert(c.prios, i, p)
	}
	return b
}

// unlinkFromBucket detaches n from its priority bucket and garbage
// collects the bucket (and its sorted-slice slot) if it emptied.
func (c *Cache[K, V]) unlinkFromBucket(n *list.Node[entry[K, V]]) entry[K, V] {
	p := n.Value.prio
	b := c.buckets[p]
	e := b.Unlink(n)
	if b.Len() == 0 {
		delete(c.buckets, p)
		i, found := slices.BinarySearch(c.prios, p)
		if found {
			c.prios = slices.Delete(c.prios, i, i+1)
		}
	}
	return e
}

// bump moves n to the bucket for its post-access priority:
// (frequency + 1) + age, with the same node handle throughout.
func (c *Cache[K, V]) bump(n *list.Node[entry[K, V]]) {
	c.unlinkFromBucket(n)
	n.Value.freq++
	n.Value.prio = n.Value.freq + c.age
	if err := c.bucketFor(n.Value.prio).PushFrontNode(n); err != nil {
		panic("lfuda: bucket refused bumped entry")
	}
}

// evictFor makes room for slots more entries of incoming total bytes.
// The victim is the back of the smallest-priority bucket; the age
// rises to the victim's priority.
func (c *Cache[K, V]) evictFor(slots int, incoming uint64) {
	for len(c.index) > 0 &&
		(len(c.index) > c.cfg.Capacity-slots || c.sizeSum > c.cfg.MaxSize-incoming) {
		if len(c.prios) == 0 {
			panic("lfuda: no priority bucket despite live entries")
		}
		b := c.buckets[c.prios[0]]
		victim := b.Back()
		if victim.Value.prio > c.age {
			c.age = victim.Value.prio
		}
		e := c.unlinkFromBucket(victim)
		delete(c.index, e.key)
		c.sizeSum -= e.size
		c.counters.Evictions++
	}
}
