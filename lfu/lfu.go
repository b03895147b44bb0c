// Package lfu implements a bounded cache with least-frequently-used
// eviction. See doc.go for complete package documentation.
package lfu

import (
	"github.com/dreamware/cachekit"
	"github.com/dreamware/cachekit/internal/list"
	"github.com/dreamware/cachekit/metrics"
)

// entry is the payload carried by each bucket-list node. The frequency
// rides along so the index needs no side table.
type entry[K comparable, V any] struct {
	key   K
	value V
	size  uint64
	freq  uint64
}

// Cache is a bounded least-frequently-used cache.
//
// Entries live in frequency buckets: one intrusive list per distinct
// access count, each kept in most-recently-used-first order. An access
// moves the entry from bucket f to bucket f+1 with the same node
// handle throughout, so the index stays valid across the move. Eviction takes
// the back of the lowest occupied bucket: the least recently used entry
// among the least frequently used.
//
// minFreq tracks the lowest occupied bucket explicitly; empty buckets
// are deleted from the bucket map so it cannot grow without bound.
//
// Cache is not synchronized: an instance assumes exclusive access. Use
// the sharded package for concurrent use.
//
// The zero value is not usable; create instances with New.
type Cache[K comparable, V any] struct {
	cfg      cachekit.Config
	index    map[K]*list.Node[entry[K, V]]
	buckets  map[uint64]*list.List[entry[K, V]]
	minFreq  uint64
	sizeSum  uint64
	counters metrics.Counters
}

// New returns an LFU cache for the given configuration, or the
// configuration's validation error.
func New[K comparable, V any](cfg cachekit.Config) (*Cache[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		cfg:     cfg,
		index:   make(map[K]*list.Node[entry[K, V]], cfg.Capacity),
		buckets: make(map[uint64]*list.List[entry[K, V]]),
	}, nil
}

// Get returns the value stored under key and bumps its frequency by
// one, moving it into the next bucket.
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
// present key counts as an access: the frequency bumps exactly like
// Get before the value and size are replaced. New entries start at
// frequency 1. Returns the replaced value when the key was present.
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

	bucket := c.bucketFor(1)
	n, err := bucket.PushFront(entry[K, V]{key: key, value: value, size: size, freq: 1})
	if err != nil {
		panic("lfu: insert after eviction left no room")
	}
	c.index[key] = n
	c.sizeSum += size
	c.minFreq = 1
	c.counters.Insertions++
	return zero, false
}

// Remove deletes the entry stored under key, returning its value.
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

// Peek returns the value stored under key without bumping its
// frequency. Still reports a hit or miss in the cache metrics.
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

// Contains reports whether key is present, with no frequency or metric
// effect.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Freq returns the current access frequency recorded for key, or false
// if the key is absent. Reads do not disturb the frequency.
func (c *Cache[K, V]) Freq(key K) (uint64, bool) {
	n, ok := c.index[key]
	if !ok {
		return 0, false
	}
	return n.Value.freq, true
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

// Clear frees every entry and every bucket. Cumulative counters
// survive.
func (c *Cache[K, V]) Clear() {
	c.index = make(map[K]*list.Node[entry[K, V]], c.cfg.Capacity)
	c.buckets = make(map[uint64]*list.List[entry[K, V]])
	c.minFreq = 0
	c.sizeSum = 0
}

// Metrics returns a snapshot of the cache's counters and gauges.
func (c *Cache[K, V]) Metrics() metrics.Snapshot {
	return metrics.Collect(c.counters, len(c.index), c.sizeSum)
}

// Counters returns the raw cumulative counters for shard aggregation.
func (c *Cache[K, V]) Counters() metrics.Counters { return c.counters }

// bucketFor returns the list for frequency f, creating it on demand.
func (c *Cache[K, V]) bucketFor(f uint64) *list.List[entry[K, V]] {
	b, ok := c.buckets[f]
	if !ok {
		b = list.New[entry[K, V]](c.cfg.Capacity)
		c.buckets[f] = b
	}
	return b
}

// unlinkFromBucket detaches n from its frequency bucket, garbage
// collects the bucket if it emptied, and repairs minFreq.
func (c *Cache[K, V]) unlinkFromBucket(n *list.Node[entry[K, V]]) entry[K, V] {
	f := n.Value.freq
	b := c.buckets[f]
	e := b.Unlink(n)
	if b.Len() == 0 {
		delete(c.buckets, f)
		if f == c.minFreq {
			c.rescanMinFreq()
		}
	}
	return e
}

// bump moves n from bucket f to bucket f+1.
func (c *Cache[K, V]) bump(n *list.Node[entry[K, V]]) {
	f := n.Value.freq
	b := c.buckets[f]
	b.Unlink(n)
	if b.Len() == 0 {
		delete(c.buckets, f)
		if f == c.minFreq {
			// The entry itself lands in f+1, so that bucket is the
			// new floor.
			c.minFreq = f + 1
		}
	}
	n.Value.freq = f + 1
	if err := c.bucketFor(f + 1).PushFrontNode(n); err != nil {
		panic("lfu: bucket refused bumped entry")
	}
}

// rescanMinFreq recomputes the lowest occupied bucket after a removal
// emptied the floor bucket. The scan is bounded by the number of
// distinct live frequencies.
func (c *Cache[K, V]) rescanMinFreq() {
	c.minFreq = 0
	for f := range c.buckets {
		if c.minFreq == 0 || f < c.minFreq {
			c.minFreq = f
		}
	}
}

// evictFor makes room for slots more entries of incoming total bytes.
// The victim is always the back of the minFreq bucket: least recently
// used among the least frequently used.
func (c *Cache[K, V]) evictFor(slots int, incoming uint64) {
	for len(c.index) > 0 &&
		(len(c.index) > c.cfg.Capacity-slots || c.sizeSum > c.cfg.MaxSize-incoming) {
		b, ok := c.buckets[c.minFreq]
		if !ok || b.Len() == 0 {
			panic("lfu: minFreq bucket missing despite live entries")
		}
		victim := b.Back()
		e := c.unlinkFromBucket(victim)
		delete(c.index, e.key)
		c.sizeSum -= e.size
		c.counters.Evictions++
	}
}
