// Package sharded provides the concurrent variants of every cache
// policy in this module. See doc.go for complete package documentation.
package sharded

import (
	"sync"

	"github.com/dreamware/cachekit"
	"github.com/dreamware/cachekit/gdsf"
	"github.com/dreamware/cachekit/lfu"
	"github.com/dreamware/cachekit/lfuda"
	"github.com/dreamware/cachekit/lru"
	"github.com/dreamware/cachekit/metrics"
	"github.com/dreamware/cachekit/slru"
)

// segment is the operation set every single-threaded policy cache
// exposes. The facade never reaches past it: raw node handles stay
// buried inside the policy packages and never cross a shard boundary.
type segment[K comparable, V any] interface {
	Get(key K) (V, bool)
	Put(key K, value V, size uint64) (V, bool)
	Remove(key K) (V, bool)
	Peek(key K) (V, bool)
	Contains(key K) bool
	Len() int
	Cap() int
	Size() uint64
	MaxSize() uint64
	Clear()
	Counters() metrics.Counters
}

// shard pairs one policy segment with the mutex that serializes every
// touch of it.
type shard[K comparable, V any] struct {
	mu  sync.Mutex
	seg segment[K, V]
}

// Cache is a concurrent cache: a fixed, immutable array of
// mutex-protected policy segments, with keys dispatched by hash. The
// policy is chosen by the constructor (NewLRU, NewSLRU, NewLFU,
// NewLFUDA, or NewGDSF), and every shard runs that policy over its
// slice of the key space with per-shard capacity ceilings.
//
// Operations lock exactly one shard, so distinct-key traffic on
// different shards never contends and no operation can deadlock
// against another. Aggregate reads (Len, Size, Metrics, Clear) visit
// the shards one at a time and therefore observe a best-effort
// snapshot, not a globally atomic instant.
//
// Get returns the value by copy, taken while the shard lock is held;
// GetWith runs a caller closure under the lock for zero-copy reads.
type Cache[K cachekit.Hashable, V any] struct {
	shards []*shard[K, V]
	mask   uint64
}

// NewLRU returns a sharded cache with LRU segments.
func NewLRU[K cachekit.Hashable, V any](cfg cachekit.Config) (*Cache[K, V], error) {
	return build[K, V](cfg, func(sub cachekit.Config) (segment[K, V], error) {
		return lru.New[K, V](sub)
	})
}

// NewSLRU returns a sharded cache with segmented-LRU segments. The
// configured ProtectedCapacity is split across shards like the other
// ceilings, clamped so every shard keeps at least one probationary
// slot.
func NewSLRU[K cachekit.Hashable, V any](cfg cachekit.Config) (*Cache[K, V], error) {
	return build[K, V](cfg, func(sub cachekit.Config) (segment[K, V], error) {
		return slru.New[K, V](sub)
	})
}

// NewLFU returns a sharded cache with LFU segments.
func NewLFU[K cachekit.Hashable, V any](cfg cachekit.Config) (*Cache[K, V], error) {
	return build[K, V](cfg, func(sub cachekit.Config) (segment[K, V], error) {
		return lfu.New[K, V](sub)
	})
}

// NewLFUDA returns a sharded cache with LFUDA segments. Each shard
// ages independently: the age scalar is per-segment state.
func NewLFUDA[K cachekit.Hashable, V any](cfg cachekit.Config) (*Cache[K, V], error) {
	return build[K, V](cfg, func(sub cachekit.Config) (segment[K, V], error) {
		return lfuda.New[K, V](sub)
	})
}

// NewGDSF returns a sharded cache with GDSF segments. Like LFUDA,
// aging is per-shard.
func NewGDSF[K cachekit.Hashable, V any](cfg cachekit.Config) (*Cache[K, V], error) {
	return build[K, V](cfg, func(sub cachekit.Config) (segment[K, V], error) {
		return gdsf.New[K, V](sub)
	})
}

// build validates the configuration once up front, derives the
// per-shard ceilings, and constructs one segment per shard.
func build[K cachekit.Hashable, V any](cfg cachekit.Config, mk func(cachekit.Config) (segment[K, V], error)) (*Cache[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.ShardCount()
	sub := shardConfig(cfg, n)

	c := &Cache[K, V]{
		shards: make([]*shard[K, V], n),
		mask:   uint64(n - 1),
	}
	for i := range c.shards {
		seg, err := mk(sub)
		if err != nil {
			return nil, err
		}
		c.shards[i] = &shard[K, V]{seg: seg}
	}
	return c, nil
}

// shardConfig derives one shard's ceilings from the base
// configuration: entry and size caps are ceil-divided by the shard
// count, and the SLRU protected ceiling is clamped to keep a
// probationary slot per shard.
func shardConfig(cfg cachekit.Config, n int) cachekit.Config {
	sub := cfg
	sub.Capacity = ceilDiv(cfg.Capacity, n)
	sub.MaxSize = ceilDivU64(cfg.MaxSize, uint64(n))
	sub.ProtectedCapacity = ceilDiv(cfg.ProtectedCapacity, n)
	if sub.ProtectedCapacity >= sub.Capacity {
		sub.ProtectedCapacity = sub.Capacity - 1
	}
	sub.Shards = 1
	return sub
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// ceilDivU64 ceil-divides without overflowing near the uint64 maximum.
func ceilDivU64(a, b uint64) uint64 {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// shardFor picks the shard owning key. The shard count is a power of
// two, so the dispatch is a mask of the key hash.
func (c *Cache[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[cachekit.HashKey(key)&c.mask]
}

// Get returns a copy of the value stored under key, promoting it in
// its shard per the policy. The copy is taken under the shard lock so
// the caller never holds a reference into a segment.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	v, ok := s.seg.Get(key)
	s.mu.Unlock()
	return v, ok
}

// GetWith looks up key and, on a hit, invokes fn with the value while
// the shard lock is held, a zero-copy read. fn must not call back
// into the cache (self-deadlock) and must not retain the value past
// its return. Reports whether the key was found.
func (c *Cache[K, V]) GetWith(key K, fn func(value V)) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.seg.Get(key)
	if !ok {
		return false
	}
	fn(v)
	return true
}

// Put inserts or replaces the value stored under key in its shard,
// returning the replaced value when the key was present.
func (c *Cache[K, V]) Put(key K, value V, size uint64) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	old, replaced := s.seg.Put(key, value, size)
	s.mu.Unlock()
	return old, replaced
}

// Remove deletes the entry stored under key, returning its value.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	v, ok := s.seg.Remove(key)
	s.mu.Unlock()
	return v, ok
}

// Peek returns a copy of the value stored under key without promoting
// it.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	v, ok := s.seg.Peek(key)
	s.mu.Unlock()
	return v, ok
}

// Contains reports whether key is present.
func (c *Cache[K, V]) Contains(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	ok := s.seg.Contains(key)
	s.mu.Unlock()
	return ok
}

// ShardCount returns the number of shards.
func (c *Cache[K, V]) ShardCount() int { return len(c.shards) }

// Len returns the total entry count, summed shard by shard. The
// result is a best-effort snapshot: shards already visited can change
// while later ones are read.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += s.seg.Len()
		s.mu.Unlock()
	}
	return total
}

// IsEmpty reports whether every shard is empty, with Len's snapshot
// semantics.
func (c *Cache[K, V]) IsEmpty() bool { return c.Len() == 0 }

// Cap returns the summed entry capacity of all shards. Per-shard
// rounding means this can slightly exceed the configured capacity.
func (c *Cache[K, V]) Cap() int {
	total := 0
	for _, s := range c.shards {
		total += s.seg.Cap()
	}
	return total
}

// Size returns the summed entry sizes across shards, with Len's
// snapshot semantics.
func (c *Cache[K, V]) Size() uint64 {
	var total uint64
	for _, s := range c.shards {
		s.mu.Lock()
		total += s.seg.Size()
		s.mu.Unlock()
	}
	return total
}

// Clear frees every entry, shard by shard. Concurrent writers can
// repopulate already-cleared shards before the sweep finishes.
func (c *Cache[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.seg.Clear()
		s.mu.Unlock()
	}
}

// Metrics folds every shard's counters and gauges into one snapshot,
// with Len's snapshot semantics.
func (c *Cache[K, V]) Metrics() metrics.Snapshot {
	var counters metrics.Counters
	entries := 0
	var size uint64
	for _, s := range c.shards {
		s.mu.Lock()
		counters.Merge(s.seg.Counters())
		entries += s.seg.Len()
		size += s.seg.Size()
		s.mu.Unlock()
	}
	return metrics.Collect(counters, entries, size)
}
