// Package cachekit provides bounded in-memory caches with five eviction
// policies (LRU, SLRU, LFU, LFUDA, and GDSF), as single-threaded caches
// and as sharded concurrent variants.
//
// # Overview
//
// Every cache in this module enforces a dual capacity limit: a maximum
// entry count and a maximum total size, where each entry's size is a
// caller-supplied non-negative weight (bytes, slots, tokens; the cache
// does not interpret it). Insertions evict entries chosen by the policy
// until both limits hold.
//
// The root package carries the pieces shared by every policy:
//
//   - Config: the capacity configuration value type, built with
//     functional options and validated at construction time
//   - Hashable / HashKey: the key constraint and hash used by the
//     concurrent facades to dispatch keys to shards
//
// # Architecture
//
//	┌─────────────────────────────────────────────┐
//	│              cachekit (root)                │
//	│   Config · Options · Hashable · HashKey     │
//	├─────────────────────────────────────────────┤
//	│  lru/   slru/   lfu/   lfuda/   gdsf/       │
//	│    policy segments + facades                │
//	│    (index map + intrusive lists)            │
//	├─────────────────────────────────────────────┤
//	│  sharded/                                   │
//	│    N mutex-protected segments per cache,    │
//	│    key → shard by HashKey                   │
//	├─────────────────────────────────────────────┤
//	│  metrics/        internal/list/             │
//	│    counters        intrusive linked list    │
//	└─────────────────────────────────────────────┘
//
// # Choosing a policy
//
// LRU evicts the least recently used entry and suits general workloads.
// SLRU adds scan resistance by protecting entries accessed more than
// once. LFU evicts the least frequently used entry. LFUDA ages
// frequencies so formerly-popular entries cannot pin the cache forever.
// GDSF additionally weighs frequency against entry size, preferring to
// keep many small popular entries over few large ones.
//
// # Concurrency
//
// The policy packages are single-threaded: a cache instance assumes
// exclusive access. The sharded package wraps each policy in a fixed
// array of mutex-protected segments for concurrent use.
package cachekit
