// Package lru implements a bounded cache with strict least-recently-
// used eviction and a dual capacity limit (entry count and total size).
//
// # Overview
//
// LRU is the baseline policy of this module: every access moves the
// entry to the front of a single recency list, and capacity pressure
// always evicts the back. Ties cannot occur: the back of the list is
// the unique victim.
//
// # Architecture
//
//	┌───────────────────────────────────────┐
//	│              Cache                    │
//	├───────────────────────────────────────┤
//	│  index: map[K]*Node                   │
//	│    O(1) key → list position           │
//	├───────────────────────────────────────┤
//	│  order: intrusive list (MRU first)    │
//	│    front = just used                  │
//	│    back  = eviction victim            │
//	├───────────────────────────────────────┤
//	│  sizeSum, counters                    │
//	└───────────────────────────────────────┘
//
// # Operations
//
// Get promotes and counts a hit or miss. Peek reads without promoting.
// Put replaces in place (returning the old value) or inserts after
// evicting enough victims; an entry larger than the size limit is
// rejected without mutating the cache. Remove and Clear free entries
// directly.
//
// # Concurrency
//
// Instances assume exclusive access; see the sharded package for the
// concurrent variant.
package lru
