// Package sharded provides concurrent variants of the module's five
// cache policies by partitioning the key space across mutex-protected
// single-threaded segments.
//
// # Overview
//
// Every cache policy here mutates internal ordering on reads (a hit
// moves list nodes), so a reader-writer lock buys nothing: everything
// is a write. Instead of one hot mutex, the concurrent cache holds N
// independent segments, each a complete single-threaded policy cache
// with 1/N of the capacity, and dispatches each key to the segment
// owning its hash.
//
// # Architecture
//
//	              key
//	               │ HashKey(key) & mask
//	               ▼
//	┌─────────┬─────────┬─────────┬─────────┐
//	│ shard 0 │ shard 1 │ shard 2 │ shard 3 │
//	│ mutex   │ mutex   │ mutex   │ mutex   │
//	│ segment │ segment │ segment │ segment │
//	└─────────┴─────────┴─────────┴─────────┘
//
// The shard count is rounded up to a power of two so dispatch is a
// mask, at least 1, and capped at the capacity. Per-shard ceilings are
// the base ceilings ceil-divided by the shard count.
//
// # Consistency model
//
// Operations on one key lock exactly that key's shard: per shard,
// operations linearize at lock acquisition. No operation ever holds
// two shard locks, so there is no lock-ordering hazard and no
// cross-shard atomicity either: Len, Size, and Metrics walk the
// shards one at a time and report a best-effort snapshot.
//
// Trade-offs worth knowing when picking a shard count: more shards
// mean less contention but more per-shard overhead and N lock
// acquisitions for every aggregate read. Eviction is local to each
// shard; a hot key set hashing across all shards can displace each
// shard's cold tail independently, which is not identical to what the
// same policy would do unsharded.
//
// # Value copying
//
// Get and Peek return the value by copy taken under the shard lock;
// a reference into a segment never escapes. GetWith hands the value
// to a closure while the lock is held for zero-copy reads; the
// closure must not call back into the cache or retain the value.
package sharded
