// Package slru implements a bounded cache with segmented LRU eviction:
// a probationary list for new entries and a protected list for entries
// that have proven themselves with a second access.
//
// # Overview
//
// Plain LRU has a weakness: one sequential scan of cold keys flushes
// the entire working set. SLRU divides the cache into two LRU lists.
// New entries enter the probationary list; a second access promotes
// them to the protected list. Eviction only ever removes the
// probationary back, so scan traffic competes with itself while the
// promoted working set survives.
//
// # Architecture
//
//	          put (miss)                     get / put (hit on P)
//	              │                                  │ promote
//	              ▼                                  ▼
//	┌───────────────────────────┐     ┌───────────────────────────┐
//	│  probationary (MRU first) │     │   protected (MRU first)   │
//	│  cap = capacity − pcap    │     │   cap = pcap              │
//	└─────────────┬─────────────┘     └─────────────┬─────────────┘
//	              │ evict (back)                    │ demote (back)
//	              ▼                                 │ to probationary
//	            gone            ◀───────────────────┘     front
//
// When the protected list outgrows its ceiling the back entry is
// demoted, not evicted; when capacity pressure finds the probationary
// list empty, a demotion happens first. Protected entries are therefore
// never evicted directly.
//
// # Configuration
//
// ProtectedCapacity sets the protected ceiling and must leave at least
// one probationary slot. A ProtectedCapacity of zero degenerates to
// plain LRU over the probationary list.
package slru
