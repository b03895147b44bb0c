// Package lfuda implements a bounded cache with LFU-with-dynamic-aging
// (LFUDA) eviction.
//
// # Overview
//
// Plain LFU has a pollution problem: an entry that accumulated a high
// access count long ago outranks every newcomer forever, even after
// its traffic dries up. LFUDA keeps LFU's frequency ordering but adds
// a cache-global age term to every priority:
//
//	priority = frequency + age
//
// The age only moves on eviction, rising to the evicted victim's
// priority. Every eviction therefore lifts the floor: new entries are
// inserted at priority 1 + age, and once enough evictions have pushed
// the age past a stale entry's frozen priority, the stale entry becomes
// the cheapest thing in the cache and is reclaimed.
//
// # Architecture
//
//	age ───────────────▶ rises to victim priority on eviction
//
//	buckets: map[priority]list     prios: sorted occupied priorities
//
//	  prio  5: [ e ── e ]   ◀── eviction source (smallest, back)
//	  prio  9: [ e ]
//	  prio 14: [ e ── e ── e ]
//	         ▲
//	         └── access re-buckets a node at freq+1+age, same handle
//
// Priorities are plain integers: frequency and age are both integral,
// so no fixed-point scaling is needed (contrast with the gdsf package).
//
// # Accounting of accesses
//
// Get and a Put on a present key bump the frequency by one and
// re-bucket. Peek reads without bumping. Remove and Clear do not
// advance the age; only eviction does.
package lfuda
