// Package list implements the capacity-bounded intrusive doubly-linked
// list that underpins every eviction policy in this module, providing
// O(1) ordering mutations through stable node handles.
//
// # Overview
//
// Each cache policy keeps its entries ordered in one or more of these
// lists: a recency list for LRU, probationary and protected lists for
// SLRU, one list per frequency or priority bucket for LFU, LFUDA, and
// GDSF. The policy's index map stores *Node handles, so a map hit
// reaches the entry's list position without any search.
//
// # Architecture
//
//	┌──────┐    ┌───────┐    ┌───────┐    ┌──────┐
//	│ head │───▶│ node  │───▶│ node  │───▶│ tail │
//	│ sent.│◀───│ (MRU) │◀───│ (LRU) │◀───│ sent.│
//	└──────┘    └───────┘    └───────┘    └──────┘
//
// The sentinels remove every empty-list and single-node special case from
// the link juggling: front is always head.next, back is always
// tail.prev, and both equal the opposite sentinel exactly when the list
// is empty. Sentinels are never returned to callers.
//
// # Handles and bucket moves
//
// A node is allocated once per cache entry and its address is the
// entry's identity for its whole lifetime. Policies that move entries
// between bucket lists (LFU, LFUDA, GDSF) do so with Unlink followed by
// PushFrontNode on the destination list, keeping the handle (and
// therefore the index) valid across the move. A node is in at most one
// list at any time.
//
// # Capacity
//
// Push operations fail with ErrFull instead of silently exceeding the
// declared capacity. The owning cache evicts first, then pushes; a Full
// result on the cache's own insert path is an invariant violation.
//
// # Concurrency
//
// The list performs no locking. Callers either run single-threaded or
// hold the owning shard's mutex across every call.
package list
