// Package gdsf implements a bounded cache with greedy-dual-size-
// frequency (GDSF) eviction: aged priorities weighted by entry size.
//
// # Overview
//
// When entry sizes vary widely, raw hit frequency is the wrong
// ranking: one 80 KB entry can crowd out eight 10 KB entries that
// together would serve far more hits. GDSF divides the frequency term
// by the entry's size,
//
//	priority = age + (frequency × cost × scale) ÷ size
//
// so equal popularity ranks the smaller entry higher, and eviction
// pressure removes the largest of the least popular first. The age
// term works exactly as in the lfuda package: it rises to each
// victim's priority and lets stale popularity drain away.
//
// # Fixed-point priorities
//
// Priorities key an ordered bucket collection, so they are integers:
// the frequency term is scaled by 1000 before the division by size.
// Two entries whose true ratios differ by less than 1/1000 of the age
// unit share a bucket and fall back to recency order within it. The
// age inherits the same scale and stays monotonic, since it only ever
// takes the value of an already-rounded victim priority.
//
// # Zero-size entries
//
// A size of zero has no meaningful place in the formula; such entries are
// instead pinned at the maximal priority. They count against the entry
// limit but not the size limit, are never chosen by size pressure, and
// never advance the age. Entry-count pressure can still reclaim them
// once every sized entry is gone, and Remove always works.
package gdsf
