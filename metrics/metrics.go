// Package metrics carries the counter aggregate every cache in this
// module owns and turns it into deterministic snapshots.
//
// Counters are plain fields mutated by the owning segment. A segment
// is either single-threaded or already behind a shard mutex, so the
// counters need no synchronization of their own.
package metrics

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Counters is the cumulative counter set owned by a cache segment.
// Counters only ever grow; live gauges (entry count, total size) are
// read off the cache itself at snapshot time.
type Counters struct {
	Hits       uint64
	Misses     uint64
	Insertions uint64
	Evictions  uint64
}

// Merge adds other into c. Used by the sharded facades to fold
// per-shard counters into one aggregate.
func (c *Counters) Merge(other Counters) {
	c.Hits += other.Hits
	c.Misses += other.Misses
	c.Insertions += other.Insertions
	c.Evictions += other.Evictions
}

// Sample is one named metric value.
type Sample struct {
	Name  string
	Value float64
}

// Snapshot is a point-in-time view of a cache's metrics, sorted
// lexicographically by name. The name set is stable:
//
//	current_size, entries, evictions, hit_rate, hits, insertions, misses
//
// hit_rate is hits/(hits+misses), or 0 when both are zero.
type Snapshot []Sample

// Collect builds a Snapshot from cumulative counters plus the cache's
// live entry count and size sum.
func Collect(c Counters, entries int, size uint64) Snapshot {
	rate := 0.0
	if c.Hits+c.Misses > 0 {
		rate = float64(c.Hits) / float64(c.Hits+c.Misses)
	}

	byName := map[string]float64{
		"current_size": float64(size),
		"entries":      float64(entries),
		"evictions":    float64(c.Evictions),
		"hit_rate":     rate,
		"hits":         float64(c.Hits),
		"insertions":   float64(c.Insertions),
		"misses":       float64(c.Misses),
	}

	names := maps.Keys(byName)
	slices.Sort(names)

	snap := make(Snapshot, 0, len(names))
	for _, name := range names {
		snap = append(snap, Sample{Name: name, Value: byName[name]})
	}
	return snap
}

// Get returns the named sample's value, or false if the name is not in
// the snapshot.
func (s Snapshot) Get(name string) (float64, bool) {
	i, ok := slices.BinarySearchFunc(s, name, func(sm Sample, n string) int {
		switch {
		case sm.Name < n:
			return -1
		case sm.Name > n:
			return 1
		}
		return 0
	})
	if !ok {
		return 0, false
	}
	return s[i].Value, true
}
