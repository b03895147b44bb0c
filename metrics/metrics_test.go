package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectOrdering(t *testing.T) {
	snap := Collect(Counters{Hits: 3, Misses: 1, Insertions: 4, Evictions: 2}, 2, 100)

	// The name set is stable and lexicographically sorted.
	names := make([]string, 0, len(snap))
	for _, s := range snap {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{
		"current_size", "entries", "evictions", "hit_rate",
		"hits", "insertions", "misses",
	}, names)
}

func TestCollectValues(t *testing.T) {
	snap := Collect(Counters{Hits: 3, Misses: 1, Insertions: 4, Evictions: 2}, 2, 100)

	expect := map[string]float64{
		"hits":         3,
		"misses":       1,
		"insertions":   4,
		"evictions":    2,
		"entries":      2,
		"current_size": 100,
		"hit_rate":     0.75,
	}
	for name, want := range expect {
		got, ok := snap.Get(name)
		require.True(t, ok, "missing sample %q", name)
		assert.Equal(t, want, got, "sample %q", name)
	}

	_, ok := snap.Get("no_such_metric")
	assert.False(t, ok)
}

func TestHitRateZeroWhenIdle(t *testing.T) {
	snap := Collect(Counters{}, 0, 0)

	rate, ok := snap.Get("hit_rate")
	require.True(t, ok)
	assert.Zero(t, rate)
}

func TestMerge(t *testing.T) {
	total := Counters{Hits: 1, Misses: 2, Insertions: 3, Evictions: 4}
	total.Merge(Counters{Hits: 10, Misses: 20, Insertions: 30, Evictions: 40})

	assert.Equal(t, Counters{Hits: 11, Misses: 22, Insertions: 33, Evictions: 44}, total)
}
