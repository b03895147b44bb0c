package gdsf

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/cachekit"
)

func newCache(t *testing.T, capacity int, opts ...cachekit.Option) *Cache[string, int] {
	t.Helper()
	c, err := New[string, int](cachekit.New(capacity, opts...))
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New[string, int](cachekit.New(0))
	assert.ErrorIs(t, err, cachekit.ErrZeroCapacity)
}

func TestPriorityFormula(t *testing.T) {
	c := newCache(t, 8, cachekit.WithInitialAge(7))

	c.Put("a", 1, 10)
	p, ok := c.Priority("a")
	require.True(t, ok)
	assert.Equal(t, uint64(7+1*1000/10), p)

	c.Get("a")
	p, _ = c.Priority("a")
	assert.Equal(t, uint64(7+2*1000/10), p)
}

func TestSmallerEntryOutranksLarger(t *testing.T) {
	// Equal frequency, different size: the large entry is the victim
	// when the size limit forces an eviction.
	c := newCache(t, 3, cachekit.WithMaxSize(100), cachekit.WithInitialAge(0))

	c.Put("small", 1, 10)
	c.Put("large", 2, 80)
	c.Get("small") // prio 2000/10 = 200
	c.Get("large") // prio 2*1000/80 = 25

	c.Put("medium", 3, 30)

	assert.True(t, c.Contains("small"))
	assert.False(t, c.Contains("large"))
	assert.True(t, c.Contains("medium"))
	assert.LessOrEqual(t, c.Size(), uint64(100))

	// Age took the victim's priority.
	assert.Equal(t, uint64(25), c.Age())
}

func TestReplacementRecomputesWithNewSize(t *testing.T) {
	c := newCache(t, 4)
	c.Put("a", 1, 100)
	p, _ := c.Priority("a")
	require.Equal(t, uint64(10), p) // 1000/100

	// Shrinking the entry on replacement must re-rank it: freq 2 at
	// size 10 is 200, not 2000/100.
	old, replaced := c.Put("a", 2, 10)
	require.True(t, replaced)
	assert.Equal(t, 1, old)

	p, _ = c.Priority("a")
	assert.Equal(t, uint64(200), p)
	assert.Equal(t, uint64(10), c.Size())
}

func TestZeroSizePinned(t *testing.T) {
	c := newCache(t, 3, cachekit.WithMaxSize(50))

	c.Put("pin", 1, 0)
	p, _ := c.Priority("pin")
	assert.Equal(t, uint64(math.MaxUint64), p)
	assert.Zero(t, c.Size(), "pinned entries do not count against max size")
	assert.Equal(t, 1, c.Len(), "pinned entries count against capacity")

	// Size pressure churns the sized entries around the pin.
	c.Put("a", 2, 30)
	c.Put("b", 3, 30)
	c.Put("c", 4, 30)

	assert.True(t, c.Contains("pin"))
	assert.LessOrEqual(t, c.Size(), uint64(50))

	// The age never takes the pinned priority.
	assert.Less(t, c.Age(), uint64(math.MaxUint64))

	// Explicit removal still works.
	v, ok := c.Remove("pin")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestEntryPressureReclaimsPinnedLast(t *testing.T) {
	c := newCache(t, 2)

	c.Put("pin", 1, 0)
	c.Put("a", 2, 5)
	c.Put("b", 3, 5) // evicts "a" (only sized entry at the floor)

	assert.True(t, c.Contains("pin"))
	assert.False(t, c.Contains("a"))
	assert.True(t, c.Contains("b"))
}

func TestOversizePutRejectedWithoutMutation(t *testing.T) {
	c := newCache(t, 4, cachekit.WithMaxSize(50))
	c.Put("a", 1, 10)

	_, replaced := c.Put("big", 2, 51)
	assert.False(t, replaced)
	assert.True(t, c.Contains("a"))
	assert.Equal(t, uint64(10), c.Size())
	assert.Zero(t, c.Age())
}

func TestAgeMonotonic(t *testing.T) {
	c := newCache(t, 2, cachekit.WithMaxSize(40))

	last := c.Age()
	for i := 0; i < 60; i++ {
		c.Put(fmt.Sprintf("k%d", i), i, uint64(1+i%17))
		if i%2 == 0 {
			c.Get(fmt.Sprintf("k%d", i))
		}
		require.GreaterOrEqual(t, c.Age(), last, "age went backwards")
		last = c.Age()
	}
}

func TestClearPreservesCountersAndAge(t *testing.T) {
	c := newCache(t, 2)
	c.Put("a", 1, 10)
	c.Put("b", 2, 10)
	c.Put("c", 3, 10)
	age := c.Age()
	require.NotZero(t, age)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, age, c.Age())
	evictions, _ := c.Metrics().Get("evictions")
	assert.Equal(t, 1.0, evictions)
}

// checkInvariants asserts the priority-bucket bookkeeping identities.
func checkInvariants(t *testing.T, c *Cache[string, int]) {
	t.Helper()
	total := 0
	var sum uint64
	require.Equal(t, len(c.buckets), len(c.prios))
	for i, p := range c.prios {
		if i > 0 {
			require.Greater(t, p, c.prios[i-1], "priority slice unsorted")
		}
		b, ok := c.buckets[p]
		require.True(t, ok)
		require.NotZero(t, b.Len(), "empty bucket left in map")
		total += b.Len()
		for n := b.Front(); n != nil; n = n.Next() {
			require.Equal(t, p, n.Value.prio, "entry in wrong bucket")
			sum += n.Value.size
		}
	}
	require.Equal(t, len(c.index), total)
	require.Equal(t, sum, c.sizeSum)
	require.LessOrEqual(t, c.Len(), c.Cap())
	require.LessOrEqual(t, c.sizeSum, c.cfg.MaxSize)
}

func TestInvariantsUnderMixedWorkload(t *testing.T) {
	c := newCache(t, 6, cachekit.WithMaxSize(60))

	keys := make([]string, 9)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}
	for i := 0; i < 300; i++ {
		k := keys[i%len(keys)]
		switch i % 5 {
		case 0, 1:
			c.Put(k, i, uint64(i%9)) // exercises zero sizes too
		case 2, 3:
			c.Get(keys[(i*7)%len(keys)])
		case 4:
			c.Remove(keys[(i*5)%len(keys)])
		}
		checkInvariants(t, c)
	}
}
