// Package integration exercises the sharded caches across packages
// the way an application would: many goroutines, mixed operations,
// every policy, with the capacity and metric contracts checked at the
// end of each run.
package integration

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dreamware/cachekit"
	"github.com/dreamware/cachekit/sharded"
)

// policies enumerates every concurrent constructor under test.
var policies = map[string]func(cachekit.Config) (*sharded.Cache[string, int], error){
	"lru":   sharded.NewLRU[string, int],
	"slru":  sharded.NewSLRU[string, int],
	"lfu":   sharded.NewLFU[string, int],
	"lfuda": sharded.NewLFUDA[string, int],
	"gdsf":  sharded.NewGDSF[string, int],
}

// TestDisjointWritersThenReaders is the canonical sharded-correctness
// scenario: 8 goroutines insert 1000 disjoint keys each, then read
// every key back. The cache is big enough that nothing evicts, so the
// read phase must be a perfect hit streak and the final length must be
// exactly the number of inserts.
func TestDisjointWritersThenReaders(t *testing.T) {
	const (
		workers   = 8
		perWorker = 1000
	)

	c, err := sharded.NewLRU[string, int](cachekit.New(16000,
		cachekit.WithShards(16)))
	if err != nil {
		t.Fatalf("Failed to build cache: %v", err)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				c.Put(fmt.Sprintf("w%d-%d", w, i), w<<20|i, 1)
			}
		}(w)
	}
	wg.Wait()

	if got := c.Len(); got != workers*perWorker {
		t.Fatalf("Expected %d entries after insert phase, got %d", workers*perWorker, got)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("w%d-%d", w, i)
				v, ok := c.Get(key)
				if !ok {
					t.Errorf("Key %s unreadable", key)
					continue
				}
				if v != w<<20|i {
					t.Errorf("Key %s holds %d, expected %d", key, v, w<<20|i)
				}
			}
		}(w)
	}
	wg.Wait()

	snap := c.Metrics()
	hits, _ := snap.Get("hits")
	misses, _ := snap.Get("misses")
	rate, _ := snap.Get("hit_rate")

	if hits != float64(workers*perWorker) {
		t.Errorf("Expected %d hits, got %g", workers*perWorker, hits)
	}
	if misses != 0 {
		t.Errorf("Expected no misses, got %g", misses)
	}
	if rate != 1.0 {
		t.Errorf("Expected hit rate 1.0 for the read phase, got %g", rate)
	}
}

// TestContendedMixedOperations hammers every policy with overlapping
// key ranges from many goroutines. Passing means no panic, no
// deadlock, and capacity bounds intact afterwards.
func TestContendedMixedOperations(t *testing.T) {
	for name, mk := range policies {
		t.Run(name, func(t *testing.T) {
			cfg := cachekit.New(512,
				cachekit.WithShards(8),
				cachekit.WithMaxSize(1<<14),
				cachekit.WithProtectedCapacity(256),
				cachekit.WithInitialAge(1))
			c, err := mk(cfg)
			if err != nil {
				t.Fatalf("Failed to build %s cache: %v", name, err)
			}

			var wg sync.WaitGroup
			for w := 0; w < 8; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < 3000; i++ {
						key := fmt.Sprintf("k%d", (w*31+i)%1500)
						switch i % 5 {
						case 0, 1:
							c.Put(key, i, uint64(1+i%33))
						case 2:
							c.Get(key)
						case 3:
							c.GetWith(key, func(int) {})
						case 4:
							c.Remove(fmt.Sprintf("k%d", (w*31+i+7)%1500))
						}
					}
				}(w)
			}
			wg.Wait()

			if c.Len() > c.Cap() {
				t.Errorf("Entry count %d exceeds capacity %d", c.Len(), c.Cap())
			}
			if c.Size() > uint64(1<<14) {
				t.Errorf("Size %d exceeds the summed shard ceilings", c.Size())
			}

			snap := c.Metrics()
			entries, _ := snap.Get("entries")
			if int(entries) != c.Len() {
				t.Errorf("Metrics entries %g disagrees with Len %d", entries, c.Len())
			}
		})
	}
}

// TestClearUnderLoad interleaves Clear with writers; the cache must
// stay consistent and usable throughout.
func TestClearUnderLoad(t *testing.T) {
	c, err := sharded.NewLFU[int, int](cachekit.New(256, cachekit.WithShards(4)))
	if err != nil {
		t.Fatalf("Failed to build cache: %v", err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				c.Put(w*2000+i, i, 1)
				c.Get(w*2000 + i)
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			c.Clear()
		}
	}()
	wg.Wait()

	if c.Len() > c.Cap() {
		t.Errorf("Entry count %d exceeds capacity %d", c.Len(), c.Cap())
	}

	// Still serviceable after the churn.
	c.Put(-1, 99, 1)
	if v, ok := c.Get(-1); !ok || v != 99 {
		t.Errorf("Cache unusable after churn: got (%d, %v)", v, ok)
	}
}
