package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() simConfig {
	return simConfig{
		policy:       "lru",
		capacity:     256,
		maxSize:      1 << 20,
		protected:    0,
		shards:       4,
		keys:         1000,
		ops:          8000,
		workers:      4,
		readRatio:    0.5,
		zipfS:        1.2,
		maxEntrySize: 16,
		seed:         42,
	}
}

// TestCacheForPolicies verifies every policy name builds and unknown
// names fail.
func TestCacheForPolicies(t *testing.T) {
	for _, policy := range []string{"lru", "slru", "lfu", "lfuda", "gdsf"} {
		t.Run(policy, func(t *testing.T) {
			cfg := testConfig()
			cfg.policy = policy
			if policy == "slru" {
				cfg.protected = 64
			}
			c, err := cacheFor(cfg)
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}

	cfg := testConfig()
	cfg.policy = "fifo"
	_, err := cacheFor(cfg)
	assert.Error(t, err)
}

// TestRunWorkload verifies the stream completes and the snapshot adds
// up: every read lands as a hit or a miss.
func TestRunWorkload(t *testing.T) {
	cfg := testConfig()
	c, err := cacheFor(cfg)
	require.NoError(t, err)

	snap := runWorkload(c, cfg)

	hits, _ := snap.Get("hits")
	misses, _ := snap.Get("misses")
	insertions, _ := snap.Get("insertions")
	entries, _ := snap.Get("entries")

	assert.Positive(t, hits+misses, "reads must be accounted")
	assert.Positive(t, insertions)
	assert.LessOrEqual(t, int(entries), c.Cap())
	assert.LessOrEqual(t, hits+misses+insertions, float64(cfg.ops))
}

// TestRootCommandFlagValidation exercises the argument checks.
func TestRootCommandFlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "zipf skew too small", args: []string{"--zipf-s", "0.9", "--ops", "10"}},
		{name: "zero workers", args: []string{"--workers", "0", "--ops", "10"}},
		{name: "tiny key space", args: []string{"--keys", "1", "--ops", "10"}},
		{name: "unknown policy", args: []string{"--policy", "arc", "--ops", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tt.args)
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			assert.Error(t, cmd.Execute())
		})
	}
}
