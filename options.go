package cachekit

// Option is a functional configuration modifier applied by New. Options
// keep the constructor signature stable as configuration grows: new
// knobs become new options instead of new parameters.
type Option func(*Config)

// WithMaxSize sets the ceiling on the sum of entry sizes. Without this
// option the size limit is disabled.
func WithMaxSize(max uint64) Option {
	return func(c *Config) {
		c.MaxSize = max
	}
}

// WithProtectedCapacity sets the SLRU protected-segment ceiling. Only
// the SLRU policy reads it.
func WithProtectedCapacity(n int) Option {
	return func(c *Config) {
		c.ProtectedCapacity = n
	}
}

// WithInitialAge seeds the LFUDA/GDSF aging scalar. Only those two
// policies read it.
func WithInitialAge(age uint64) Option {
	return func(c *Config) {
		c.InitialAge = age
	}
}

// WithShards sets the requested shard count for concurrent facades.
// The effective count is normalized by Config.ShardCount.
func WithShards(n int) Option {
	return func(c *Config) {
		c.Shards = n
	}
}
