package cachekit

import (
	"errors"
	"math"
)

// ErrZeroCapacity is returned when a cache is constructed with a zero
// entry capacity. A cache that can hold nothing is always a
// configuration mistake, so construction fails instead of producing an
// instance that rejects every insertion.
var ErrZeroCapacity = errors.New("cachekit: capacity must be non-zero")

// ErrProtectedTooLarge is returned when an SLRU cache is configured with
// a protected segment as large as (or larger than) the whole cache,
// which would leave no room for the probationary segment new entries
// must pass through.
var ErrProtectedTooLarge = errors.New("cachekit: protected capacity must be smaller than capacity")

// Config carries the capacity limits shared by every cache in this
// module, plus the fields that only some policies read.
//
// Fields are plain data; construct values with New and the With*
// options, then pass the Config to a policy constructor. Constructors
// call Validate and surface its error, so a hand-built Config is also
// accepted as long as it validates.
//
// Field applicability:
//
//	Capacity           all policies     maximum live entries
//	MaxSize            all policies     maximum sum of entry sizes
//	ProtectedCapacity  SLRU             protected-segment entry ceiling
//	InitialAge         LFUDA, GDSF      seed for the aging scalar
//	Shards             sharded facades  requested shard count
type Config struct {
	// Capacity is the maximum number of live entries. Must be non-zero.
	Capacity int

	// MaxSize is the maximum sum of entry sizes. Defaults to the
	// saturating maximum, which disables the size limit.
	MaxSize uint64

	// ProtectedCapacity is the entry ceiling of the SLRU protected
	// segment; the probationary segment holds the remainder. Only the
	// SLRU policy reads it, but every constructor validates that it
	// stays below Capacity.
	ProtectedCapacity int

	// InitialAge seeds the LFUDA/GDSF aging scalar. Ignored elsewhere.
	InitialAge uint64

	// Shards is the requested shard count for concurrent facades.
	// Normalized by ShardCount; ignored by single-threaded caches.
	Shards int
}

// New returns a Config with the given entry capacity, the size limit
// disabled, and one shard, then applies the supplied options.
func New(capacity int, opts ...Option) Config {
	cfg := Config{
		Capacity: capacity,
		MaxSize:  math.MaxUint64,
		Shards:   1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate checks the construction-time rules. It is called by every
// cache constructor; hot-path operations never fail.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return ErrZeroCapacity
	}
	if c.ProtectedCapacity >= c.Capacity {
		return ErrProtectedTooLarge
	}
	return nil
}

// ShardCount normalizes the requested shard count: rounded up to the
// next power of two, at least 1, and capped at Capacity (falling back
// to the largest power of two that still fits, so the shard mask stays
// valid).
//
// The returned value is always a power of two, letting the concurrent
// facades dispatch with a mask instead of a modulo.
func (c Config) ShardCount() int {
	n := nextPowOf2(c.Shards)
	for n > c.Capacity && n > 1 {
		n >>= 1
	}
	return n
}

// nextPowOf2 rounds n up to the next power of two, treating anything
// below one as one.
func nextPowOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
