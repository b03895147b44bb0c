package cachekit

import (
	"github.com/cespare/xxhash/v2"
)

// Hashable is the key constraint for the sharded concurrent caches.
// Single-threaded caches accept any comparable key; the concurrent
// facades additionally need a stable hash to pick a shard, so their
// keys are limited to strings and the integer kinds.
type Hashable interface {
	string | int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64
}

// HashKey returns the shard-dispatch hash for key.
//
// Strings are hashed with xxhash; integer keys are used directly, which
// spreads sequential key ranges evenly across a power-of-two shard
// count without paying for a hash.
func HashKey[K Hashable](key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return xxhash.Sum64String(k)
	case int:
		return uint64(k)
	case int8:
		return uint64(k)
	case int16:
		return uint64(k)
	case int32:
		return uint64(k)
	case int64:
		return uint64(k)
	case uint:
		return uint64(k)
	case uint8:
		return uint64(k)
	case uint16:
		return uint64(k)
	case uint32:
		return uint64(k)
	case uint64:
		return k
	}
	return 0
}
