package cachekit

import (
	"math"
	"testing"
)

// TestNewDefaults verifies the option-free configuration.
func TestNewDefaults(t *testing.T) {
	cfg := New(100)

	if cfg.Capacity != 100 {
		t.Errorf("Expected capacity 100, got %d", cfg.Capacity)
	}
	if cfg.MaxSize != math.MaxUint64 {
		t.Errorf("Expected size limit disabled, got %d", cfg.MaxSize)
	}
	if cfg.ProtectedCapacity != 0 {
		t.Errorf("Expected zero protected capacity, got %d", cfg.ProtectedCapacity)
	}
	if cfg.InitialAge != 0 {
		t.Errorf("Expected zero initial age, got %d", cfg.InitialAge)
	}
	if cfg.Shards != 1 {
		t.Errorf("Expected one shard, got %d", cfg.Shards)
	}
}

// TestOptions verifies that each option lands on its field.
func TestOptions(t *testing.T) {
	cfg := New(50,
		WithMaxSize(4096),
		WithProtectedCapacity(10),
		WithInitialAge(7),
		WithShards(6),
	)

	if cfg.MaxSize != 4096 {
		t.Errorf("Expected max size 4096, got %d", cfg.MaxSize)
	}
	if cfg.ProtectedCapacity != 10 {
		t.Errorf("Expected protected capacity 10, got %d", cfg.ProtectedCapacity)
	}
	if cfg.InitialAge != 7 {
		t.Errorf("Expected initial age 7, got %d", cfg.InitialAge)
	}
	if cfg.Shards != 6 {
		t.Errorf("Expected 6 shards, got %d", cfg.Shards)
	}
}

// TestValidate exercises the construction-time rules.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "valid minimal config",
			cfg:     New(1),
			wantErr: nil,
		},
		{
			name:    "zero capacity rejected",
			cfg:     New(0),
			wantErr: ErrZeroCapacity,
		},
		{
			name:    "negative capacity rejected",
			cfg:     Config{Capacity: -5, MaxSize: 100},
			wantErr: ErrZeroCapacity,
		},
		{
			name:    "protected equal to capacity rejected",
			cfg:     New(8, WithProtectedCapacity(8)),
			wantErr: ErrProtectedTooLarge,
		},
		{
			name:    "protected above capacity rejected",
			cfg:     New(8, WithProtectedCapacity(9)),
			wantErr: ErrProtectedTooLarge,
		},
		{
			name:    "protected below capacity accepted",
			cfg:     New(8, WithProtectedCapacity(7)),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestShardCount verifies shard normalization: next power of two,
// at least one, capped at capacity.
func TestShardCount(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		shards   int
		expect   int
	}{
		{name: "default single shard", capacity: 100, shards: 1, expect: 1},
		{name: "zero becomes one", capacity: 100, shards: 0, expect: 1},
		{name: "negative becomes one", capacity: 100, shards: -3, expect: 1},
		{name: "power of two unchanged", capacity: 100, shards: 16, expect: 16},
		{name: "rounded up", capacity: 100, shards: 9, expect: 16},
		{name: "capped at capacity", capacity: 10, shards: 16, expect: 8},
		{name: "tiny capacity", capacity: 1, shards: 8, expect: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New(tt.capacity, WithShards(tt.shards))
			if got := cfg.ShardCount(); got != tt.expect {
				t.Errorf("Expected %d shards, got %d", tt.expect, got)
			}
		})
	}
}
