package cacheinfra

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc store backend.
type Config struct {
	// Capacity defines the maximum number of entries that the store can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0. Default: 256
	NumShards int

	// TTL is the upper bound for every entry, including the ones written with
	// PutForever. Entries written with Put expire earlier when their own TTL
	// is shorter. Default: ForeverTTL
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the store reaches its capacity. Must be between 1-100.
	// Default: 10 (evict 10% of entries)
	EvictionPercentage int

	// EvictionInterval sets how often sturdyc checks for expired entries.
	// Zero value uses the default interval.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config suited for long lived metadata such as
// table column listings.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		TTL:                ForeverTTL,
		EvictionPercentage: 10,
		EvictionInterval:   0, // Use default
	}
}

// ToSturdycOptions converts the optional parts of Config to sturdyc options.
// Capacity, NumShards, TTL and EvictionPercentage go to sturdyc.New directly.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// Validate checks if the configuration values are valid.
// The returned error is a validation.Errors keyed by field name.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&c.NumShards, validation.Required, validation.Min(1)),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.EvictionInterval, validation.Min(time.Duration(0))),
	)
}

// SturdycStore is a bounded, sharded in-process store backed by sturdyc.
type SturdycStore struct {
	client *sturdyc.Client[entry]
	now    func() time.Time
}

// NewSturdycStore validates cfg and initializes a sturdyc client with it.
//
// Version compatibility note: this implementation assumes sturdyc v1.x API.
func NewSturdycStore(cfg Config, opts ...Option) (*SturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	client := sturdyc.New[entry](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &SturdycStore{client: client, now: o.now}, nil
}

// Has reports whether a live entry exists for key.
func (s *SturdycStore) Has(ctx context.Context, key string) (bool, error) {
	_, found, err := s.Get(ctx, key)
	return found, err
}

// Get returns the value stored under key. Expired entries are removed on read.
func (s *SturdycStore) Get(ctx context.Context, key string) (any, bool, error) {
	e, ok := s.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	if e.expired(s.now()) {
		s.client.Delete(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Put stores value for ttl. A non-positive ttl removes the entry instead.
func (s *SturdycStore) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Forget(ctx, key)
	}
	s.client.Set(key, newEntry(value, ttl, s.now()))
	return nil
}

// PutForever stores value until it is evicted for capacity or forgotten.
func (s *SturdycStore) PutForever(ctx context.Context, key string, value any) error {
	s.client.Set(key, newEntry(value, 0, s.now()))
	return nil
}

// Forget removes a single entry.
func (s *SturdycStore) Forget(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// ForgetPrefix removes every entry whose key starts with prefix.
func (s *SturdycStore) ForgetPrefix(ctx context.Context, prefix string) error {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
	return nil
}

// Size returns the number of entries held by the client, expired ones included.
func (s *SturdycStore) Size() int {
	return s.client.Size()
}
