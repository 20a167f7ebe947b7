package cacheinfra

import "time"

// ForeverTTL is the lifetime given to entries that should outlive the process.
// sturdyc requires a finite TTL, a century is as close as it gets.
const ForeverTTL = 100 * 365 * 24 * time.Hour

// entry wraps a stored value with its own expiration so a single backend can
// hold both bounded and unbounded entries.
type entry struct {
	value     any
	expiresAt time.Time // zero means the entry never expires
}

func newEntry(value any, ttl time.Duration, now time.Time) entry {
	if ttl <= 0 {
		return entry{value: value}
	}
	return entry{value: value, expiresAt: now.Add(ttl)}
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Option customizes a store backend.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used to expire entries written with Put.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
