package cacheinfra

import (
	"context"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// MapStore is an unbounded in-process store. Nothing is ever evicted for
// capacity, entries leave only through expiry or Forget.
type MapStore struct {
	entries *xsync.MapOf[string, entry]
	now     func() time.Time
}

// NewMapStore returns an empty MapStore.
func NewMapStore(opts ...Option) *MapStore {
	o := buildOptions(opts)
	return &MapStore{
		entries: xsync.NewMapOf[string, entry](),
		now:     o.now,
	}
}

func (s *MapStore) Has(ctx context.Context, key string) (bool, error) {
	_, found, err := s.Get(ctx, key)
	return found, err
}

func (s *MapStore) Get(ctx context.Context, key string) (any, bool, error) {
	e, ok := s.entries.Load(key)
	if !ok {
		return nil, false, nil
	}
	if e.expired(s.now()) {
		s.entries.Delete(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Put stores value for ttl. A non-positive ttl removes the entry instead.
func (s *MapStore) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Forget(ctx, key)
	}
	s.entries.Store(key, newEntry(value, ttl, s.now()))
	return nil
}

func (s *MapStore) PutForever(ctx context.Context, key string, value any) error {
	s.entries.Store(key, newEntry(value, 0, s.now()))
	return nil
}

func (s *MapStore) Forget(ctx context.Context, key string) error {
	s.entries.Delete(key)
	return nil
}

func (s *MapStore) ForgetPrefix(ctx context.Context, prefix string) error {
	s.entries.Range(func(key string, _ entry) bool {
		if strings.HasPrefix(key, prefix) {
			s.entries.Delete(key)
		}
		return true
	})
	return nil
}

// Size returns the number of entries, expired ones included.
func (s *MapStore) Size() int {
	return s.entries.Size()
}
