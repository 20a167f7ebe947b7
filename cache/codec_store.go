package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrPrefixUnsupported is returned by CodecStore.ForgetPrefix when the
// backend cannot delete by prefix.
var ErrPrefixUnsupported = errors.New("cache: backend does not support prefix deletion")

// BlobBackend is the byte oriented contract of an external cache such as
// Redis or Memcache.
type BlobBackend interface {
	// Get returns nil, nil if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value. A zero ttl means the value does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// PrefixDeleter is implemented by backends that can drop a key namespace.
type PrefixDeleter interface {
	DeletePrefix(ctx context.Context, prefix string) error
}

// DecodeError reports a stored payload that could not be decoded.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cache: decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// CodecStore adapts a BlobBackend to Store, encoding values with msgpack.
// Decoded sequences come back as []any, callers needing typed values must
// convert them.
type CodecStore struct {
	backend BlobBackend
}

// NewCodecStore wraps backend.
func NewCodecStore(backend BlobBackend) *CodecStore {
	return &CodecStore{backend: backend}
}

func (s *CodecStore) Has(ctx context.Context, key string) (bool, error) {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		return false, NewUnavailableError("has", key, err)
	}
	return data != nil, nil
}

func (s *CodecStore) Get(ctx context.Context, key string) (any, bool, error) {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, false, NewUnavailableError("get", key, err)
	}
	if data == nil {
		return nil, false, nil
	}

	var value any
	if err := msgpack.Unmarshal(data, &value); err != nil {
		return nil, true, &DecodeError{Key: key, Err: err}
	}
	return value, true, nil
}

func (s *CodecStore) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Forget(ctx, key)
	}
	return s.set(ctx, key, value, ttl)
}

func (s *CodecStore) PutForever(ctx context.Context, key string, value any) error {
	return s.set(ctx, key, value, 0)
}

func (s *CodecStore) Forget(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, key); err != nil {
		return NewUnavailableError("forget", key, err)
	}
	return nil
}

func (s *CodecStore) ForgetPrefix(ctx context.Context, prefix string) error {
	deleter, ok := s.backend.(PrefixDeleter)
	if !ok {
		return ErrPrefixUnsupported
	}
	if err := deleter.DeletePrefix(ctx, prefix); err != nil {
		return NewUnavailableError("forget prefix", prefix, err)
	}
	return nil
}

func (s *CodecStore) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, data, ttl); err != nil {
		return NewUnavailableError("put", key, err)
	}
	return nil
}
