// Package cache provides the key-value store contract used to memoize table
// metadata, together with key serialization and store construction.
//
// # Overview
//
// This package exports the following pieces:
//
//   - Store: Has / Get / Put / PutForever / Forget over arbitrary values
//   - KeySerializer: Builds stable keys such as "relation_schema-users"
//   - CodecStore: Adapts a byte oriented backend (Redis, Memcache) to Store using msgpack
//   - Config / NewStore: Builds one of the in-process backends
//
// # Basic Usage
//
//	store, err := cache.NewStore(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	keys := cache.NewDefaultKeySerializer()
//	key := keys.SerializeKey(cache.SchemaKeyPrefix, "users")
//	err = store.PutForever(ctx, key, []string{"email", "id"})
//
// # Backends
//
// BackendSturdyc is bounded by Capacity and evicts EvictionPercentage of its
// entries when full. BackendMap never evicts. Both honor per entry TTLs given
// to Put; entries written with PutForever stay until evicted or forgotten.
//
// # Error Handling
//
// A miss is not an error: Get returns found=false. Failures talking to the
// backend surface as *UnavailableError and match ErrUnavailable with
// errors.Is. They are never swallowed.
package cache
