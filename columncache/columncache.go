package columncache

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-model-attributes/cache"
	"github.com/goliatone/go-model-attributes/schema"
)

// Table identifies a backing table and its primary key column.
// *attributes.ModelType and schema.Table both satisfy it.
type Table interface {
	TableName() string
	KeyName() string
}

// ColumnCache serves the sorted column names of tables, introspecting each
// table once and keeping the result in a cache store.
type ColumnCache struct {
	store     cache.Store
	inspector schema.Inspector
	keys      cache.KeySerializer
	logger    zerolog.Logger
	metrics   *Metrics
}

// Option configures a ColumnCache.
type Option func(*ColumnCache)

// WithLogger sets the logger used for cache misses and invalidations.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *ColumnCache) {
		c.logger = logger
	}
}

// WithMetrics enables the Prometheus counters.
func WithMetrics(metrics *Metrics) Option {
	return func(c *ColumnCache) {
		c.metrics = metrics
	}
}

// WithKeySerializer overrides the serializer used to build entry keys.
func WithKeySerializer(keys cache.KeySerializer) Option {
	return func(c *ColumnCache) {
		if keys != nil {
			c.keys = keys
		}
	}
}

// New returns a ColumnCache reading from store and falling back to inspector.
func New(store cache.Store, inspector schema.Inspector, opts ...Option) *ColumnCache {
	c := &ColumnCache{
		store:     store,
		inspector: inspector,
		keys:      cache.NewDefaultKeySerializer(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the store key of table's listing.
func (c *ColumnCache) Key(table Table) string {
	return c.keys.SerializeKey(cache.SchemaKeyPrefix, table.TableName())
}

// Columns returns the column names of table sorted ascending. The primary
// key is left out unless withPK is set. The returned slice belongs to the
// caller. An inspector listing no columns means the table does not exist.
func (c *ColumnCache) Columns(ctx context.Context, table Table, withPK bool) ([]string, error) {
	columns, err := c.load(ctx, table)
	if err != nil {
		return nil, err
	}
	if withPK {
		return columns, nil
	}

	pk := table.KeyName()
	return slices.DeleteFunc(columns, func(column string) bool {
		return column == pk
	}), nil
}

// Invalidate drops the cached listing of table. The next Columns call
// introspects again.
func (c *ColumnCache) Invalidate(ctx context.Context, table Table) error {
	key := c.Key(table)
	if err := c.store.Forget(ctx, key); err != nil {
		return cache.NewUnavailableError("forget", key, err)
	}

	c.metrics.invalidated(table.TableName())
	c.logger.Debug().Str("table", table.TableName()).Str("key", key).Msg("column listing invalidated")
	return nil
}

// Cached reports whether a listing for table is in the store.
func (c *ColumnCache) Cached(ctx context.Context, table Table) (bool, error) {
	key := c.Key(table)
	ok, err := c.store.Has(ctx, key)
	if err != nil {
		return false, cache.NewUnavailableError("has", key, err)
	}
	return ok, nil
}

// Flush drops every cached listing. The store must implement
// cache.PrefixForgetter; a store that cannot forget by prefix reports
// cache.ErrPrefixUnsupported, which is returned as is.
func (c *ColumnCache) Flush(ctx context.Context) error {
	forgetter, ok := c.store.(cache.PrefixForgetter)
	if !ok {
		return fmt.Errorf("columncache: flush: %T cannot forget by prefix", c.store)
	}

	prefix := c.keys.Prefix(cache.SchemaKeyPrefix)
	if err := forgetter.ForgetPrefix(ctx, prefix); err != nil {
		if errors.Is(err, cache.ErrPrefixUnsupported) {
			return err
		}
		return cache.NewUnavailableError("forget prefix", prefix, err)
	}

	c.logger.Debug().Str("prefix", prefix).Msg("column listings flushed")
	return nil
}

// Fillable returns the entries of attrs whose key is a column of table.
func (c *ColumnCache) Fillable(ctx context.Context, table Table, attrs map[string]any, withPK bool) (map[string]any, error) {
	columns, err := c.Columns(ctx, table, withPK)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(attrs))
	for _, column := range columns {
		if value, ok := attrs[column]; ok {
			out[column] = value
		}
	}
	return out, nil
}

// load returns a copy of the full listing, populating the store on a miss.
func (c *ColumnCache) load(ctx context.Context, table Table) ([]string, error) {
	name := table.TableName()
	key := c.Key(table)

	value, found, err := c.store.Get(ctx, key)
	if err != nil {
		var decodeErr *cache.DecodeError
		if errors.As(err, &decodeErr) {
			return nil, &CorruptionError{Key: key, Table: name, Type: "undecodable payload", Err: err}
		}
		return nil, cache.NewUnavailableError("get", key, err)
	}

	if found {
		columns, ok := toColumns(value)
		if !ok {
			return nil, &CorruptionError{Key: key, Table: name, Type: fmt.Sprintf("%T", value)}
		}
		c.metrics.hit(name)
		return columns, nil
	}

	c.metrics.miss(name)
	c.logger.Debug().Str("table", name).Str("key", key).Msg("column listing not cached, introspecting")

	listed, err := c.inspector.ListColumns(ctx, name)
	if err != nil {
		return nil, schema.NewLookupError(name, err)
	}
	// nothing is cached for a table without columns
	if len(listed) == 0 {
		return nil, schema.NewLookupError(name, schema.ErrTableNotFound)
	}
	columns := slices.Sorted(slices.Values(listed))

	if err := c.store.PutForever(ctx, key, columns); err != nil {
		return nil, cache.NewUnavailableError("put", key, err)
	}
	return slices.Clone(columns), nil
}

// toColumns copies a cached listing. Decoding stores hand sequences back as
// []any, so both shapes are accepted as long as every element is a string.
func toColumns(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return slices.Clone(v), true
	case []any:
		columns := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			columns = append(columns, s)
		}
		return columns, true
	default:
		return nil, false
	}
}
