package di

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-model-attributes/attributes"
	"github.com/goliatone/go-model-attributes/cache"
	"github.com/goliatone/go-model-attributes/columncache"
	"github.com/goliatone/go-model-attributes/schema"
)

// Container provides dependency injection for the attribute components.
// It owns one cache store, one model type registry and one column cache,
// so every model type of an application shares the same column listings.
type Container struct {
	store         cache.Store
	keySerializer cache.KeySerializer
	registry      *attributes.Registry
	columns       *columncache.ColumnCache
	metrics       *columncache.Metrics
	config        cache.Config
}

type options struct {
	logger     zerolog.Logger
	registerer prometheus.Registerer
	store      cache.Store
}

// Option configures a Container.
type Option func(*options)

// WithLogger passes logger to the registry, the column cache and the inspector
// built by NewContainerWithDB.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics registers the column cache counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithStore uses store instead of building one from the configuration,
// typically a cache.CodecStore over a shared backend.
func WithStore(store cache.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// NewContainer creates a new DI container with the provided cache configuration.
// The column cache falls back to inspector on misses.
func NewContainer(cfg cache.Config, inspector schema.Inspector, opts ...Option) (*Container, error) {
	if inspector == nil {
		return nil, errors.New("di: inspector is required")
	}

	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	store := o.store
	if store == nil {
		var err error
		if store, err = cache.NewStore(cfg); err != nil {
			return nil, errors.Wrap(err, "di: create cache store")
		}
	}

	keySerializer := cache.NewDefaultKeySerializer()

	c := &Container{
		store:         store,
		keySerializer: keySerializer,
		registry:      attributes.NewRegistry(attributes.WithLogger(o.logger)),
		config:        cfg,
	}

	columnOpts := []columncache.Option{
		columncache.WithLogger(o.logger),
		columncache.WithKeySerializer(keySerializer),
	}
	if o.registerer != nil {
		c.metrics = columncache.NewMetrics(o.registerer)
		columnOpts = append(columnOpts, columncache.WithMetrics(c.metrics))
	}
	c.columns = columncache.New(store, inspector, columnOpts...)

	return c, nil
}

// NewContainerWithDefaults creates a container using the default cache configuration.
func NewContainerWithDefaults(inspector schema.Inspector, opts ...Option) (*Container, error) {
	return NewContainer(cache.DefaultConfig(), inspector, opts...)
}

// NewContainerWithDB creates a container with the default cache configuration
// introspecting db.
func NewContainerWithDB(db *bun.DB, opts ...Option) (*Container, error) {
	if db == nil {
		return nil, errors.New("di: db is required")
	}

	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	inspector := schema.NewBunInspector(db, schema.WithInspectorLogger(o.logger))
	return NewContainerWithDefaults(inspector, opts...)
}

// Store returns the shared cache store.
func (c *Container) Store() cache.Store {
	return c.store
}

// KeySerializer returns the key serializer used by the column cache.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Registry returns the model type registry.
func (c *Container) Registry() *attributes.Registry {
	return c.registry
}

// Columns returns the shared column cache.
func (c *Container) Columns() *columncache.ColumnCache {
	return c.columns
}

// Metrics returns the column cache counters, nil unless WithMetrics was given.
func (c *Container) Metrics() *columncache.Metrics {
	return c.metrics
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// TableColumns binds the column cache to table.
func (c *Container) TableColumns(table columncache.Table) columncache.TableColumns {
	return columncache.For(c.columns, table)
}

// Register registers def with the container's registry.
func (c *Container) Register(def attributes.Definition) (*attributes.ModelType, error) {
	return c.registry.Register(def)
}
