package attributes

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
)

// Registry holds the model types of an application, resolved once at startup.
type Registry struct {
	types  *xsync.MapOf[string, *ModelType]
	logger zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report registrations and half bound groups.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		types:  xsync.NewMapOf[string, *ModelType](),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register resolves def and stores it under def.Name. Registering a name twice
// is a configuration mismatch.
func (r *Registry) Register(def Definition) (*ModelType, error) {
	mt, err := NewModelType(def)
	if err != nil {
		return nil, err
	}

	if _, loaded := r.types.LoadOrStore(mt.name, mt); loaded {
		return nil, mismatch(mt.name, "", "model type registered twice")
	}

	r.logger.Debug().
		Str("model", mt.name).
		Str("table", mt.table).
		Int("groups", len(mt.groups)).
		Msg("registered model type")

	return mt, nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(def Definition) *ModelType {
	mt, err := r.Register(def)
	if err != nil {
		panic(err)
	}
	return mt
}

// Lookup returns the model type registered under name.
func (r *Registry) Lookup(name string) (*ModelType, bool) {
	return r.types.Load(name)
}

// New returns a model of the type registered under name, hydrated with attrs.
func (r *Registry) New(name string, attrs map[string]any) (*Model, error) {
	mt, ok := r.types.Load(name)
	if !ok {
		return nil, errors.Wrap(ErrUnknownModelType, name)
	}
	return mt.New(attrs), nil
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.types.Size())
	r.types.Range(func(name string, _ *ModelType) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// BindMethods works like the package level BindMethods and logs a warning
// for every handler method it could not find.
func (r *Registry) BindMethods(model any, specs ...GroupSpec) ([]Group, error) {
	return bindMethods(model, specs, func(group, method string) {
		r.logger.Warn().
			Str("group", group).
			Str("method", method).
			Msg("group handler not found, group is inert in that direction")
	})
}
