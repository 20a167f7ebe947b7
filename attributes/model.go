package attributes

import (
	"maps"
	"slices"

	"github.com/pkg/errors"
)

// Storage is the base attribute storage of a model. Mutators write through it.
type Storage interface {
	// Raw returns the stored value, before any cast.
	Raw(key string) any
	// Value returns the value produced by the base pipeline.
	Value(key string) any
	// Put stores value as is.
	Put(key string, value any)
}

var _ Storage = (*Model)(nil)

// Model is one row of a backing table. The zero value is an untyped, empty
// model ready to use. It is not safe for concurrent mutation.
type Model struct {
	typ   *ModelType
	attrs map[string]any
}

// NewModel returns a model of typ holding a copy of attrs. A nil typ gives a
// model without casts or groups.
func NewModel(typ *ModelType, attrs map[string]any) *Model {
	m := &Model{typ: typ, attrs: make(map[string]any, len(attrs))}
	maps.Copy(m.attrs, attrs)
	return m
}

// Type returns the model type, nil for untyped models.
func (m *Model) Type() *ModelType {
	return m.typ
}

func (m *Model) Raw(key string) any {
	return m.attrs[key]
}

func (m *Model) Value(key string) any {
	raw := m.attrs[key]
	if m.typ == nil {
		return raw
	}
	if cast, ok := m.typ.casts[key]; ok {
		return cast(raw)
	}
	return raw
}

func (m *Model) Put(key string, value any) {
	if m.attrs == nil {
		m.attrs = make(map[string]any)
	}
	m.attrs[key] = value
}

// Has reports whether key is present in the raw storage.
func (m *Model) Has(key string) bool {
	_, ok := m.attrs[key]
	return ok
}

// Get reads key through the group accessors.
func (m *Model) Get(key string) any {
	return m.dispatcher().Get(m, key)
}

// Set writes key through the group mutators, falling back to Put.
func (m *Model) Set(key string, value any) error {
	return m.dispatcher().Set(m, key, value)
}

// Fill sets every attribute in attrs in key order, stopping at the first
// mutator error.
func (m *Model) Fill(attrs map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		if err := m.Set(key, attrs[key]); err != nil {
			return errors.Wrap(err, "fill")
		}
	}
	return nil
}

// Attributes returns a copy of the raw storage.
func (m *Model) Attributes() map[string]any {
	return maps.Clone(m.attrs)
}

// Only returns the raw values of keys that are present.
func (m *Model) Only(keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		if value, ok := m.attrs[key]; ok {
			out[key] = value
		}
	}
	return out
}

func (m *Model) dispatcher() *Dispatcher {
	if m.typ == nil {
		return nil
	}
	return m.typ.dispatcher
}
