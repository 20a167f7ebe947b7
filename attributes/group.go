package attributes

import (
	"reflect"
	"slices"

	"github.com/pkg/errors"
)

// Accessor transforms an attribute value on read.
type Accessor func(value any) any

// Mutator handles a write for the attributes of its group, in place of the
// default storage. It receives the model storage to write through.
type Mutator func(storage Storage, key string, value any) error

// Group is a named set of attributes sharing one read transform and one
// write handler. Either handler may be nil, which leaves the group inert in
// that direction.
type Group struct {
	Name       string
	Attributes []string
	Accessor   Accessor
	Mutator    Mutator
}

// Has reports whether key belongs to the group.
func (g Group) Has(key string) bool {
	return slices.Contains(g.Attributes, key)
}

type binding[F any] struct {
	group string
	fn    F
}

// Dispatcher routes attribute reads and writes through group handlers.
// Handlers are resolved per attribute when the dispatcher is built: for each
// attribute the first declared group with a handler for that direction wins.
type Dispatcher struct {
	accessors map[string]binding[Accessor]
	mutators  map[string]binding[Mutator]
}

// NewDispatcher validates groups and resolves their handlers. model names the
// owning type in errors.
func NewDispatcher(model string, groups []Group) (*Dispatcher, error) {
	d := &Dispatcher{
		accessors: make(map[string]binding[Accessor]),
		mutators:  make(map[string]binding[Mutator]),
	}

	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if g.Name == "" {
			return nil, mismatch(model, "", "group with empty name")
		}
		if _, dup := seen[g.Name]; dup {
			return nil, mismatch(model, g.Name, "group declared twice")
		}
		seen[g.Name] = struct{}{}

		if len(g.Attributes) == 0 {
			return nil, mismatch(model, g.Name, "group has no attributes")
		}
		if g.Accessor == nil && g.Mutator == nil {
			return nil, mismatch(model, g.Name, "group has neither accessor nor mutator")
		}

		for _, key := range g.Attributes {
			if key == "" {
				return nil, mismatch(model, g.Name, "empty attribute name")
			}
			if _, taken := d.accessors[key]; !taken && g.Accessor != nil {
				d.accessors[key] = binding[Accessor]{group: g.Name, fn: g.Accessor}
			}
			if _, taken := d.mutators[key]; !taken && g.Mutator != nil {
				d.mutators[key] = binding[Mutator]{group: g.Name, fn: g.Mutator}
			}
		}
	}

	return d, nil
}

// Get returns the value of key as seen through the groups. The accessor only
// runs when the base value is still the raw stored value, so attributes the
// base pipeline already transformed are returned untouched.
func (d *Dispatcher) Get(storage Storage, key string) any {
	value := storage.Value(key)
	if d == nil {
		return value
	}

	b, ok := d.accessors[key]
	if !ok {
		return value
	}
	if !reflect.DeepEqual(value, storage.Raw(key)) {
		return value
	}
	return b.fn(value)
}

// Set writes value for key. When a group mutator covers key it handles the
// write and the default storage is skipped entirely.
func (d *Dispatcher) Set(storage Storage, key string, value any) error {
	if d != nil {
		if b, ok := d.mutators[key]; ok {
			if err := b.fn(storage, key, value); err != nil {
				return errors.Wrapf(err, "attributes: %s mutator for %q", b.group, key)
			}
			return nil
		}
	}

	storage.Put(key, value)
	return nil
}

// AccessorGroup returns the group whose accessor handles key.
func (d *Dispatcher) AccessorGroup(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	b, ok := d.accessors[key]
	return b.group, ok
}

// MutatorGroup returns the group whose mutator handles key.
func (d *Dispatcher) MutatorGroup(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	b, ok := d.mutators[key]
	return b.group, ok
}
