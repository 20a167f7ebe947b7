package attributes

import (
	"maps"

	"github.com/go-openapi/inflect"
	"github.com/jinzhu/inflection"
)

// DefaultPrimaryKey is used when a Definition leaves PrimaryKey empty.
const DefaultPrimaryKey = "id"

// Cast is the base read pipeline for one attribute: it turns the raw stored
// value into the value callers see.
type Cast func(raw any) any

// Definition declares a model type.
type Definition struct {
	// Name identifies the type, e.g. "User".
	Name string
	// Table defaults to the pluralized snake case of Name ("users").
	Table string
	// PrimaryKey defaults to DefaultPrimaryKey.
	PrimaryKey string
	Casts      map[string]Cast
	// Groups are consulted in declaration order.
	Groups []Group
}

// ModelType is a resolved Definition. It is immutable and safe to share.
type ModelType struct {
	name       string
	table      string
	primaryKey string
	casts      map[string]Cast
	groups     []Group
	dispatcher *Dispatcher
}

// NewModelType validates def and resolves its groups.
func NewModelType(def Definition) (*ModelType, error) {
	if def.Name == "" {
		return nil, mismatch("", "", "model type with empty name")
	}

	table := def.Table
	if table == "" {
		table = inflection.Plural(inflect.Underscore(def.Name))
	}

	primaryKey := def.PrimaryKey
	if primaryKey == "" {
		primaryKey = DefaultPrimaryKey
	}

	dispatcher, err := NewDispatcher(def.Name, def.Groups)
	if err != nil {
		return nil, err
	}

	return &ModelType{
		name:       def.Name,
		table:      table,
		primaryKey: primaryKey,
		casts:      maps.Clone(def.Casts),
		groups:     append([]Group(nil), def.Groups...),
		dispatcher: dispatcher,
	}, nil
}

// MustModelType is like NewModelType but panics on error.
func MustModelType(def Definition) *ModelType {
	mt, err := NewModelType(def)
	if err != nil {
		panic(err)
	}
	return mt
}

func (t *ModelType) Name() string {
	return t.name
}

// TableName returns the backing table name.
func (t *ModelType) TableName() string {
	return t.table
}

// KeyName returns the primary key column name.
func (t *ModelType) KeyName() string {
	return t.primaryKey
}

// Groups returns a copy of the declared groups in declaration order.
func (t *ModelType) Groups() []Group {
	return append([]Group(nil), t.groups...)
}

// Group returns the group declared with name.
func (t *ModelType) Group(name string) (Group, bool) {
	for _, g := range t.groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Cast returns the cast configured for key.
func (t *ModelType) Cast(key string) (Cast, bool) {
	c, ok := t.casts[key]
	return c, ok
}

// Dispatcher returns the resolved group dispatcher.
func (t *ModelType) Dispatcher() *Dispatcher {
	return t.dispatcher
}

// New returns a model of this type hydrated with attrs. Hydration writes the
// raw storage directly, no mutator runs.
func (t *ModelType) New(attrs map[string]any) *Model {
	return NewModel(t, attrs)
}
