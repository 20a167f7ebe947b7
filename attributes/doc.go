// Package attributes adds grouped accessors and mutators to model types.
//
// A model type declares named groups of attributes. Reading an attribute of a
// group runs the group accessor on the raw value; writing it hands the value
// to the group mutator instead of the default storage.
//
//	users := registry.MustRegister(attributes.Definition{
//		Name: "User",
//		Groups: []attributes.Group{{
//			Name:       "status",
//			Attributes: []string{"state"},
//			Mutator: func(s attributes.Storage, key string, value any) error {
//				s.Put(key, strings.ToUpper(value.(string)))
//				return nil
//			},
//		}},
//	})
//
//	user := users.New(nil)
//	_ = user.Set("state", "active") // stored as "ACTIVE"
//
// # Dispatch rules
//
// Handlers are resolved per attribute when the type is built. For a given
// attribute and direction the first declared group with a handler wins, for
// reads and writes alike. An accessor only runs when the base value (the raw
// value passed through its Cast, if any) is still equal to the raw value, so
// casts take precedence over group accessors.
//
// # Configuration errors
//
// Declarations that cannot work (a group without attributes, without any
// handler, duplicated names) fail with *ConfigurationMismatchError when the
// type is built. A group with a single handler is inert in the other
// direction. BindMethods resolves handlers from methods named
// Get<Group>Accessor and Set<Group>Mutator, with <Group> the camelized group
// name.
package attributes
