package attributes

import (
	"reflect"

	"github.com/go-openapi/inflect"
)

// GroupSpec names a group and its attributes, leaving handlers to BindMethods.
type GroupSpec struct {
	Name       string
	Attributes []string
}

// AccessorMethod returns the accessor method name for group, e.g.
// "user_status" gives "GetUserStatusAccessor".
func AccessorMethod(group string) string {
	return "Get" + inflect.Camelize(group) + "Accessor"
}

// MutatorMethod returns the mutator method name for group, e.g.
// "user_status" gives "SetUserStatusMutator".
func MutatorMethod(group string) string {
	return "Set" + inflect.Camelize(group) + "Mutator"
}

// BindMethods builds groups whose handlers are methods of model named after
// the group: Get<Group>Accessor(any) any and
// Set<Group>Mutator(Storage, string, any) error. Methods are looked up once.
// A group with neither method, or a method with the wrong signature, is a
// configuration mismatch; a group with only one of them is inert in the other
// direction.
func BindMethods(model any, specs ...GroupSpec) ([]Group, error) {
	return bindMethods(model, specs, nil)
}

func bindMethods(model any, specs []GroupSpec, missing func(group, method string)) ([]Group, error) {
	v := reflect.ValueOf(model)
	if !v.IsValid() {
		return nil, mismatch("", "", "cannot bind methods of nil model")
	}
	typeName := v.Type().String()

	groups := make([]Group, 0, len(specs))
	for _, spec := range specs {
		g := Group{Name: spec.Name, Attributes: append([]string(nil), spec.Attributes...)}

		accessorName := AccessorMethod(spec.Name)
		if m := v.MethodByName(accessorName); m.IsValid() {
			fn, ok := m.Interface().(func(any) any)
			if !ok {
				return nil, mismatch(typeName, spec.Name, "%s has signature %s, want func(any) any", accessorName, m.Type())
			}
			g.Accessor = fn
		} else if missing != nil {
			missing(spec.Name, accessorName)
		}

		mutatorName := MutatorMethod(spec.Name)
		if m := v.MethodByName(mutatorName); m.IsValid() {
			fn, ok := m.Interface().(func(Storage, string, any) error)
			if !ok {
				return nil, mismatch(typeName, spec.Name, "%s has signature %s, want func(Storage, string, any) error", mutatorName, m.Type())
			}
			g.Mutator = fn
		} else if missing != nil {
			missing(spec.Name, mutatorName)
		}

		if g.Accessor == nil && g.Mutator == nil {
			return nil, mismatch(typeName, spec.Name, "neither %s nor %s is defined", accessorName, mutatorName)
		}
		groups = append(groups, g)
	}
	return groups, nil
}
