package automock

import (
	"reflect"

	"golang.org/x/text/cases"
)

// Overrides holds the caller-supplied values for constructor parameters. Values are keyed
// either by the declared parameter type or by the parameter name. The two key spaces are kept
// apart so a parameter matching both can be detected.
//
// Registering the same key twice is an error rather than a replacement.
type Overrides struct {
	byType map[reflect.Type]any
	byName map[string]any
}

// NewOverrides returns an empty registry.
func NewOverrides() *Overrides {
	return &Overrides{
		byType: map[reflect.Type]any{},
		byName: map[string]any{},
	}
}

// NormalizeName folds the case of a parameter name so that "intVal", "IntVal" and "INTVAL"
// are the same key.
func NormalizeName(name string) string {
	return cases.Fold().String(name)
}

// ByType registers value for every parameter declared with type t.
func (o *Overrides) ByType(t reflect.Type, value any) error {
	if t == nil {
		return &ResolutionError{
			Kind:    ErrOverrideTypeMismatch,
			Message: "override type is nil",
		}
	}
	if _, found := o.byType[t]; found {
		return &ResolutionError{
			Kind:           ErrDuplicateTypeOverride,
			ReferencedType: t,
		}
	}
	o.byType[t] = value
	return nil
}

// ByName registers value for the parameter with the given name, compared case-insensitively.
func (o *Overrides) ByName(name string, value any) error {
	key := NormalizeName(name)
	if _, found := o.byName[key]; found {
		return &ResolutionError{
			Kind:      ErrDuplicateNameOverride,
			Parameter: name,
		}
	}
	o.byName[key] = value
	return nil
}

func (o *Overrides) lookupType(t reflect.Type) (any, bool) {
	value, found := o.byType[t]
	return value, found
}

func (o *Overrides) lookupName(name string) (any, bool) {
	value, found := o.byName[NormalizeName(name)]
	return value, found
}

// Len is the number of registered overrides of both kinds.
func (o *Overrides) Len() int {
	return len(o.byType) + len(o.byName)
}

// Clone copies the registry. Registrations on the copy are not seen by the original and the
// other way around. The override values themselves are shared.
func (o *Overrides) Clone() *Overrides {
	clone := NewOverrides()
	for k, v := range o.byType {
		clone.byType[k] = v
	}
	for k, v := range o.byName {
		clone.byName[k] = v
	}
	return clone
}
