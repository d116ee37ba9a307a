package automock

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Source tells where the value of a constructor parameter came from.
type Source int

const (
	SourceOverrideByName Source = iota + 1
	SourceOverrideByType
	SourceGeneratedDouble
)

func (s Source) String() string {
	switch s {
	case SourceOverrideByName:
		return "override by name"
	case SourceOverrideByType:
		return "override by type"
	case SourceGeneratedDouble:
		return "generated double"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Resolved is the binding of one constructor parameter. Handle is only set for generated
// doubles.
type Resolved struct {
	Param  Parameter
	Source Source
	Value  reflect.Value
	Handle *Handle
}

// resolve binds every parameter of the descriptor, in declaration order. The first parameter
// that can't be bound stops resolution.
func resolve(desc *Descriptor, overrides *Overrides, factory DoubleFactory, logger *zap.Logger) ([]Resolved, []*Handle, error) {
	resolved := make([]Resolved, 0, len(desc.params))
	var handles []*Handle

	for _, param := range desc.params {
		r, err := resolveParameter(param, overrides, factory)
		if err != nil {
			logger.Debug("parameter resolution failed",
				zap.String("parameter", param.Name),
				zap.Stringer("type", param.Type),
				zap.Error(err))
			return nil, nil, err
		}
		logger.Debug("parameter resolved",
			zap.String("parameter", param.Name),
			zap.Stringer("type", param.Type),
			zap.Stringer("source", r.Source))
		resolved = append(resolved, r)
		if r.Handle != nil {
			handles = append(handles, r.Handle)
		}
	}
	return resolved, handles, nil
}

func resolveParameter(param Parameter, overrides *Overrides, factory DoubleFactory) (Resolved, error) {
	byName, hasName := overrides.lookupName(param.Name)
	byType, hasType := overrides.lookupType(param.Type)

	switch {
	case hasName && hasType:
		return Resolved{}, &ResolutionError{
			Kind:           ErrConflictingOverride,
			Parameter:      param.Name,
			ReferencedType: param.Type,
		}
	case hasName:
		value, err := overrideValue(param, byName)
		return Resolved{Param: param, Source: SourceOverrideByName, Value: value}, err
	case hasType:
		value, err := overrideValue(param, byType)
		return Resolved{Param: param, Source: SourceOverrideByType, Value: value}, err
	case param.IsValueType:
		return Resolved{}, &ResolutionError{
			Kind:           ErrUnsupportedValueTypeParameter,
			Parameter:      param.Name,
			ReferencedType: param.Type,
		}
	}

	handle, err := factory.CreateDouble(param.Type)
	if err == nil && (handle == nil || !handle.instance.IsValid()) {
		err = errors.New("double factory returned no instance")
	}
	if err == nil && (handle.declared != param.Type || !handle.instance.Type().AssignableTo(param.Type)) {
		err = fmt.Errorf("double factory returned %v for %v", handle.instance.Type(), handle.declared)
	}
	if err != nil {
		return Resolved{}, &ResolutionError{
			Kind:           ErrNoDoubleAvailable,
			Parameter:      param.Name,
			ReferencedType: param.Type,
			SourceError:    err,
		}
	}
	return Resolved{
		Param:  param,
		Source: SourceGeneratedDouble,
		Value:  handle.instance,
		Handle: handle,
	}, nil
}

// overrideValue checks the override against the declared parameter type. A nil override
// becomes the zero value of a nillable type.
func overrideValue(param Parameter, value any) (reflect.Value, error) {
	if value == nil {
		if isNillable(param.Type) {
			return reflect.Zero(param.Type), nil
		}
		return reflect.Value{}, &ResolutionError{
			Kind:           ErrOverrideTypeMismatch,
			Parameter:      param.Name,
			ReferencedType: param.Type,
			Message:        "nil override",
		}
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(param.Type) {
		return reflect.Value{}, &ResolutionError{
			Kind:           ErrOverrideTypeMismatch,
			Parameter:      param.Name,
			ReferencedType: param.Type,
			Message:        fmt.Sprintf("got %v", v.Type()),
		}
	}
	return v, nil
}
