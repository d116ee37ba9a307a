package automock

import (
	"fmt"
	"reflect"
)

// DoubleFactory is the boundary to the mocking engine. The container only ever asks it for a
// double of a declared type and, later, to verify that double.
type DoubleFactory interface {
	CreateDouble(t reflect.Type) (*Handle, error)
	Verify(h *Handle) error
}

// Handle is a generated double. It remembers the declared type it stands in for, the object
// a test uses to set up expectations (the control) and the value handed to the constructor
// (the instance). For most mocks those are the same object.
type Handle struct {
	declared reflect.Type
	control  any
	instance reflect.Value
}

// NewHandle creates a handle. instance must be assignable to declared.
func NewHandle(declared reflect.Type, control any, instance any) *Handle {
	return &Handle{
		declared: declared,
		control:  control,
		instance: reflect.ValueOf(instance),
	}
}

// Type is the declared parameter type this double was generated for.
func (h *Handle) Type() reflect.Type {
	return h.declared
}

// Control returns the engine object used to configure and verify the double.
func (h *Handle) Control() any {
	return h.control
}

// Instance returns the value injected into the constructor.
func (h *Handle) Instance() any {
	if !h.instance.IsValid() {
		return nil
	}
	return h.instance.Interface()
}

// Factory is the default DoubleFactory. Interface doubles come from constructors registered
// with Register, usually testify mocks. Function types get a FuncDouble generated on the fly.
type Factory struct {
	doubles map[reflect.Type]func() any
}

// NewDoubleFactory returns a factory with no registered interface doubles.
func NewDoubleFactory() *Factory {
	return &Factory{doubles: map[reflect.Type]func() any{}}
}

// Register sets the constructor used for doubles of type t. A later registration for the same
// type replaces the earlier one.
func (f *Factory) Register(t reflect.Type, create func() any) {
	f.doubles[t] = create
}

// CreateDouble returns a fresh double for t.
func (f *Factory) CreateDouble(t reflect.Type) (*Handle, error) {
	if create, found := f.doubles[t]; found {
		double := create()
		if double == nil {
			return nil, fmt.Errorf("double constructor for %v returned nil", t)
		}
		if !reflect.TypeOf(double).AssignableTo(t) {
			return nil, fmt.Errorf("double %T does not implement %v", double, t)
		}
		return NewHandle(t, double, double), nil
	}

	if t.Kind() == reflect.Func {
		fd := newFuncDouble(t)
		return &Handle{declared: t, control: fd, instance: fd.fn}, nil
	}

	return nil, fmt.Errorf("no double registered for %v, register one with WithDouble[%v]", t, t)
}

// Verify checks the expectations recorded on the double.
func (f *Factory) Verify(h *Handle) error {
	return verifyDouble(h)
}
