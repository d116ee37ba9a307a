package automock

import (
	"fmt"
	"reflect"

	"github.com/stretchr/testify/mock"
)

// FuncDouble is a double generated for a function-typed dependency such as
//
//	type Clock func() time.Time
//
// The function handed to the constructor is built with reflect.MakeFunc. As long as no
// expectation is configured every call is recorded and returns zero values. Once Expect has
// been used, calls go through testify's mock.Mock and unmet expectations fail verification.
type FuncDouble struct {
	mock.Mock
	fnType      reflect.Type
	name        string
	fn          reflect.Value
	invocations [][]any
}

func newFuncDouble(fnType reflect.Type) *FuncDouble {
	d := &FuncDouble{
		fnType: fnType,
		name:   fnType.Name(),
	}
	if d.name == "" {
		d.name = "func"
	}
	d.fn = reflect.MakeFunc(fnType, d.invoke)
	return d
}

// Name is the method name used for the underlying mock expectations: the name of the
// function type, or "func" for unnamed function types.
func (d *FuncDouble) Name() string {
	return d.name
}

// Expect registers an expected call with the given arguments.
func (d *FuncDouble) Expect(args ...any) *mock.Call {
	return d.On(d.name, args...)
}

// Invocations returns the arguments of every call made so far, configured or not.
func (d *FuncDouble) Invocations() [][]any {
	return d.invocations
}

// CallCount is the number of calls made so far.
func (d *FuncDouble) CallCount() int {
	return len(d.invocations)
}

func (d *FuncDouble) invoke(in []reflect.Value) []reflect.Value {
	args := make([]any, len(in))
	for i, v := range in {
		args[i] = v.Interface()
	}
	d.invocations = append(d.invocations, args)

	if len(d.ExpectedCalls) == 0 {
		return d.zeroResults()
	}

	ret := d.MethodCalled(d.name, args...)
	out := make([]reflect.Value, d.fnType.NumOut())
	for i := range out {
		outType := d.fnType.Out(i)
		slot := reflect.New(outType).Elem()
		if i < len(ret) && ret.Get(i) != nil {
			value := reflect.ValueOf(ret.Get(i))
			switch {
			case value.Type().AssignableTo(outType):
				slot.Set(value)
			case value.Type().ConvertibleTo(outType):
				slot.Set(value.Convert(outType))
			default:
				panic(fmt.Sprintf("automock: return value %d of %s is %T, want %v", i, d.name, ret.Get(i), outType))
			}
		}
		out[i] = slot
	}
	return out
}

func (d *FuncDouble) zeroResults() []reflect.Value {
	out := make([]reflect.Value, d.fnType.NumOut())
	for i := range out {
		out[i] = reflect.Zero(d.fnType.Out(i))
	}
	return out
}
