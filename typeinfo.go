package automock

import (
	"reflect"
	"strings"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// TypeOf returns the reflect.Type of T. Unlike reflect.TypeOf this works for interface
// types as well.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// isValueType reports whether values of t have to be supplied by the caller. Only interfaces
// and function types can be stood in for by a generated double.
func isValueType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Func:
		return false
	default:
		return true
	}
}

// isNillable reports whether a nil override can be turned into the zero value of t.
func isNillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// formatSignature renders a function type as "(a, b) c". This is used instead of the native
// `%v` formatter so diagnostics stay readable for long package paths.
func formatSignature(fnType reflect.Type) string {
	builder := strings.Builder{}
	builder.WriteString("(")
	for i := 0; i < fnType.NumIn(); i++ {
		if i > 0 {
			builder.WriteString(", ")
		}
		if fnType.IsVariadic() && i == fnType.NumIn()-1 {
			builder.WriteString("...")
			builder.WriteString(fnType.In(i).Elem().String())
			continue
		}
		builder.WriteString(fnType.In(i).String())
	}
	builder.WriteString(") ")
	for i := 0; i < fnType.NumOut(); i++ {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(fnType.Out(i).String())
	}
	return builder.String()
}
