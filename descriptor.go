package automock

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parameter is a single constructor parameter. Index is its position in the constructor's
// parameter list.
type Parameter struct {
	Index       int
	Name        string
	Type        reflect.Type
	IsValueType bool
}

// Descriptor is the one public constructor of a service type together with its parameters
// in declaration order.
type Descriptor struct {
	Target   reflect.Type
	name     string
	fn       reflect.Value
	params   []Parameter
	hasError bool
}

// Name is the runtime name of the constructor function.
func (d *Descriptor) Name() string {
	return d.name
}

// Parameters returns a copy of the constructor's parameters.
func (d *Descriptor) Parameters() []Parameter {
	return append([]Parameter(nil), d.params...)
}

// Describe validates the candidate constructors for target and returns the descriptor for
// the single public one. names, when not empty, are used as the parameter names instead of
// the names recovered from source.
func Describe(target reflect.Type, candidates []any, names []string) (*Descriptor, error) {
	return describe(target, candidates, names, newSourceIndex())
}

func describe(target reflect.Type, candidates []any, names []string, sources *sourceIndex) (*Descriptor, error) {
	var public []reflect.Value
	var publicNames []string

	for _, candidate := range candidates {
		fn, err := checkConstructor(target, candidate)
		if err != nil {
			return nil, err
		}
		name := funcName(fn)
		if !isPublicFunc(name) {
			continue
		}
		public = append(public, fn)
		publicNames = append(publicNames, name)
	}

	switch len(public) {
	case 0:
		return nil, &ResolutionError{
			Kind:           ErrNoPublicConstructor,
			ReferencedType: target,
		}
	case 1:
	default:
		return nil, &ResolutionError{
			Kind:           ErrMultipleConstructors,
			ReferencedType: target,
			Message:        strings.Join(publicNames, ", "),
		}
	}

	fn := public[0]
	fnType := fn.Type()
	d := &Descriptor{
		Target:   target,
		name:     publicNames[0],
		fn:       fn,
		hasError: fnType.NumOut() == 2,
	}

	paramNames, err := parameterNames(fn, names, sources)
	if err != nil {
		return nil, err
	}
	for i := 0; i < fnType.NumIn(); i++ {
		inType := fnType.In(i)
		d.params = append(d.params, Parameter{
			Index:       i,
			Name:        paramNames[i],
			Type:        inType,
			IsValueType: isValueType(inType),
		})
	}
	return d, nil
}

// checkConstructor makes sure the candidate is a function that returns the target, optionally
// followed by an error.
func checkConstructor(target reflect.Type, candidate any) (reflect.Value, error) {
	if candidate == nil {
		return reflect.Value{}, &ResolutionError{
			Kind:           ErrInvalidConstructor,
			ReferencedType: target,
			Message:        "constructor is nil",
		}
	}
	fn := reflect.ValueOf(candidate)
	fnType := fn.Type()
	if fnType.Kind() != reflect.Func {
		return reflect.Value{}, &ResolutionError{
			Kind:           ErrInvalidConstructor,
			ReferencedType: target,
			Message:        fmt.Sprintf("constructor must be a function, got %v", fnType),
		}
	}
	if fn.IsNil() {
		return reflect.Value{}, &ResolutionError{
			Kind:           ErrInvalidConstructor,
			ReferencedType: target,
			Message:        "constructor is nil",
		}
	}

	valid := fnType.NumOut() >= 1 && fnType.NumOut() <= 2 && fnType.Out(0).AssignableTo(target)
	if valid && fnType.NumOut() == 2 {
		valid = fnType.Out(1) == errorType
	}
	if !valid {
		return reflect.Value{}, &ResolutionError{
			Kind:           ErrInvalidConstructor,
			ReferencedType: target,
			Message:        fmt.Sprintf("constructor %s must return %v or (%v, error)", formatSignature(fnType), target, target),
		}
	}
	return fn, nil
}

func funcName(fn reflect.Value) string {
	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return ""
	}
	return rf.Name()
}

// isPublicFunc decides from the runtime name of a function whether it is exported. Function
// literals are handed over explicitly and are always public.
func isPublicFunc(fullName string) bool {
	base := baseFuncName(fullName)
	if base == "" || isAnonymousFunc(base) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(base)
	return unicode.IsUpper(r)
}

// baseFuncName strips the package path, receiver, instantiation and method value suffix
// from a runtime function name: "example.com/pkg.(*T).NewX-fm" becomes "NewX".
func baseFuncName(fullName string) string {
	name := strings.ReplaceAll(fullName, "[...]", "")
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// isAnonymousFunc matches the names the compiler gives function literals: "func1", or "1"
// for literals nested inside other literals.
func isAnonymousFunc(base string) bool {
	digits := strings.TrimPrefix(base, "func")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parameterNames(fn reflect.Value, explicit []string, sources *sourceIndex) ([]string, error) {
	fnType := fn.Type()
	if len(explicit) > 0 {
		if len(explicit) != fnType.NumIn() {
			return nil, &ResolutionError{
				Kind:    ErrInvalidConstructor,
				Message: fmt.Sprintf("%d parameter names given for constructor %s", len(explicit), formatSignature(fnType)),
			}
		}
		return fillParameterNames(append([]string(nil), explicit...)), nil
	}

	names, ok := sources.paramNames(fn)
	if !ok {
		names = make([]string, fnType.NumIn())
	}
	return fillParameterNames(names), nil
}

// fillParameterNames replaces blank and unnamed parameters with their positional name.
func fillParameterNames(names []string) []string {
	for i, name := range names {
		if name == "" || name == "_" {
			names[i] = fmt.Sprintf("arg%d", i)
		}
	}
	return names
}

// invoke calls the constructor. Errors returned by the constructor and panics raised while
// it runs are both reported as ErrConstructionFailed.
func (d *Descriptor) invoke(args []reflect.Value) (result reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ResolutionError{
				Kind:           ErrConstructionFailed,
				ReferencedType: d.Target,
				Message:        d.name,
				SourceError:    &PanicError{Value: r},
			}
		}
	}()

	var results []reflect.Value
	if d.fn.Type().IsVariadic() {
		results = d.fn.CallSlice(args)
	} else {
		results = d.fn.Call(args)
	}

	if d.hasError && !results[1].IsNil() {
		return reflect.Value{}, &ResolutionError{
			Kind:           ErrConstructionFailed,
			ReferencedType: d.Target,
			Message:        d.name,
			SourceError:    results[1].Interface().(error),
		}
	}
	return results[0], nil
}
