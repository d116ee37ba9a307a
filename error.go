package automock

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNoPublicConstructor           = errors.New("no public constructor")
	ErrMultipleConstructors          = errors.New("multiple public constructors")
	ErrInvalidConstructor            = errors.New("invalid constructor")
	ErrDuplicateTypeOverride         = errors.New("override already registered for type")
	ErrDuplicateNameOverride         = errors.New("override already registered for name")
	ErrConflictingOverride           = errors.New("parameter has overrides registered by both name and type")
	ErrUnsupportedValueTypeParameter = errors.New("value type parameter cannot be represented as a double")
	ErrNoDoubleAvailable             = errors.New("unable to create double for parameter")
	ErrOverrideTypeMismatch          = errors.New("override value is not assignable to parameter")
	ErrParameterNotFound             = errors.New("parameter not found in generated doubles")
	ErrAmbiguousParameter            = errors.New("more than one generated double matches")
	ErrConstructionFailed            = errors.New("service construction failed")
	ErrCyclicConstruction            = errors.New("cyclic service construction")
)

// ResolutionError is returned for every configuration, resolution and construction failure.
// Kind is one of the Err* sentinels above and is what errors.Is matches against.
type ResolutionError struct {
	Kind           error
	Message        string
	Parameter      string
	ReferencedType reflect.Type
	SourceError    error
}

func (e *ResolutionError) Error() string {
	b := strings.Builder{}
	b.WriteString(e.Kind.Error())
	if e.Parameter != "" {
		fmt.Fprintf(&b, " %q", e.Parameter)
	}
	if e.ReferencedType != nil {
		fmt.Fprintf(&b, ": %v", e.ReferencedType)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, " - %s", e.Message)
	}
	if e.SourceError != nil {
		fmt.Fprintf(&b, " (%v)", e.SourceError)
	}
	return b.String()
}

func (e *ResolutionError) Is(target error) bool {
	return e.Kind == target
}

func (e *ResolutionError) Unwrap() error {
	return e.SourceError
}

// VerificationError reports the unmet expectations of a single generated double.
type VerificationError struct {
	DeclaredType reflect.Type
	Double       string
	Failures     []string
	SourceError  error
}

func (e *VerificationError) Error() string {
	detail := strings.Join(e.Failures, "; ")
	if detail == "" && e.SourceError != nil {
		detail = e.SourceError.Error()
	}
	return fmt.Sprintf("unmet expectations on %s for %v: %s", e.Double, e.DeclaredType, detail)
}

func (e *VerificationError) Unwrap() error {
	return e.SourceError
}

// PanicError carries the value a constructor panicked with.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
