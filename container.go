package automock

import (
	"reflect"

	"go.uber.org/zap"
)

// Reporter is the part of testing.TB the container needs to report verification failures.
type Reporter interface {
	Helper()
	Errorf(format string, args ...any)
	Failed() bool
}

// HandleSource is implemented by both container kinds and gives access to the generated
// doubles.
type HandleSource interface {
	Handles() []*Handle
}

// core holds what both container kinds share: the resolved parameters, the generated doubles
// and the lazily built service.
//
// The parameters are resolved when the container is built, so configuration problems show
// up right away. The service itself is only constructed on first access, from those already
// resolved values, and the result is kept. A failed construction is kept as well and is not
// retried.
type core[S any] struct {
	desc     *Descriptor
	resolved []Resolved
	handles  []*Handle
	factory  DoubleFactory
	logger   *zap.Logger
	phases   func(string) func()
	reporter Reporter

	constructed  bool
	constructing bool
	service      S
	serviceErr   error
}

// Handles returns the generated doubles in resolution order.
func (c *core[S]) Handles() []*Handle {
	return append([]*Handle(nil), c.handles...)
}

// Resolved returns the binding of every constructor parameter in declaration order.
func (c *core[S]) Resolved() []Resolved {
	return append([]Resolved(nil), c.resolved...)
}

// Service returns the service, constructing it on the first call. If construction fails this
// panics with the *ResolutionError; use ServiceWithError to get it as an error instead.
func (c *core[S]) Service() S {
	service, err := c.ServiceWithError()
	if err != nil {
		panic(err)
	}
	return service
}

// ServiceWithError returns the service, constructing it on the first call.
func (c *core[S]) ServiceWithError() (S, error) {
	if c.constructed {
		return c.service, c.serviceErr
	}
	if c.constructing {
		var zero S
		return zero, &ResolutionError{
			Kind:           ErrCyclicConstruction,
			ReferencedType: c.desc.Target,
			Message:        c.desc.name,
		}
	}

	c.constructing = true
	defer func() { c.constructing = false }()
	complete := c.phases("construct")
	defer complete()

	args := make([]reflect.Value, len(c.resolved))
	for i, r := range c.resolved {
		args[i] = r.Value
	}
	result, err := c.desc.invoke(args)

	c.constructed = true
	if err != nil {
		c.serviceErr = err
		c.logger.Debug("service construction failed", zap.Stringer("service", c.desc.Target), zap.Error(err))
		return c.service, err
	}
	ptr := reflect.New(c.desc.Target)
	ptr.Elem().Set(result)
	c.service = *ptr.Interface().(*S)
	c.logger.Debug("service constructed", zap.Stringer("service", c.desc.Target))
	return c.service, nil
}

// CreateService constructs the service without returning it.
func (c *core[S]) CreateService() error {
	_, err := c.ServiceWithError()
	return err
}

// verify runs the factory's verification over every generated double in resolution order
// and stops at the first failure.
func (c *core[S]) verify() error {
	complete := c.phases("verify")
	defer complete()
	for _, h := range c.handles {
		if err := c.factory.Verify(h); err != nil {
			c.logger.Debug("double verification failed", zap.Stringer("type", h.declared), zap.Error(err))
			return err
		}
	}
	c.logger.Debug("doubles verified", zap.Int("count", len(c.handles)))
	return nil
}

// Container is an auto-mocking container whose doubles are verified when it is disposed:
//
//	c, err := automock.For[*Service](NewService).Build()
//	...
//	defer c.Dispose()
//
// Disposal happens at most once. A panic that is already propagating when the deferred
// Dispose runs is passed on unchanged and verification is skipped, so a failing test
// reports its original cause rather than the doubles that never got called.
//
// Dispose only sees the panic when it is the deferred call itself. Wrapped in another
// function, as in `defer func() { c.Dispose() }()`, verification runs and its failure
// replaces the original panic.
type Container[S any] struct {
	*core[S]
	closed bool
}

// Dispose verifies every generated double. It must be deferred directly, as in
// `defer c.Dispose()`, to see a panic in flight. With a Reporter, verification is skipped if
// the test has already failed and failures are reported through it. Without one a
// verification failure panics with the *VerificationError.
func (c *Container[S]) Dispose() {
	if r := recover(); r != nil {
		c.closed = true
		c.logger.Debug("verification skipped, panic in flight", zap.Any("panic", r))
		panic(r)
	}
	err := c.close()
	if err == nil {
		return
	}
	if c.reporter != nil {
		c.reporter.Helper()
		c.reporter.Errorf("%v", err)
		return
	}
	panic(err)
}

// Close is Dispose for callers that want the verification error returned. It runs at most
// once; later calls return nil.
func (c *Container[S]) Close() error {
	if r := recover(); r != nil {
		c.closed = true
		c.logger.Debug("verification skipped, panic in flight", zap.Any("panic", r))
		panic(r)
	}
	return c.close()
}

// Disposed reports whether Dispose or Close has run.
func (c *Container[S]) Disposed() bool {
	return c.closed
}

func (c *Container[S]) close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.reporter != nil && c.reporter.Failed() {
		c.logger.Debug("verification skipped, test already failed")
		return nil
	}
	return c.verify()
}

// ExplicitContainer is a container without a disposal step. Verification happens only when
// VerifyAll is called, and may be repeated.
type ExplicitContainer[S any] struct {
	*core[S]
}

// VerifyAll verifies every generated double and returns the first failure.
func (c *ExplicitContainer[S]) VerifyAll() error {
	return c.verify()
}

// Param returns the generated double for the parameter declared as T. It panics with
// ErrParameterNotFound if no double was generated for T, and with ErrAmbiguousParameter if
// more than one was.
func Param[T any](c HandleSource) T {
	double, err := ParamWithError[T](c)
	if err != nil {
		panic(err)
	}
	return double
}

// ParamWithError behaves like Param but returns the error instead of panicking.
func ParamWithError[T any](c HandleSource) (T, error) {
	var zero T
	h, err := findHandle(c, TypeOf[T]())
	if err != nil {
		return zero, err
	}
	return h.Instance().(T), nil
}

// Mock returns the control object of the generated double whose concrete type is M, such as
// the *MockStore registered with WithDouble. It panics like Param.
func Mock[M any](c HandleSource) M {
	control, err := MockWithError[M](c)
	if err != nil {
		panic(err)
	}
	return control
}

// MockWithError behaves like Mock but returns the error instead of panicking.
func MockWithError[M any](c HandleSource) (M, error) {
	var found []M
	for _, h := range c.Handles() {
		if control, ok := h.control.(M); ok {
			found = append(found, control)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		var zero M
		return zero, &ResolutionError{Kind: ErrParameterNotFound, ReferencedType: TypeOf[M]()}
	default:
		var zero M
		return zero, &ResolutionError{Kind: ErrAmbiguousParameter, ReferencedType: TypeOf[M]()}
	}
}

// Func returns the FuncDouble generated for the function-typed parameter declared as T.
func Func[T any](c HandleSource) *FuncDouble {
	h, err := findHandle(c, TypeOf[T]())
	if err != nil {
		panic(err)
	}
	fd, ok := h.control.(*FuncDouble)
	if !ok {
		panic(&ResolutionError{
			Kind:           ErrParameterNotFound,
			ReferencedType: h.declared,
			Message:        "double is not a *FuncDouble",
		})
	}
	return fd
}

func findHandle(c HandleSource, t reflect.Type) (*Handle, error) {
	var match *Handle
	for _, h := range c.Handles() {
		if h.declared != t {
			continue
		}
		if match != nil {
			return nil, &ResolutionError{Kind: ErrAmbiguousParameter, ReferencedType: t}
		}
		match = h
	}
	if match == nil {
		return nil, &ResolutionError{Kind: ErrParameterNotFound, ReferencedType: t}
	}
	return match, nil
}
