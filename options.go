package automock

import (
	"context"
	"reflect"

	"github.com/gburgyan/go-timing"
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Builder.
type Option func(*config)

type config struct {
	logger    *zap.Logger
	timing    context.Context
	factory   DoubleFactory
	doubles   []doubleRegistration
	names     []string
	immediate bool
	reporter  Reporter
	overrides *Overrides
	err       error
}

type doubleRegistration struct {
	declared reflect.Type
	create   func() any
}

func newConfig() config {
	return config{
		logger:    zap.NewNop(),
		overrides: NewOverrides(),
	}
}

// record keeps the first registration error. Registration keeps chaining after a failure and
// the error is returned from Build.
func (c *config) record(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *config) doubleFactory() DoubleFactory {
	if c.factory != nil {
		return c.factory
	}
	f := NewDoubleFactory()
	for _, reg := range c.doubles {
		f.Register(reg.declared, reg.create)
	}
	return f
}

// startPhase times a phase of the container's life as a child of the timing context given
// with WithTiming. Without one it does nothing.
func (c *config) startPhase(name string) func() {
	if c.timing == nil {
		return func() {}
	}
	_, complete := timing.Start(c.timing, "automock:"+name)
	return complete
}

// OverrideByName supplies value for the constructor parameter called name. Names are compared
// case-insensitively.
func OverrideByName(name string, value any) Option {
	return func(c *config) {
		c.record(c.overrides.ByName(name, value))
	}
}

// OverrideByType supplies value for every constructor parameter declared as T. T is inferred
// from value, so name the interface explicitly when overriding an interface parameter with a
// concrete implementation:
//
//	automock.OverrideByType[Store](&memoryStore{})
func OverrideByType[T any](value T) Option {
	return func(c *config) {
		c.record(c.overrides.ByType(TypeOf[T](), value))
	}
}

// WithDouble registers the constructor for doubles of the interface type T with the default
// double factory. Each container gets its own double. It is ignored when WithDoubleFactory
// is used.
//
//	type MockStore struct{ mock.Mock }
//	...
//	automock.WithDouble[Store](func() Store { return &MockStore{} })
func WithDouble[T any](create func() T) Option {
	return func(c *config) {
		c.doubles = append(c.doubles, doubleRegistration{
			declared: TypeOf[T](),
			create:   func() any { return create() },
		})
	}
}

// WithDoubleFactory replaces the default double factory.
func WithDoubleFactory(factory DoubleFactory) Option {
	return func(c *config) {
		c.factory = factory
	}
}

// WithParamNames names the constructor parameters explicitly, in declaration order. This is
// needed for by-name overrides when the constructor's source isn't available at test time.
func WithParamNames(names ...string) Option {
	return func(c *config) {
		c.names = names
	}
}

// WithLogger sets the logger that receives debug output about resolution, construction and
// verification.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	}
}

// WithTiming records the resolve, construct and verify phases under the timing context ctx,
// which is normally created by timing.Root.
func WithTiming(ctx context.Context) Option {
	return func(c *config) {
		c.timing = ctx
	}
}

// WithReporter makes the container report verification failures through r instead of
// panicking, and skip verification once r has failed. testing.TB satisfies Reporter.
func WithReporter(r Reporter) Option {
	return func(c *config) {
		c.reporter = r
	}
}

// Immediate constructs the service while the container is being built rather than on first
// access, so construction errors are returned from Build.
func Immediate() Option {
	return func(c *config) {
		c.immediate = true
	}
}
