package automock

import (
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// Builder collects the configuration for containers of service type S. One builder can build
// any number of containers. Each one gets its own copy of the overrides and its own doubles.
//
//	c, err := automock.For[*OrderService](NewOrderService).
//	    WithOverrideByName("region", "eu-west-1").
//	    With(automock.WithDouble[Store](func() Store { return &MockStore{} })).
//	    Build()
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer c.Dispose()
type Builder[S any] struct {
	config
	target     reflect.Type
	candidates []any
	sources    *sourceIndex
	desc       *Descriptor
}

// For starts the configuration for service type S. constructors are the candidate
// constructor functions. Exactly one of them must be public.
func For[S any](constructors ...any) *Builder[S] {
	return &Builder[S]{
		config:     newConfig(),
		target:     TypeOf[S](),
		candidates: constructors,
		sources:    newSourceIndex(),
	}
}

// With applies options to the builder. Options that change the parameter names drop the
// descriptor selected so far.
func (b *Builder[S]) With(opts ...Option) *Builder[S] {
	names := b.names
	for _, opt := range opts {
		opt(&b.config)
	}
	if !slices.Equal(names, b.names) {
		b.desc = nil
	}
	return b
}

// WithOverrideByName supplies value for the constructor parameter called name.
func (b *Builder[S]) WithOverrideByName(name string, value any) *Builder[S] {
	b.record(b.overrides.ByName(name, value))
	return b
}

// WithOverrideByType supplies value for every constructor parameter declared as t. Use
// TypeOf to get the type of an interface:
//
//	b.WithOverrideByType(automock.TypeOf[Store](), realStore)
func (b *Builder[S]) WithOverrideByType(t reflect.Type, value any) *Builder[S] {
	b.record(b.overrides.ByType(t, value))
	return b
}

// Err returns the first registration error, if any. Build returns the same error.
func (b *Builder[S]) Err() error {
	return b.err
}

// Descriptor validates the constructors and returns the descriptor of the public one.
func (b *Builder[S]) Descriptor() (*Descriptor, error) {
	if b.desc != nil {
		return b.desc, nil
	}
	desc, err := describe(b.target, b.candidates, b.names, b.sources)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("constructor selected",
		zap.Stringer("service", b.target),
		zap.String("constructor", desc.name),
		zap.String("signature", formatSignature(desc.fn.Type())))
	b.desc = desc
	return desc, nil
}

// Build resolves every constructor parameter and returns a container whose doubles are
// verified by Dispose or Close.
func (b *Builder[S]) Build() (*Container[S], error) {
	core, err := b.build()
	if err != nil {
		return nil, err
	}
	return &Container[S]{core: core}, nil
}

// BuildWithExplicitVerification resolves every constructor parameter and returns a container
// without a disposal step. Its doubles are verified only when VerifyAll is called.
func (b *Builder[S]) BuildWithExplicitVerification() (*ExplicitContainer[S], error) {
	core, err := b.build()
	if err != nil {
		return nil, err
	}
	return &ExplicitContainer[S]{core: core}, nil
}

func (b *Builder[S]) build() (*core[S], error) {
	if b.err != nil {
		return nil, b.err
	}
	desc, err := b.Descriptor()
	if err != nil {
		return nil, err
	}

	complete := b.startPhase("resolve")
	factory := b.doubleFactory()
	resolved, handles, err := resolve(desc, b.overrides.Clone(), factory, b.logger)
	complete()
	if err != nil {
		return nil, err
	}

	cfg := b.config
	c := &core[S]{
		desc:     desc,
		resolved: resolved,
		handles:  handles,
		factory:  factory,
		logger:   cfg.logger,
		phases:   cfg.startPhase,
		reporter: cfg.reporter,
	}
	if b.immediate {
		if err := c.CreateService(); err != nil {
			return nil, err
		}
	}
	return c, nil
}
