package automock

// TB is the part of testing.TB used by New and NewExplicit.
type TB interface {
	Reporter
	Cleanup(func())
	Fatalf(format string, args ...any)
}

// New builds a container for the test t. Configuration errors fail the test immediately.
// The doubles are verified when the test finishes, unless it has already failed, and any
// unmet expectation is reported with t.Errorf. A test that panics is marked failed before
// its cleanups run, so its doubles are not verified. Don't also defer c.Dispose in a
// wrapper such as `defer func() { c.Dispose() }()`: that call can't see the panic.
//
//	func TestCheckout(t *testing.T) {
//	    c := automock.New[*Checkout](t, NewCheckout,
//	        automock.WithDouble[Payments](func() Payments { return &MockPayments{} }))
//	    automock.Mock[*MockPayments](c).On("Charge", 100).Return(nil)
//	    require.NoError(t, c.Service().Run(100))
//	}
func New[S any](t TB, constructor any, opts ...Option) *Container[S] {
	t.Helper()
	c, err := For[S](constructor).With(opts...).With(WithReporter(t)).Build()
	if err != nil {
		t.Fatalf("automock: %v", err)
		return nil
	}
	t.Cleanup(c.Dispose)
	return c
}

// NewExplicit builds a container for the test t that is only verified when VerifyAll is
// called. Configuration errors fail the test immediately.
func NewExplicit[S any](t TB, constructor any, opts ...Option) *ExplicitContainer[S] {
	t.Helper()
	c, err := For[S](constructor).With(opts...).With(WithReporter(t)).BuildWithExplicitVerification()
	if err != nil {
		t.Fatalf("automock: %v", err)
		return nil
	}
	return c
}
