// Package automock builds the service under test with every dependency filled in. Given a
// service type and its constructor function, each constructor parameter is bound either to an
// override supplied by the caller or to a generated test double. The service itself is
// constructed lazily, and once the test is done every generated double is verified.
//
// The Container object has comprehensive documentation about how it works.
//
// There are also helper functions that integrate with the testing package to make this more
// concise.
package automock
