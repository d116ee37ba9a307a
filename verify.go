package automock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stretchr/testify/mock"
)

// Verifier can be implemented by a double that checks its own expectations.
type Verifier interface {
	Verify() error
}

// expectationAsserter is satisfied by anything embedding testify's mock.Mock.
type expectationAsserter interface {
	AssertExpectations(t mock.TestingT) bool
}

// verifyDouble runs the engine specific verification. Doubles that expose neither Verify nor
// AssertExpectations have no expectations to check.
func verifyDouble(h *Handle) error {
	switch double := h.control.(type) {
	case Verifier:
		err := double.Verify()
		if err == nil {
			return nil
		}
		var verr *VerificationError
		if errors.As(err, &verr) {
			return err
		}
		return &VerificationError{
			DeclaredType: h.declared,
			Double:       fmt.Sprintf("%T", h.control),
			SourceError:  err,
		}
	case expectationAsserter:
		rec := &recordingT{}
		if double.AssertExpectations(rec) {
			return nil
		}
		return &VerificationError{
			DeclaredType: h.declared,
			Double:       fmt.Sprintf("%T", h.control),
			Failures:     rec.failures,
		}
	}
	return nil
}

// recordingT collects what testify reports instead of failing a test directly, so the
// container decides how a verification failure surfaces.
type recordingT struct {
	failures []string
}

func (r *recordingT) Logf(format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	if strings.HasPrefix(msg, "FAIL") {
		r.failures = append(r.failures, msg)
	}
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.failures = append(r.failures, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (r *recordingT) FailNow() {}
