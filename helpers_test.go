package automock

import (
	"errors"
	"fmt"

	"github.com/stretchr/testify/mock"
)

type SimpleService interface {
	DoSomething(x int) string
}

type MockSimpleService struct {
	mock.Mock
}

func (m *MockSimpleService) DoSomething(x int) string {
	args := m.Called(x)
	return args.String(0)
}

type Notifier interface {
	Notify(msg string) error
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(msg string) error {
	args := m.Called(msg)
	return args.Error(0)
}

func simpleDouble() Option {
	return WithDouble[SimpleService](func() SimpleService { return &MockSimpleService{} })
}

func notifierDouble() Option {
	return WithDouble[Notifier](func() Notifier { return &MockNotifier{} })
}

type CommonService struct {
	simple SimpleService
}

func NewCommonService(simpleService SimpleService) *CommonService {
	return &CommonService{simple: simpleService}
}

func newCommonServiceUnexported(simpleService SimpleService) *CommonService {
	return &CommonService{simple: simpleService}
}

func NewCommonServiceAlternate(simpleService SimpleService) *CommonService {
	return &CommonService{simple: simpleService}
}

func (s *CommonService) Run(x int) string {
	return s.simple.DoSomething(x)
}

type ServiceWithValueType struct {
	val int
}

func NewServiceWithValueType(intVal int) *ServiceWithValueType {
	return &ServiceWithValueType{val: intVal}
}

func (s *ServiceWithValueType) GetVal() int {
	return s.val
}

type ReferenceTypeParameter struct {
	Name string
}

type ServiceWithReferenceTypeParameter struct {
	ref    *ReferenceTypeParameter
	simple SimpleService
}

func NewServiceWithReferenceTypeParameter(ref *ReferenceTypeParameter, simpleService SimpleService) *ServiceWithReferenceTypeParameter {
	return &ServiceWithReferenceTypeParameter{ref: ref, simple: simpleService}
}

type NotifyingService struct {
	simple   SimpleService
	notifier Notifier
}

func NewNotifyingService(simpleService SimpleService, notifier Notifier) *NotifyingService {
	return &NotifyingService{simple: simpleService, notifier: notifier}
}

func (s *NotifyingService) Announce(x int) error {
	return s.notifier.Notify(s.simple.DoSomething(x))
}

type Clock func() int64

type ServiceWithClock struct {
	now Clock
}

func NewServiceWithClock(now Clock) *ServiceWithClock {
	return &ServiceWithClock{now: now}
}

func (s *ServiceWithClock) Stamp() int64 {
	return s.now()
}

type TwinService struct {
	primary   SimpleService
	secondary SimpleService
}

func NewTwinService(primary SimpleService, secondary SimpleService) *TwinService {
	return &TwinService{primary: primary, secondary: secondary}
}

type BlankService struct{}

func NewBlankService(_ SimpleService, _ Notifier) *BlankService {
	return &BlankService{}
}

type VariadicService struct {
	names []string
}

func NewVariadicService(names ...string) *VariadicService {
	return &VariadicService{names: names}
}

var errFailing = errors.New("failing constructor")

type FailingService struct{}

func NewFailingService(simpleService SimpleService) (*FailingService, error) {
	return nil, errFailing
}

type PanickingService struct{}

func NewPanickingService(simpleService SimpleService) *PanickingService {
	panic("boom")
}

// verifyingDouble checks its own expectations instead of going through testify.
type verifyingDouble struct {
	calls int
	want  int
}

func (v *verifyingDouble) DoSomething(x int) string {
	v.calls++
	return fmt.Sprint(x)
}

func (v *verifyingDouble) Verify() error {
	if v.calls != v.want {
		return fmt.Errorf("want %d calls, got %d", v.want, v.calls)
	}
	return nil
}

// fakeReporter stands in for testing.TB.
type fakeReporter struct {
	failed    bool
	errors    []string
	fatals    []string
	cleanups  []func()
	helperHit int
}

func (f *fakeReporter) Helper() {
	f.helperHit++
}

func (f *fakeReporter) Errorf(format string, args ...any) {
	f.failed = true
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeReporter) Failed() bool {
	return f.failed
}

func (f *fakeReporter) Fatalf(format string, args ...any) {
	f.failed = true
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}

func (f *fakeReporter) Cleanup(fn func()) {
	f.cleanups = append(f.cleanups, fn)
}

func (f *fakeReporter) runCleanups() {
	for i := len(f.cleanups) - 1; i >= 0; i-- {
		f.cleanups[i]()
	}
}

// capturePanic runs fn and returns what it panicked with.
func capturePanic(fn func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	fn()
	return nil
}
