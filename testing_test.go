package automock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_VerifiesOnCleanup(t *testing.T) {
	c := New[*NotifyingService](t, NewNotifyingService, simpleDouble(), notifierDouble())
	Mock[*MockSimpleService](c).On("DoSomething", 5).Return("five")
	Mock[*MockNotifier](c).On("Notify", "five").Return(nil)

	assert.NoError(t, c.Service().Announce(5))
}

func TestNew_ReportsUnmetExpectations(t *testing.T) {
	fake := &fakeReporter{}
	c := New[*CommonService](fake, NewCommonService, simpleDouble())
	require.NotNil(t, c)
	require.Len(t, fake.cleanups, 1)
	Mock[*MockSimpleService](c).On("DoSomething", 1).Return("one")

	fake.runCleanups()
	require.Len(t, fake.errors, 1)
	assert.Contains(t, fake.errors[0], "DoSomething")
	assert.True(t, c.Disposed())
}

func TestNew_SkipsVerificationOnFailedTest(t *testing.T) {
	fake := &fakeReporter{}
	c := New[*CommonService](fake, NewCommonService, simpleDouble())
	Mock[*MockSimpleService](c).On("DoSomething", 1).Return("one")

	fake.Errorf("unrelated assertion failed")
	fake.runCleanups()
	assert.Len(t, fake.errors, 1)
}

func TestNew_ConfigurationErrorIsFatal(t *testing.T) {
	fake := &fakeReporter{}
	c := New[*ServiceWithValueType](fake, NewServiceWithValueType)
	assert.Nil(t, c)
	require.Len(t, fake.fatals, 1)
	assert.Contains(t, fake.fatals[0], "intVal")
	assert.Empty(t, fake.cleanups)
}

func TestNewExplicit(t *testing.T) {
	fake := &fakeReporter{}
	c := NewExplicit[*CommonService](fake, NewCommonService, simpleDouble())
	require.NotNil(t, c)
	assert.Empty(t, fake.cleanups)

	Mock[*MockSimpleService](c).On("DoSomething", 2).Return("two")
	assert.Error(t, c.VerifyAll())
	assert.Equal(t, "two", c.Service().Run(2))
	assert.NoError(t, c.VerifyAll())

	c = NewExplicit[*CommonService](fake, newCommonServiceUnexported)
	assert.Nil(t, c)
	assert.Len(t, fake.fatals, 1)
}
