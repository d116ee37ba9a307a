package automock

import (
	"strconv"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func randomCase(rt *rapid.T, s string) string {
	upper := rapid.SliceOfN(rapid.Bool(), len(s), len(s)).Draw(rt, "upper")
	b := strings.Builder{}
	for i, r := range s {
		if upper[i] {
			b.WriteString(strings.ToUpper(string(r)))
		} else {
			b.WriteString(strings.ToLower(string(r)))
		}
	}
	return b.String()
}

func TestOverrideByName_AnyCase_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.Int().Draw(rt, "value")
		name := randomCase(rt, "intVal")

		c, err := For[*ServiceWithValueType](NewServiceWithValueType).WithOverrideByName(name, value).Build()
		if err != nil {
			rt.Fatalf("build with %q: %v", name, err)
		}
		if got := c.Service().GetVal(); got != value {
			rt.Fatalf("got %d, want %d", got, value)
		}
		if err := c.Close(); err != nil {
			rt.Fatalf("close: %v", err)
		}
	})
}

func TestOverrides_DuplicateDetection_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOf(rapid.StringMatching(`[a-cA-C]{1,2}`)).Draw(rt, "names")

		o := NewOverrides()
		seen := map[string]bool{}
		for i, name := range names {
			err := o.ByName(name, i)
			key := strings.ToLower(name)
			if seen[key] && err == nil {
				rt.Fatalf("duplicate %q accepted", name)
			}
			if !seen[key] && err != nil {
				rt.Fatalf("first registration of %q rejected: %v", name, err)
			}
			seen[key] = true
		}
		if o.Len() != len(seen) {
			rt.Fatalf("registry holds %d names, want %d", o.Len(), len(seen))
		}
	})
}

func TestIsAnonymousFunc_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 1000).Draw(rt, "n")
		digits := strconv.Itoa(n)
		if !isAnonymousFunc("func" + digits) {
			rt.Fatalf("func%s not anonymous", digits)
		}
		if !isAnonymousFunc(digits) {
			rt.Fatalf("%s not anonymous", digits)
		}
		if !isPublicFunc("example.com/pkg.TestThing.func" + digits) {
			rt.Fatalf("func literal %s not public", digits)
		}
	})
}

func TestFuncDouble_RecordsEveryCall_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		keys := rapid.SliceOf(rapid.String()).Draw(rt, "keys")

		fd := newFuncDouble(TypeOf[Lookup]())
		lookup := fd.fn.Interface().(Lookup)
		for i, key := range keys {
			lookup(key, i)
		}
		if fd.CallCount() != len(keys) {
			rt.Fatalf("recorded %d calls, want %d", fd.CallCount(), len(keys))
		}
		for i, args := range fd.Invocations() {
			if args[0] != keys[i] || args[1] != i {
				rt.Fatalf("call %d recorded as %v", i, args)
			}
		}
	})
}

func TestContainers_AreIndependent_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 5).Draw(rt, "count")
		b := For[*CommonService](NewCommonService).With(simpleDouble())

		seen := map[SimpleService]bool{}
		for i := 0; i < count; i++ {
			c, err := b.Build()
			if err != nil {
				rt.Fatalf("build: %v", err)
			}
			double := Param[SimpleService](c)
			if seen[double] {
				rt.Fatalf("container %d reused a double", i)
			}
			seen[double] = true
		}
	})
}
