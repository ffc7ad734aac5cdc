package adapter

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/traefik/yaegi/interp"
)

// Test modules are interpreted, not compiled, and import two fixture
// packages the runner pre-registers: "solution" exposing the injected
// candidate as solution.Target, and "check" exposing the assertion helpers
// below. Assertion failures panic with a Failure so the runner can tell an
// assertion apart from an arbitrary panic when formatting the report.

// Failure is the panic payload raised by check assertions.
type Failure struct {
	Msg string
}

func (f Failure) Error() string {
	return f.Msg
}

// Equal panics with a Failure when got and want differ, carrying a go-cmp
// diff.
func Equal(got, want any) {
	if cmp.Equal(got, want) {
		return
	}

	panic(Failure{Msg: fmt.Sprintf("values differ (-want +got):\n%s", cmp.Diff(want, got))})
}

// True panics with a Failure when cond is false.
func True(cond bool, msg string) {
	if !cond {
		panic(Failure{Msg: msg})
	}
}

// NoError panics with a Failure when err is non-nil.
func NoError(err error) {
	if err != nil {
		panic(Failure{Msg: fmt.Sprintf("unexpected error: %v", err)})
	}
}

// Failf unconditionally panics with a formatted Failure.
func Failf(format string, args ...any) {
	panic(Failure{Msg: fmt.Sprintf(format, args...)})
}

// CheckExports returns the "check" fixture package symbols for a test
// interpreter.
func CheckExports() interp.Exports {
	return interp.Exports{
		"check/check": {
			"Equal":   reflect.ValueOf(Equal),
			"True":    reflect.ValueOf(True),
			"NoError": reflect.ValueOf(NoError),
			"Failf":   reflect.ValueOf(Failf),
		},
	}
}
