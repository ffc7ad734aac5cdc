package adapter

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"runtime/debug"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	m "gooze.dev/pkg/drill/internal/model"
)

// Runner executes a test module against one injected candidate and reports
// per-test events through the collector. Implementations classify their own
// termination; per-test detail stays in the collector.
type Runner interface {
	Run(ctx context.Context, modulePath m.Path, keyword string, inj *Injector, coll Collector) (m.ExitCode, error)
}

// InterpRunner runs test modules in a fresh yaegi interpreter per
// invocation. The interpreter's stdout and stderr belong to the collector, so
// nothing a test prints reaches the calling terminal.
type InterpRunner struct{}

// NewInterpRunner constructs an InterpRunner.
func NewInterpRunner() *InterpRunner {
	return &InterpRunner{}
}

// Run evaluates the test module, collects the test functions whose name
// contains keyword, and executes them strictly sequentially with
// setup/call/teardown phases. Several tests may share a stem; all of them
// run.
func (r *InterpRunner) Run(ctx context.Context, modulePath m.Path, keyword string, inj *Injector, coll Collector) (m.ExitCode, error) {
	src, err := os.ReadFile(string(modulePath))
	if err != nil {
		return m.ExitInternalError, fmt.Errorf("failed to read test module: %w", err)
	}

	i := interp.New(interp.Options{Stdout: coll.Stdout(), Stderr: coll.Stderr()})

	if err := i.Use(stdlib.Symbols); err != nil {
		return m.ExitInternalError, fmt.Errorf("failed to load stdlib symbols: %w", err)
	}

	if err := i.Use(CheckExports()); err != nil {
		return m.ExitInternalError, fmt.Errorf("failed to register check fixture: %w", err)
	}

	if err := i.Use(inj.Exports()); err != nil {
		return m.ExitInternalError, fmt.Errorf("failed to register solution fixture: %w", err)
	}

	if _, err := i.EvalWithContext(ctx, string(src)); err != nil {
		return m.ExitInternalError, fmt.Errorf("test module did not evaluate: %w", err)
	}

	pkg, names, err := matchingTests(src, keyword)
	if err != nil {
		return m.ExitInternalError, err
	}

	if len(names) == 0 {
		return m.ExitNoTestsCollected, nil
	}

	module := moduleName(modulePath)
	setup := r.optionalFunc(i, pkg, "setup")
	teardown := r.optionalFunc(i, pkg, "teardown")
	failed := false

	for _, name := range names {
		fn, ok := r.lookupFunc(i, pkg, name)
		if !ok {
			return m.ExitInternalError, fmt.Errorf("test %s declared but not resolvable", name)
		}

		qualified := module + "::" + name

		coll.StartTest(qualified)

		if !runPhases(qualified, fn, setup, teardown, coll) {
			failed = true
		}

		coll.FinishTest(qualified)
	}

	if failed {
		return m.ExitTestsFailed, nil
	}

	return m.ExitOK, nil
}

// runPhases executes one test's setup, call and teardown phases, reporting
// each to the collector. The call phase is skipped when setup fails;
// teardown always runs. Returns true when every executed phase completed.
func runPhases(name string, fn, setup, teardown reflect.Value, coll Collector) bool {
	ok := true

	setupErr, setupStack := callPhase(setup)
	coll.Report(name, m.PhaseSetup, setupErr, setupStack)

	if setupErr != nil {
		ok = false
	} else {
		callErr, callStack := callPhase(fn)
		coll.Report(name, m.PhaseCall, callErr, callStack)

		if callErr != nil {
			ok = false
		}
	}

	teardownErr, teardownStack := callPhase(teardown)
	coll.Report(name, m.PhaseTeardown, teardownErr, teardownStack)

	if teardownErr != nil {
		ok = false
	}

	return ok
}

// callPhase invokes fn with panic recovery. Assertion failures arrive as
// Failure panics; anything else becomes a generic panic error. An invalid fn
// (absent optional setup/teardown) is a completed no-op phase.
func callPhase(fn reflect.Value) (err error, stack string) {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, ""
	}

	defer func() {
		if rec := recover(); rec != nil {
			stack = string(debug.Stack())

			switch v := rec.(type) {
			case Failure:
				err = v
			case error:
				err = v
			default:
				err = fmt.Errorf("panic: %v", v)
			}
		}
	}()

	fn.Call(nil)

	return nil, ""
}

func (r *InterpRunner) optionalFunc(i *interp.Interpreter, pkg, name string) reflect.Value {
	v, ok := r.lookupFunc(i, pkg, name)
	if !ok {
		return reflect.Value{}
	}

	return v
}

// lookupFunc resolves a function declared by the evaluated module, trying
// the plain name first ("package main" modules) and the package-qualified
// name second.
func (r *InterpRunner) lookupFunc(i *interp.Interpreter, pkg, name string) (reflect.Value, bool) {
	for _, expr := range []string{name, pkg + "." + name} {
		v, err := i.Eval(expr)
		if err == nil && v.IsValid() && v.Kind() == reflect.Func {
			return v, true
		}
	}

	return reflect.Value{}, false
}

// matchingTests parses the test module and returns its package name plus the
// names of top-level TestXxx functions containing keyword, in declaration
// order. The match is a substring, not an exact one.
func matchingTests(src []byte, keyword string) (string, []string, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "module_test.go", src, parser.SkipObjectResolution)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse test module: %w", err)
	}

	var names []string

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil {
			continue
		}

		name := fn.Name.Name
		if strings.HasPrefix(name, "Test") && strings.Contains(name, keyword) {
			names = append(names, name)
		}
	}

	return file.Name.Name, names, nil
}

// moduleName derives the qualifier from the test module file name, e.g.
// "tests/arithmetic_test.go" -> "arithmetic".
func moduleName(path m.Path) string {
	base := filepath.Base(string(path))
	base = strings.TrimSuffix(base, ".go")

	return strings.TrimSuffix(base, "_test")
}
