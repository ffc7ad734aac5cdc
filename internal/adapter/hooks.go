package adapter

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/traefik/yaegi/interp"

	m "gooze.dev/pkg/drill/internal/model"
)

// Collector receives per-test events from the runner during one invocation.
type Collector interface {
	// StartTest begins capture for the named test.
	StartTest(name string)

	// Report records the outcome of one phase of the named test. A nil err
	// means the phase completed.
	Report(name string, phase m.Phase, err error, stack string)

	// FinishTest seals the named test's result.
	FinishTest(name string)

	// Stdout and Stderr are the writers the runner interpreter must use, so
	// per-test output capture stays collector-scoped.
	Stdout() io.Writer
	Stderr() io.Writer
}

// Injector makes exactly one candidate implementation resolvable by the
// interpreted test module as solution.Target. A fresh instance is
// constructed per run; it never leaks across invocations.
type Injector struct {
	candidate m.Candidate
}

// NewInjector wraps one candidate for injection.
func NewInjector(candidate m.Candidate) *Injector {
	return &Injector{candidate: candidate}
}

// Exports returns the "solution" fixture package symbols exposing the
// candidate implementation.
func (in *Injector) Exports() interp.Exports {
	return interp.Exports{
		"solution/solution": {
			"Target": in.candidate.Impl,
		},
	}
}

// switchWriter is a writer whose destination the collector retargets as
// tests start and finish. Runs are strictly sequential so a single mutex is
// enough.
type switchWriter struct {
	mu  sync.Mutex
	dst *bytes.Buffer
}

func newSwitchWriter(dst *bytes.Buffer) *switchWriter {
	return &switchWriter{dst: dst}
}

func (w *switchWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.dst.Write(p)
}

func (w *switchWriter) retarget(dst *bytes.Buffer) {
	w.mu.Lock()
	w.dst = dst
	w.mu.Unlock()
}

// openTest tracks a test between StartTest and FinishTest.
type openTest struct {
	result m.TestCaseResult
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// ResultCollector implements Collector for exactly one run and is discarded
// afterwards. It keeps one TestCaseResult per test name in the runner's
// execution order.
type ResultCollector struct {
	runOut  bytes.Buffer // runner-level output, outside any test
	runErr  bytes.Buffer
	stdout  *switchWriter
	stderr  *switchWriter
	open    map[string]*openTest
	order   []string
	results map[string]m.TestCaseResult
}

// NewResultCollector constructs an empty collector.
func NewResultCollector() *ResultCollector {
	c := &ResultCollector{
		open:    make(map[string]*openTest),
		results: make(map[string]m.TestCaseResult),
	}
	c.stdout = newSwitchWriter(&c.runOut)
	c.stderr = newSwitchWriter(&c.runErr)

	return c
}

// Stdout implements Collector.
func (c *ResultCollector) Stdout() io.Writer { return c.stdout }

// Stderr implements Collector.
func (c *ResultCollector) Stderr() io.Writer { return c.stderr }

// StartTest implements Collector. Output written by the test from here on is
// captured in isolation.
func (c *ResultCollector) StartTest(name string) {
	t := &openTest{
		result: m.TestCaseResult{Name: name, Outcome: m.TestPass},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	c.open[name] = t
	c.order = append(c.order, name)
	c.stdout.retarget(t.stdout)
	c.stderr.retarget(t.stderr)
}

// Report implements Collector. A setup or teardown failure overrides a call
// failure and classifies the test as a structural error; a call failure is a
// plain fail.
func (c *ResultCollector) Report(name string, phase m.Phase, err error, stack string) {
	t, ok := c.open[name]
	if !ok || err == nil {
		return
	}

	report := fmt.Sprintf("%s %s: %v", name, phase, err)

	switch phase {
	case m.PhaseSetup, m.PhaseTeardown:
		t.result.Outcome = m.TestError
		t.result.Err = err
		t.result.Stack = stack
		t.result.Report = report
	case m.PhaseCall:
		if t.result.Outcome == m.TestError {
			return
		}

		t.result.Outcome = m.TestFail
		t.result.Err = err
		t.result.Stack = stack
		t.result.Report = report
	}
}

// FinishTest implements Collector. The result is final once sealed.
func (c *ResultCollector) FinishTest(name string) {
	t, ok := c.open[name]
	if !ok {
		return
	}

	t.result.Stdout = t.stdout.String()
	t.result.Stderr = t.stderr.String()
	c.results[name] = t.result
	delete(c.open, name)
	c.stdout.retarget(&c.runOut)
	c.stderr.retarget(&c.runErr)
}

// Results returns the sealed results in execution order.
func (c *ResultCollector) Results() []m.TestCaseResult {
	out := make([]m.TestCaseResult, 0, len(c.order))

	for _, name := range c.order {
		if r, ok := c.results[name]; ok {
			out = append(out, r)
		}
	}

	return out
}

// Errors returns the errors of every structurally errored test, in
// collection order.
func (c *ResultCollector) Errors() []error {
	var errs []error

	for _, r := range c.Results() {
		if r.Outcome == m.TestError && r.Err != nil {
			errs = append(errs, r.Err)
		}
	}

	return errs
}
