// Package model defines the data structures for exercise checking.
package model

// TestOutcome represents the outcome of a single test case.
type TestOutcome int

const (
	// TestPass indicates the test completed without any failure.
	TestPass TestOutcome = iota
	// TestFail indicates an assertion failure or a panic in the call phase.
	TestFail
	// TestError indicates a structural failure in the setup or teardown
	// phase, distinct from an assertion failure.
	TestError
)

func (o TestOutcome) String() string {
	switch o {
	case TestPass:
		return "pass"
	case TestFail:
		return "fail"
	case TestError:
		return "error"
	}

	return "unknown"
}

// ExitCode classifies how a runner invocation terminated, before the
// per-test results are taken into account.
type ExitCode int

const (
	// ExitOK indicates the runner completed and every test passed.
	ExitOK ExitCode = iota
	// ExitTestsFailed indicates the runner completed with at least one
	// failed or errored test.
	ExitTestsFailed
	// ExitInternalError indicates the runner itself failed (e.g. the test
	// module did not evaluate).
	ExitInternalError
	// ExitNoTestsCollected indicates no test matched the keyword filter.
	ExitNoTestsCollected
)

func (c ExitCode) String() string {
	switch c {
	case ExitOK:
		return "ok"
	case ExitTestsFailed:
		return "tests-failed"
	case ExitInternalError:
		return "internal-error"
	case ExitNoTestsCollected:
		return "no-tests-collected"
	}

	return "unknown"
}

// RunStatus represents the run-level outcome of checking one candidate.
type RunStatus int

const (
	// RunFinished indicates the runner completed and per-test results are
	// available; individual tests may still have failed.
	RunFinished RunStatus = iota
	// RunCompileError indicates the cell itself failed to execute.
	RunCompileError
	// RunSolutionMissing indicates the cell defined no candidate function.
	RunSolutionMissing
	// RunNoTestFound indicates the runner collected no tests for the
	// candidate.
	RunNoTestFound
	// RunRunnerError indicates a runner-internal failure or a structural
	// error inside a collected test.
	RunRunnerError
	// RunUnknownError is the fallback classification, never expected in
	// normal operation.
	RunUnknownError
)

func (s RunStatus) String() string {
	switch s {
	case RunFinished:
		return "finished"
	case RunCompileError:
		return "compile-error"
	case RunSolutionMissing:
		return "solution-missing"
	case RunNoTestFound:
		return "no-test-found"
	case RunRunnerError:
		return "runner-error"
	case RunUnknownError:
		return "unknown-error"
	}

	return "unknown"
}

// IsError reports whether the status carries errors instead of test results.
func (s RunStatus) IsError() bool {
	return s != RunFinished
}
