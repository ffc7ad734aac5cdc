package model

import "errors"

// Sentinel errors for the closed failure taxonomy. Configuration errors are
// fatal to an invocation; the rest are attached to run results and never
// re-raised past the orchestrator.
var (
	// ErrFunctionNotFound is attached when a cell defines no candidate or
	// the runner collects no tests for one.
	ErrFunctionNotFound = errors.New("no solution function found")

	// ErrRunnerInternal marks a runner-internal failure with no structured
	// detail recoverable.
	ErrRunnerInternal = errors.New("test runner internal error")

	// ErrNotebookContextMissing is returned when neither an explicit module
	// token nor a configured notebook file is available.
	ErrNotebookContextMissing = errors.New("no module name given and no notebook file configured")

	// ErrTestModuleMissing is returned when the resolved test module file
	// does not exist.
	ErrTestModuleMissing = errors.New("test module file not found")
)
