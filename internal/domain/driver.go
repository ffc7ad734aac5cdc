package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gooze.dev/pkg/drill/internal/adapter"
	m "gooze.dev/pkg/drill/internal/model"
)

// Driver runs the test module for one candidate and reduces the runner's
// exit classification plus the collected per-test data into a RunResult.
type Driver struct {
	runner adapter.Runner
}

// NewDriver constructs a Driver backed by the provided runner.
func NewDriver(runner adapter.Runner) *Driver {
	return &Driver{runner: runner}
}

// RunTests executes the test module filtered to the candidate's name. With
// threaded set the run happens on a dedicated worker goroutine and the
// result comes back through a capacity-1 channel; the caller still blocks
// until the worker finishes, so this is offloading, not background
// concurrency. Exactly one invocation is in flight at a time.
func (d *Driver) RunTests(ctx context.Context, moduleFile m.Path, cand m.Candidate, threaded bool) m.RunResult {
	if !threaded {
		return d.run(ctx, moduleFile, cand)
	}

	results := make(chan m.RunResult, 1)

	go func() {
		results <- d.run(ctx, moduleFile, cand)
	}()

	return <-results
}

func (d *Driver) run(ctx context.Context, moduleFile m.Path, cand m.Candidate) m.RunResult {
	coll := adapter.NewResultCollector()
	inj := adapter.NewInjector(cand)

	exit, err := d.runner.Run(ctx, moduleFile, cand.Name, inj, coll)
	if err != nil {
		slog.Debug("runner terminated abnormally", "candidate", cand.Name, "exit", exit.String(), "error", err)
	}

	return Classify(cand, exit, err, coll.Results(), coll.Errors())
}

// Classify maps a runner exit classification and the collected per-test data
// to a run-level result. Pure; testable without a real runner.
//
// tests-failed stays a finished run unless a structural test error is among
// the collected results, in which case the run is a runner error carrying
// every errored test's error in collection order.
func Classify(cand m.Candidate, exit m.ExitCode, runErr error, tests []m.TestCaseResult, testErrs []error) m.RunResult {
	candidate := &cand

	switch exit {
	case m.ExitOK:
		return m.RunResult{Candidate: candidate, Status: m.RunFinished, Tests: tests}

	case m.ExitTestsFailed:
		if len(testErrs) > 0 {
			return m.RunResult{Candidate: candidate, Status: m.RunRunnerError, Errs: testErrs}
		}

		return m.RunResult{Candidate: candidate, Status: m.RunFinished, Tests: tests}

	case m.ExitInternalError:
		err := error(m.ErrRunnerInternal)
		if runErr != nil {
			err = fmt.Errorf("%w: %v", m.ErrRunnerInternal, runErr)
		}

		return m.RunResult{Candidate: candidate, Status: m.RunRunnerError, Errs: []error{err}}

	case m.ExitNoTestsCollected:
		return m.RunResult{Candidate: candidate, Status: m.RunNoTestFound, Errs: []error{m.ErrFunctionNotFound}}
	}

	return m.RunResult{Candidate: candidate, Status: m.RunUnknownError, Errs: []error{errors.New("unknown error")}}
}
