package domain

import (
	"context"
	"log/slog"

	"gooze.dev/pkg/drill/internal/adapter"
	m "gooze.dev/pkg/drill/internal/model"
)

// Orchestrator ties the session, extractor, driver and attempt table
// together for one cell invocation: execute the cell, extract candidates,
// run each candidate's tests, stamp attempt counts, return ordered results.
type Orchestrator struct {
	session  adapter.Session
	driver   *Driver
	attempts *AttemptTable
}

// NewOrchestrator constructs an Orchestrator. The attempt table lives as
// long as the orchestrator; recreating it is the only way counters reset.
func NewOrchestrator(session adapter.Session, driver *Driver) *Orchestrator {
	return &Orchestrator{
		session:  session,
		driver:   driver,
		attempts: NewAttemptTable(),
	}
}

// Session exposes the owned session for scoped error suppression by the
// caller.
func (o *Orchestrator) Session() adapter.Session {
	return o.session
}

// Check runs one cell invocation against the test module. The returned slice
// always has length >= 1: one result per candidate in extraction order, or
// exactly one synthetic error result when the cell fails to execute or
// defines no candidate. Candidates run strictly sequentially; no candidate's
// run affects another's counters or outcome.
func (o *Orchestrator) Check(ctx context.Context, moduleFile m.Path, cellID, cellSrc string, threaded bool) []m.RunResult {
	if err := o.session.Execute(ctx, cellSrc); err != nil {
		slog.Debug("cell execution failed", "cell", cellID, "error", err)

		return []m.RunResult{{
			Status:     m.RunCompileError,
			Errs:       []error{err},
			CellSource: cellSrc,
		}}
	}

	candidates, err := ExtractCandidates(o.session, cellSrc)
	if err != nil {
		// The cell executed, so the source parses; treat this as a defect.
		slog.Error("candidate extraction failed after successful execution", "cell", cellID, "error", err)

		return []m.RunResult{{
			Status: m.RunSolutionMissing,
			Errs:   []error{m.ErrFunctionNotFound},
		}}
	}

	if len(candidates) == 0 {
		return []m.RunResult{{
			Status: m.RunSolutionMissing,
			Errs:   []error{m.ErrFunctionNotFound},
		}}
	}

	results := make([]m.RunResult, 0, len(candidates))

	for _, cand := range candidates {
		n := o.attempts.Bump(cellID, cand.Name)
		result := o.driver.RunTests(ctx, moduleFile, cand, threaded)
		results = append(results, o.attempts.Stamp(result, n))
	}

	return results
}
