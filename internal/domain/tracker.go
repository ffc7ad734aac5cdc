package domain

import (
	m "gooze.dev/pkg/drill/internal/model"
)

// AttemptTable counts test runs per (cell id, candidate name). It lives as
// long as the owning orchestrator and is only touched from the calling
// goroutine; the driver's worker never sees it.
type AttemptTable struct {
	counts map[string]map[string]int
}

// NewAttemptTable constructs an empty table.
func NewAttemptTable() *AttemptTable {
	return &AttemptTable{counts: make(map[string]map[string]int)}
}

// Bump increments the counter for the candidate within the cell and returns
// the new value. Called once per driver invocation, before the run's outcome
// is finalized into the record.
func (t *AttemptTable) Bump(cellID, name string) int {
	cell, ok := t.counts[cellID]
	if !ok {
		cell = make(map[string]int)
		t.counts[cellID] = cell
	}

	cell[name]++

	return cell[name]
}

// Count returns the current counter without incrementing.
func (t *AttemptTable) Count(cellID, name string) int {
	return t.counts[cellID][name]
}

// Stamp returns a copy of the result with the attempt count filled in when
// the run finished; other outcomes come back unchanged, attempts are not
// exposed for them.
func (t *AttemptTable) Stamp(r m.RunResult, n int) m.RunResult {
	if r.Status != m.RunFinished {
		return r
	}

	return r.WithAttempts(n)
}
