package domain

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	m "gooze.dev/pkg/drill/internal/model"
)

const twoCandidateCell = `func solutionAdd(a, b int) int {
	return a + b
}

func solutionSub(a, b int) int {
	return a - b
}
`

func twoCandidateSession() *fakeSession {
	return &fakeSession{vals: map[string]reflect.Value{
		"solutionAdd": reflect.ValueOf(func(a, b int) int { return a + b }),
		"solutionSub": reflect.ValueOf(func(a, b int) int { return a - b }),
	}}
}

func TestOrchestrator_Check_OneResultPerCandidate(t *testing.T) {
	session := twoCandidateSession()
	runner := &fakeRunner{exit: m.ExitOK}
	orch := NewOrchestrator(session, NewDriver(runner))

	results := orch.Check(context.Background(), "tests/arithmetic_test.go", "cell-1", twoCandidateCell, false)

	require.Len(t, results, 2)
	require.Equal(t, "Add", results[0].Candidate.Name)
	require.Equal(t, "Sub", results[1].Candidate.Name)
	require.Equal(t, 2, runner.calls)

	for _, r := range results {
		require.Equal(t, m.RunFinished, r.Status)
		require.Equal(t, 1, r.Attempts)
	}
}

func TestOrchestrator_Check_AttemptsAccumulateAcrossInvocations(t *testing.T) {
	session := twoCandidateSession()
	runner := &fakeRunner{exit: m.ExitOK}
	orch := NewOrchestrator(session, NewDriver(runner))

	orch.Check(context.Background(), "tests/arithmetic_test.go", "cell-1", twoCandidateCell, false)
	results := orch.Check(context.Background(), "tests/arithmetic_test.go", "cell-1", twoCandidateCell, false)

	require.Equal(t, 2, results[0].Attempts)
	require.Equal(t, 2, results[1].Attempts)

	// A different cell id tracks its own counters.
	other := orch.Check(context.Background(), "tests/arithmetic_test.go", "cell-2", twoCandidateCell, false)
	require.Equal(t, 1, other[0].Attempts)
}

func TestOrchestrator_Check_AbnormalRunsLeaveAttemptsUnstamped(t *testing.T) {
	session := twoCandidateSession()
	runner := &fakeRunner{exit: m.ExitNoTestsCollected}
	orch := NewOrchestrator(session, NewDriver(runner))

	results := orch.Check(context.Background(), "tests/arithmetic_test.go", "cell-1", twoCandidateCell, false)

	require.Len(t, results, 2)
	require.Equal(t, m.RunNoTestFound, results[0].Status)
	require.Equal(t, 0, results[0].Attempts)

	// The counter still advanced; the next finished run sees it.
	require.Equal(t, 1, orch.attempts.Count("cell-1", "Add"))
}

func TestOrchestrator_Check_CellExecutionFailure(t *testing.T) {
	session := twoCandidateSession()
	session.execErr = errors.New("undefined: helper")
	runner := &fakeRunner{exit: m.ExitOK}
	orch := NewOrchestrator(session, NewDriver(runner))

	results := orch.Check(context.Background(), "tests/arithmetic_test.go", "cell-1", twoCandidateCell, false)

	require.Len(t, results, 1)
	require.Equal(t, m.RunCompileError, results[0].Status)
	require.Equal(t, twoCandidateCell, results[0].CellSource)
	require.ErrorContains(t, results[0].Errs[0], "undefined: helper")
	require.Zero(t, runner.calls)
}

func TestOrchestrator_Check_NoCandidateDefined(t *testing.T) {
	session := &fakeSession{vals: map[string]reflect.Value{}}
	runner := &fakeRunner{exit: m.ExitOK}
	orch := NewOrchestrator(session, NewDriver(runner))

	results := orch.Check(context.Background(), "tests/arithmetic_test.go", "cell-1", "func helper() {}\n", false)

	require.Len(t, results, 1)
	require.Equal(t, m.RunSolutionMissing, results[0].Status)
	require.ErrorIs(t, results[0].Errs[0], m.ErrFunctionNotFound)
	require.Zero(t, runner.calls)
}
