package domain

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/drill/internal/adapter"
	m "gooze.dev/pkg/drill/internal/model"
)

type fakeRunner struct {
	exit    m.ExitCode
	err     error
	report  func(coll adapter.Collector)
	calls   int
	keyword string
}

func (r *fakeRunner) Run(_ context.Context, _ m.Path, keyword string, _ *adapter.Injector, coll adapter.Collector) (m.ExitCode, error) {
	r.calls++
	r.keyword = keyword

	if r.report != nil {
		r.report(coll)
	}

	return r.exit, r.err
}

func addCandidate() m.Candidate {
	return m.Candidate{Name: "Add", Impl: reflect.ValueOf(func(a, b int) int { return a + b })}
}

func TestDriver_RunTests_FiltersByCandidateName(t *testing.T) {
	runner := &fakeRunner{exit: m.ExitOK}
	driver := NewDriver(runner)

	result := driver.RunTests(context.Background(), "tests/arithmetic_test.go", addCandidate(), false)

	require.Equal(t, m.RunFinished, result.Status)
	require.Equal(t, "Add", runner.keyword)
	require.Equal(t, 1, runner.calls)
}

func TestDriver_RunTests_ThreadedDeliversSameResult(t *testing.T) {
	runner := &fakeRunner{exit: m.ExitNoTestsCollected}
	driver := NewDriver(runner)

	result := driver.RunTests(context.Background(), "tests/arithmetic_test.go", addCandidate(), true)

	require.Equal(t, m.RunNoTestFound, result.Status)
	require.Equal(t, 1, runner.calls)
}

func TestClassify(t *testing.T) {
	cand := addCandidate()
	passing := []m.TestCaseResult{{Name: "arithmetic::TestAdd", Outcome: m.TestPass}}
	failing := []m.TestCaseResult{{Name: "arithmetic::TestAdd", Outcome: m.TestFail, Err: errors.New("assertion failed")}}

	tests := []struct {
		name       string
		exit       m.ExitCode
		runErr     error
		tests      []m.TestCaseResult
		testErrs   []error
		wantStatus m.RunStatus
		wantErrs   int
	}{
		{
			name:       "all tests pass",
			exit:       m.ExitOK,
			tests:      passing,
			wantStatus: m.RunFinished,
		},
		{
			name:       "assertion failures stay a finished run",
			exit:       m.ExitTestsFailed,
			tests:      failing,
			wantStatus: m.RunFinished,
		},
		{
			name:       "structural test errors outrank assertion failures",
			exit:       m.ExitTestsFailed,
			tests:      failing,
			testErrs:   []error{errors.New("setup exploded"), errors.New("teardown exploded")},
			wantStatus: m.RunRunnerError,
			wantErrs:   2,
		},
		{
			name:       "internal runner failure",
			exit:       m.ExitInternalError,
			runErr:     errors.New("module did not evaluate"),
			wantStatus: m.RunRunnerError,
			wantErrs:   1,
		},
		{
			name:       "no tests matched the candidate",
			exit:       m.ExitNoTestsCollected,
			wantStatus: m.RunNoTestFound,
			wantErrs:   1,
		},
		{
			name:       "unrecognized exit",
			exit:       m.ExitCode(99),
			wantStatus: m.RunUnknownError,
			wantErrs:   1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Classify(cand, tc.exit, tc.runErr, tc.tests, tc.testErrs)

			require.Equal(t, tc.wantStatus, result.Status)
			require.Len(t, result.Errs, tc.wantErrs)
			require.NotNil(t, result.Candidate)
			require.Equal(t, "Add", result.Candidate.Name)
		})
	}
}

func TestClassify_InternalErrorWrapsSentinel(t *testing.T) {
	result := Classify(addCandidate(), m.ExitInternalError, errors.New("boom"), nil, nil)

	require.Len(t, result.Errs, 1)
	require.ErrorIs(t, result.Errs[0], m.ErrRunnerInternal)
}

func TestClassify_NoTestFoundCarriesFunctionNotFound(t *testing.T) {
	result := Classify(addCandidate(), m.ExitNoTestsCollected, nil, nil, nil)

	require.Len(t, result.Errs, 1)
	require.ErrorIs(t, result.Errs[0], m.ErrFunctionNotFound)
}

func TestClassify_StructuralErrorsKeepCollectionOrder(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	result := Classify(addCandidate(), m.ExitTestsFailed, nil, nil, []error{first, second})

	require.Equal(t, m.RunRunnerError, result.Status)
	require.Equal(t, []error{first, second}, result.Errs)
}
