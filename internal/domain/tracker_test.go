package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "gooze.dev/pkg/drill/internal/model"
)

func TestAttemptTable_BumpIsScopedPerCellAndCandidate(t *testing.T) {
	table := NewAttemptTable()

	require.Equal(t, 1, table.Bump("cell-1", "Add"))
	require.Equal(t, 2, table.Bump("cell-1", "Add"))
	require.Equal(t, 1, table.Bump("cell-1", "Sub"))
	require.Equal(t, 1, table.Bump("cell-2", "Add"))

	require.Equal(t, 2, table.Count("cell-1", "Add"))
	require.Equal(t, 0, table.Count("cell-3", "Add"))
}

func TestAttemptTable_StampOnlyFinishedRuns(t *testing.T) {
	table := NewAttemptTable()

	finished := m.RunResult{Status: m.RunFinished}
	stamped := table.Stamp(finished, 3)
	require.Equal(t, 3, stamped.Attempts)
	require.Equal(t, 0, finished.Attempts)

	for _, status := range []m.RunStatus{
		m.RunCompileError,
		m.RunSolutionMissing,
		m.RunNoTestFound,
		m.RunRunnerError,
		m.RunUnknownError,
	} {
		r := m.RunResult{Status: status}
		require.Equal(t, 0, table.Stamp(r, 3).Attempts, "status %v", status)
	}
}
