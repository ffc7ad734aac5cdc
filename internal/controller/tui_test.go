package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	m "gooze.dev/pkg/drill/internal/model"
)

func TestNeedsPagination(t *testing.T) {
	require.False(t, needsPagination("one line", 24))
	require.False(t, needsPagination(strings.Repeat("line\n", 22), 24))
	require.True(t, needsPagination(strings.Repeat("line\n", 40), 24))
}

func TestTUI_ShortResultPrintsDirectly(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd, _ := newTestCommand()
	tui := NewTUI(buf, NewSimpleUI(cmd))

	result := m.RunResult{
		Candidate: &m.Candidate{Name: "Add"},
		Status:    m.RunFinished,
		Tests:     []m.TestCaseResult{{Name: "arithmetic::TestAdd", Outcome: m.TestPass}},
	}

	require.NoError(t, tui.DisplayResult(context.Background(), result, ResultView{}))
	require.Contains(t, buf.String(), "1/1 tests passed")
}

func TestTUI_DebugDelegatesToSimpleUI(t *testing.T) {
	cmd, simpleOut := newTestCommand()
	tui := NewTUI(&bytes.Buffer{}, NewSimpleUI(cmd))

	require.NoError(t, tui.DisplayDebug(context.Background(), "arithmetic", "tests/arithmetic_test.go", nil))
	require.Contains(t, simpleOut.String(), "Debug information")
}

func TestTUI_CancelledContext(t *testing.T) {
	cmd, _ := newTestCommand()
	tui := NewTUI(&bytes.Buffer{}, NewSimpleUI(cmd))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, tui.DisplayResult(ctx, m.RunResult{}, ResultView{}))
}
