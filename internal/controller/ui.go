// Package controller renders exercise check results for the learner.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "gooze.dev/pkg/drill/internal/model"
)

// ResultView carries the presentation decisions the workflow made for one
// result: the reference solution (possibly empty), whether it may be
// revealed, how many failed attempts remain until disclosure, and an
// optional AI explanation.
type ResultView struct {
	Solution     string
	Reveal       bool
	AttemptsLeft int
	Explanation  string
}

// UI displays check results. Implementations differ in output method
// (simple print, paged TUI); none contain control logic.
type UI interface {
	// DisplayDebug renders the diagnostic panel shown before results in
	// debug mode.
	DisplayDebug(ctx context.Context, module string, moduleFile m.Path, results []m.RunResult) error

	// DisplayResult renders one candidate's result card plus the gated
	// solution block.
	DisplayResult(ctx context.Context, result m.RunResult, view ResultView) error
}

// NewUI picks the presentation mode: a paged TUI when attached to a
// terminal, a plain printer otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	simple := NewSimpleUI(cmd)

	if !tty {
		return simple
	}

	return NewTUI(cmd.OutOrStdout(), simple)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
