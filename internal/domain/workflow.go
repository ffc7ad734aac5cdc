package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"gooze.dev/pkg/drill/internal/adapter"
	"gooze.dev/pkg/drill/internal/controller"
	"gooze.dev/pkg/drill/internal/explain"
	m "gooze.dev/pkg/drill/internal/model"
)

// testPathEnv overrides the test directory ahead of flags and defaults.
const testPathEnv = "DRILL_PATH"

// defaultTestDir is the fallback test directory relative to the working
// directory.
const defaultTestDir = "tests"

// CheckArgs carries one invocation's configuration.
type CheckArgs struct {
	// Module is the explicit module-name token; empty means infer from
	// Notebook.
	Module string
	// Notebook is the ambient notebook file name (extension trimmed for the
	// module name); empty plus empty Module is a fatal configuration error.
	Notebook string
	// TestDir is the flag-provided test directory override.
	TestDir m.Path
	// CellID identifies the cell across repeated invocations.
	CellID string
	// Cell is the raw cell source.
	Cell string
	// Debug disables error suppression and renders a diagnostic panel
	// before results.
	Debug bool
	// Async offloads each candidate run to a worker goroutine.
	Async bool
}

// Workflow coordinates one check invocation end to end: resolve the test
// module, run the orchestrator, render results with the gated solution
// reveal.
type Workflow interface {
	Check(ctx context.Context, args CheckArgs) error
}

type workflow struct {
	orchestrator *Orchestrator
	solutions    adapter.SolutionReader
	ui           controller.UI
	explainer    explain.Explainer // optional, may be nil
	revealAfter  int
}

// NewWorkflow constructs a Workflow. explainer may be nil; the workflow
// never hard-depends on it. revealAfter is the failed-attempt count after
// which the reference solution is disclosed.
func NewWorkflow(
	orchestrator *Orchestrator,
	solutions adapter.SolutionReader,
	ui controller.UI,
	explainer explain.Explainer,
	revealAfter int,
) Workflow {
	return &workflow{
		orchestrator: orchestrator,
		solutions:    solutions,
		ui:           ui,
		explainer:    explainer,
		revealAfter:  revealAfter,
	}
}

// Check implements Workflow. Configuration errors (missing module name,
// missing test module file) surface before any extraction or run.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	module, err := resolveModule(args)
	if err != nil {
		return err
	}

	moduleFile, err := resolveModuleFile(module, args.TestDir)
	if err != nil {
		return err
	}

	restore := w.orchestrator.Session().QuietErrors(args.Debug)
	defer restore()

	results := w.orchestrator.Check(ctx, moduleFile, args.CellID, args.Cell, args.Async)

	if args.Debug {
		if err := w.ui.DisplayDebug(ctx, module, moduleFile, results); err != nil {
			return err
		}
	}

	explanations := w.explainFailures(ctx, results)

	for i, result := range results {
		view := controller.ResultView{Explanation: explanations[i]}

		if result.Candidate != nil {
			solution, err := w.solutions.Solution(moduleFile, result.Candidate.Name)
			if err != nil {
				slog.Warn("failed to read reference solution", "candidate", result.Candidate.Name, "error", err)
			}

			view.Solution = solution
		}

		if result.Status == m.RunFinished {
			view.Reveal = result.Passed() || result.Attempts >= w.revealAfter
			view.AttemptsLeft = w.revealAfter - result.Attempts
		}

		if view.Solution == "" {
			view.Reveal = false
		}

		if err := w.ui.DisplayResult(ctx, result, view); err != nil {
			return err
		}
	}

	return nil
}

// explainFailures asks the optional explainer about each failed result,
// concurrently. Explanations are presentation only; a failure to explain is
// logged and rendered as absence. Returns one entry per result, "" where no
// explanation applies.
func (w *workflow) explainFailures(ctx context.Context, results []m.RunResult) []string {
	explanations := make([]string, len(results))

	if w.explainer == nil {
		return explanations
	}

	group, ctx := errgroup.WithContext(ctx)

	for i, result := range results {
		failure := finalFailure(result)
		if failure == "" {
			continue
		}

		source := ""
		if result.Candidate != nil {
			source = result.Candidate.Source
		}

		group.Go(func() error {
			text, err := w.explainer.Explain(ctx, source, failure)
			if err != nil {
				slog.Warn("explanation failed", "error", err)
				return nil
			}

			explanations[i] = text

			return nil
		})
	}

	_ = group.Wait()

	return explanations
}

// finalFailure picks the already-finalized failure text for a result, or ""
// when there is nothing to explain.
func finalFailure(r m.RunResult) string {
	if len(r.Errs) > 0 {
		return r.Errs[0].Error()
	}

	for _, t := range r.Tests {
		if t.Outcome != m.TestPass && t.Err != nil {
			return t.Err.Error()
		}
	}

	return ""
}

// resolveModule picks the module name: explicit token, else the notebook
// file with its extension trimmed, else a fatal configuration error.
func resolveModule(args CheckArgs) (string, error) {
	if args.Module != "" {
		return args.Module, nil
	}

	if args.Notebook != "" {
		base := filepath.Base(args.Notebook)
		return strings.TrimSuffix(base, filepath.Ext(base)), nil
	}

	return "", m.ErrNotebookContextMissing
}

// resolveModuleFile derives the test module path. Resolution order for the
// directory: DRILL_PATH, the flag, the default relative path. Absence of the
// file is fatal before anything runs.
func resolveModuleFile(module string, flagDir m.Path) (m.Path, error) {
	dir := string(flagDir)

	if env := os.Getenv(testPathEnv); env != "" {
		dir = env
	}

	if dir == "" {
		dir = defaultTestDir
	}

	path := m.Path(filepath.Join(dir, module+"_test.go"))

	if _, err := os.Stat(string(path)); err != nil {
		return "", fmt.Errorf("%w: %s", m.ErrTestModuleMissing, path)
	}

	return path, nil
}
