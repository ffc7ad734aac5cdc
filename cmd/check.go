package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/drill/internal/adapter"
	"gooze.dev/pkg/drill/internal/domain"
	"gooze.dev/pkg/drill/internal/explain"
	m "gooze.dev/pkg/drill/internal/model"
)

// cellIDNamespace seeds deterministic cell ids for anonymous cells, so the
// same cell source read again maps to the same attempt counters.
var cellIDNamespace = uuid.MustParse("f2b7a4f6-3f43-49c0-9d70-1a52f2f6b3c1")

var checkPathFlag string
var checkAsyncFlag bool
var checkDebugFlag bool
var checkCellIDFlag string

// workflow is the shared check workflow; tests replace it with a fake.
var workflow domain.Workflow

const checkLongDescription = `Check the solution functions defined in one or more cells.

A cell is a fragment of Go source defining functions named solution<Exercise>.
Cells come from the given files, or from stdin where lines containing only %%
separate cells. The first argument names the exercise test module when it is
not an existing file; otherwise the module name derives from the notebook
file.

The matching test module <module>_test.go is looked up in DRILL_PATH, the
--path flag, or ./tests, in that order.`

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [module] [cell files...]",
		Short: "Run hidden tests against a cell's solution functions",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			debug := viper.GetBool(runDebugConfigKey)
			configureLogger("", debug)

			module, cellFiles := splitCheckArgs(args)

			cells, err := readCells(cmd.InOrStdin(), cellFiles)
			if err != nil {
				return err
			}

			if workflow == nil {
				workflow, err = buildCheckWorkflow(cmd)
				if err != nil {
					return err
				}
			}

			for _, cell := range cells {
				err := workflow.Check(cmd.Context(), domain.CheckArgs{
					Module:   module,
					Notebook: viper.GetString(notebookConfigKey),
					TestDir:  m.Path(viper.GetString(testsPathConfigKey)),
					CellID:   cell.id,
					Cell:     cell.src,
					Debug:    debug,
					Async:    viper.GetBool(runAsyncConfigKey),
				})
				if err != nil {
					return err
				}
			}

			return nil
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&checkPathFlag, pathFlagName, "p", viper.GetString(testsPathConfigKey), "directory containing the exercise test modules")
	bindFlagToConfig(cmd.Flags().Lookup(pathFlagName), testsPathConfigKey)

	cmd.Flags().BoolVar(&checkAsyncFlag, asyncFlagName, viper.GetBool(runAsyncConfigKey), "run each candidate's tests on a worker goroutine")
	bindFlagToConfig(cmd.Flags().Lookup(asyncFlagName), runAsyncConfigKey)

	cmd.Flags().BoolVarP(&checkDebugFlag, debugFlagName, "d", viper.GetBool(runDebugConfigKey), "keep cell errors visible and render a diagnostic panel")
	bindFlagToConfig(cmd.Flags().Lookup(debugFlagName), runDebugConfigKey)

	cmd.Flags().StringVar(&checkCellIDFlag, cellIDFlagName, "", "explicit cell id for attempt tracking (default: file path or source hash)")
}

// buildCheckWorkflow wires the interpreter session, runner and UI into one
// workflow. The explainer is attached only when an API key is configured;
// failing to build it disables explanations instead of aborting the check.
func buildCheckWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	session, err := adapter.NewInterpSession(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to start interpreter session: %w", err)
	}

	driver := domain.NewDriver(adapter.NewInterpRunner())
	orchestrator := domain.NewOrchestrator(session, driver)

	var explainer explain.Explainer

	if key := viper.GetString(explainAPIKeyKey); key != "" {
		genAI, err := explain.NewGenAIExplainer(cmd.Context(), key, viper.GetString(explainModelKey))
		if err != nil {
			slog.Warn("explainer unavailable", "error", err)
		} else {
			explainer = genAI
		}
	}

	return domain.NewWorkflow(
		orchestrator,
		adapter.NewFileSolutionReader(),
		ui,
		explainer,
		viper.GetInt(revealAttemptsKey),
	), nil
}

// splitCheckArgs separates the optional module token from the cell file
// arguments. A first argument that exists on disk is a cell file, not a
// module name.
func splitCheckArgs(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}

	if _, err := os.Stat(args[0]); err == nil {
		return "", args
	}

	return args[0], args[1:]
}

type cell struct {
	id  string
	src string
}

// readCells loads cell sources from the given files, or from stdin split on
// %% separator lines when no files are given. Anonymous cells get a
// deterministic id derived from their source, so re-reading the same cell
// keeps its attempt counters.
func readCells(stdin io.Reader, files []string) ([]cell, error) {
	if len(files) > 0 {
		cells := make([]cell, 0, len(files))

		for _, file := range files {
			src, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to read cell file: %w", err)
			}

			cells = append(cells, cell{id: cellID(file, src), src: string(src)})
		}

		return cells, nil
	}

	src, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read cells from stdin: %w", err)
	}

	var cells []cell

	for _, chunk := range splitCells(string(src)) {
		cells = append(cells, cell{id: cellID("", []byte(chunk)), src: chunk})
	}

	return cells, nil
}

// cellID picks the cell identity: the explicit flag, the file path, or a
// deterministic UUID over the cell source.
func cellID(file string, src []byte) string {
	if checkCellIDFlag != "" {
		return checkCellIDFlag
	}

	if file != "" {
		return file
	}

	return uuid.NewSHA1(cellIDNamespace, src).String()
}

// splitCells splits a stdin stream on lines containing only %%. Empty cells
// are dropped.
func splitCells(src string) []string {
	var cells []string
	var current strings.Builder

	flush := func() {
		if chunk := current.String(); strings.TrimSpace(chunk) != "" {
			cells = append(cells, chunk)
		}

		current.Reset()
	}

	for _, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "%%" {
			flush()
			continue
		}

		current.WriteString(line)
		current.WriteString("\n")
	}

	flush()

	return cells
}
