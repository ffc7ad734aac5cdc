package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "gooze.dev/pkg/drill/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayDebug implements UI.
func (s *SimpleUI) DisplayDebug(ctx context.Context, module string, moduleFile m.Path, results []m.RunResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Printf("\nDebug information\n")
	s.cmd.Printf("module: %s\n", module)
	s.cmd.Printf("module file: %s\n", moduleFile)
	s.cmd.Printf("results: %d\n", len(results))
	s.cmd.Print(renderDebugTable(results))

	return nil
}

// DisplayResult implements UI.
func (s *SimpleUI) DisplayResult(ctx context.Context, result m.RunResult, view ResultView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Println(renderResult(result, view))

	return nil
}

// renderDebugTable tabulates per-result status, attempts and test counts.
func renderDebugTable(results []m.RunResult) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"#", "Candidate", "Status", "Attempts", "Tests", "Errors"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	for i, result := range results {
		name := ""
		if result.Candidate != nil {
			name = result.Candidate.Name
		}

		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			name,
			result.Status.String(),
			fmt.Sprintf("%d", result.Attempts),
			fmt.Sprintf("%d", len(result.Tests)),
			fmt.Sprintf("%d", len(result.Errs)),
		})
	}

	table.Render()

	return buf.String()
}
