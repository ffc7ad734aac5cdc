package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "gooze.dev/pkg/drill/internal/model"
)

// TUI implements UI with a Bubble Tea pager for long result blocks. Short
// output is printed directly.
type TUI struct {
	output io.Writer
	debug  *SimpleUI
}

// NewTUI creates a new TUI. Debug panels always print plainly, so the TUI
// delegates those to the simple implementation.
func NewTUI(output io.Writer, debug *SimpleUI) *TUI {
	return &TUI{output: output, debug: debug}
}

// DisplayDebug implements UI.
func (p *TUI) DisplayDebug(ctx context.Context, module string, moduleFile m.Path, results []m.RunResult) error {
	return p.debug.DisplayDebug(ctx, module, moduleFile, results)
}

// DisplayResult implements UI.
func (p *TUI) DisplayResult(ctx context.Context, result m.RunResult, view ResultView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := renderResult(result, view)
	width, height := p.size()

	if !needsPagination(content, height) {
		_, err := fmt.Fprintln(p.output, content)
		return err
	}

	model := newPagerModel(content, width, height)

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func (p *TUI) size() (width, height int) {
	width, height = 80, 24

	if f, ok := p.output.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	return width, height
}

func needsPagination(content string, height int) bool {
	return strings.Count(content, "\n")+1 > height
}

// pagerModel scrolls one rendered result block in a viewport.
type pagerModel struct {
	view viewport.Model
}

func newPagerModel(content string, width, height int) pagerModel {
	vp := viewport.New(width, height-1)
	vp.SetContent(content)

	return pagerModel{view: vp}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		}
	case tea.WindowSizeMsg:
		pm.view.Width = msg.Width
		pm.view.Height = msg.Height - 1
	}

	var cmd tea.Cmd
	pm.view, cmd = pm.view.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	return pm.view.View() + "\n(q to close)"
}
