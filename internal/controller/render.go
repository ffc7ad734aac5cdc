package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	m "gooze.dev/pkg/drill/internal/model"
	"gooze.dev/pkg/drill/pkg"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)

	candidateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}).
			Background(lipgloss.AdaptiveColor{Light: "#f3f4f6", Dark: "#374151"}).
			Padding(0, 1)

	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#059669"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	solutionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#86efac")).
			Padding(0, 1)

	outputStyle = lipgloss.NewStyle().Faint(true)
)

// renderResult builds the full text block for one result. Shared by the
// simple and paged UIs.
func renderResult(result m.RunResult, view ResultView) string {
	var b strings.Builder

	b.WriteString(renderHeader(result))
	b.WriteString("\n")

	switch result.Status {
	case m.RunFinished:
		renderFinished(&b, result)
	case m.RunCompileError:
		renderError(&b, "The cell failed to execute", result)
	case m.RunSolutionMissing:
		b.WriteString(failStyle.Render("Solution function missing"))
		b.WriteString("\nPlease implement the required solution function.\n")
	case m.RunNoTestFound:
		b.WriteString(warnStyle.Render("No test found"))
		b.WriteString("\nNo test in the module matches this function's name.\n")
	case m.RunRunnerError:
		renderError(&b, "The test run failed", result)
	case m.RunUnknownError:
		renderError(&b, "Unknown error", result)
	}

	if view.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Explanation"))
		b.WriteString("\n" + view.Explanation + "\n")
	}

	b.WriteString(renderSolutionBlock(result, view))

	return b.String()
}

func renderHeader(result m.RunResult) string {
	if result.Candidate == nil {
		return headerStyle.Render("Test results") + "\n"
	}

	return headerStyle.Render("Test results for ") +
		candidateStyle.Render("solution"+result.Candidate.Name) + "\n"
}

func renderFinished(b *strings.Builder, result m.RunResult) {
	passed, total := result.Counts()

	b.WriteString(passStyle.Render(fmt.Sprintf("✔ %d/%d tests passed", passed, total)))
	b.WriteString("\n")

	if passed < total {
		b.WriteString(failStyle.Render(fmt.Sprintf("✘ %d/%d tests failed", total-passed, total)))
		b.WriteString("\n")
	}

	for _, test := range result.Tests {
		b.WriteString(renderTestCard(test))
		b.WriteString("\n")
	}
}

func renderTestCard(test m.TestCaseResult) string {
	var b strings.Builder

	switch test.Outcome {
	case m.TestPass:
		b.WriteString(passStyle.Render("✔ " + test.BareName() + " passed"))
	case m.TestFail:
		b.WriteString(failStyle.Render("✘ " + test.BareName() + " failed"))
	case m.TestError:
		b.WriteString(warnStyle.Render("⚠ " + test.BareName() + " errored"))
	}

	if test.Err != nil {
		b.WriteString("\n" + pkg.StripANSI(test.Err.Error()))
	}

	if test.Stdout != "" {
		b.WriteString("\n" + outputStyle.Render("stdout:") + "\n" + strings.TrimRight(pkg.StripANSI(test.Stdout), "\n"))
	}

	if test.Stderr != "" {
		b.WriteString("\n" + outputStyle.Render("stderr:") + "\n" + strings.TrimRight(pkg.StripANSI(test.Stderr), "\n"))
	}

	return cardStyle.Render(b.String())
}

func renderError(b *strings.Builder, title string, result m.RunResult) {
	b.WriteString(failStyle.Render(title))
	b.WriteString("\n")

	for _, err := range result.Errs {
		b.WriteString(cardStyle.Render(pkg.StripANSI(err.Error())))
		b.WriteString("\n")
	}
}

// renderSolutionBlock renders the reference solution when the reveal gate is
// open, or the attempts-remaining notice while a finished run keeps failing.
func renderSolutionBlock(result m.RunResult, view ResultView) string {
	if view.Reveal {
		return "\n" + headerStyle.Render("Proposed solution") + "\n" +
			solutionStyle.Render(view.Solution) + "\n"
	}

	if result.Status == m.RunFinished && !result.Passed() && view.AttemptsLeft > 0 {
		plural := ""
		if view.AttemptsLeft > 1 {
			plural = "s"
		}

		return "\n" + fmt.Sprintf("📝 Solution will be available after %d more failed attempt%s\n",
			view.AttemptsLeft, plural)
	}

	return ""
}
