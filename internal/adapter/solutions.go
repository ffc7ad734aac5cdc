package adapter

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"strings"

	m "gooze.dev/pkg/drill/internal/model"
)

// referencePrefix names the instructor-written reference implementations
// kept inside the test module, e.g. referenceAdd for the Add exercise.
const referencePrefix = "reference"

// SolutionReader extracts reference solution code from a test module for the
// reveal flow.
type SolutionReader interface {
	// Solution returns the rendered source of the reference implementation
	// for the named candidate, or "" when the module carries none.
	Solution(modulePath m.Path, name string) (string, error)
}

// FileSolutionReader reads reference solutions from the test module file on
// disk.
type FileSolutionReader struct{}

// NewFileSolutionReader constructs a FileSolutionReader.
func NewFileSolutionReader() *FileSolutionReader {
	return &FileSolutionReader{}
}

// Solution implements SolutionReader.
func (sr *FileSolutionReader) Solution(modulePath m.Path, name string) (string, error) {
	src, err := os.ReadFile(string(modulePath))
	if err != nil {
		return "", fmt.Errorf("failed to read test module: %w", err)
	}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, string(modulePath), src, parser.SkipObjectResolution)
	if err != nil {
		return "", fmt.Errorf("failed to parse test module: %w", err)
	}

	want := referencePrefix + name

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || fn.Name.Name != want {
			continue
		}

		return renderDecl(fset, fn)
	}

	return "", nil
}

// renderDecl re-renders a declaration canonically instead of slicing the
// raw source.
func renderDecl(fset *token.FileSet, decl ast.Decl) (string, error) {
	var buf bytes.Buffer

	if err := printer.Fprint(&buf, fset, decl); err != nil {
		return "", fmt.Errorf("failed to render declaration: %w", err)
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
