// Package domain contains the core exercise-checking workflow and logic.
package domain

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"

	"gooze.dev/pkg/drill/internal/adapter"
	m "gooze.dev/pkg/drill/internal/model"
)

// solutionPrefix marks learner functions that are candidates for testing,
// e.g. solutionAdd for the Add exercise.
const solutionPrefix = "solution"

// ExtractCandidates parses cell source, collects every top-level function
// whose name carries the solution prefix, and cross-references the session
// namespace for the live implementation. Candidates come back in declaration
// order; an empty slice is not an error, the caller decides what a missing
// solution means.
//
// The cell already executed when this runs, so a parse failure here is a
// defect, not a learner error.
func ExtractCandidates(session adapter.Session, cellSrc string) ([]m.Candidate, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "cell.go", wrapCell(cellSrc), parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cell source: %w", err)
	}

	var candidates []m.Candidate

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil {
			continue
		}

		stem := strings.TrimPrefix(fn.Name.Name, solutionPrefix)
		if stem == fn.Name.Name || stem == "" {
			continue
		}

		impl, ok := session.Lookup(fn.Name.Name)
		if !ok {
			continue
		}

		cand := m.Candidate{Name: stem, Impl: impl, Source: renderFunc(fset, fn)}
		if !cand.Callable() {
			continue
		}

		candidates = append(candidates, cand)
	}

	return candidates, nil
}

// wrapCell prefixes a package clause when the cell is bare statements and
// declarations, the form the interpreter accepts.
func wrapCell(src string) string {
	trimmed := strings.TrimSpace(src)
	if strings.HasPrefix(trimmed, "package ") || strings.HasPrefix(trimmed, "package\t") {
		return src
	}

	return "package cell\n\n" + src
}

// renderFunc re-renders the declaration canonically; internal whitespace the
// learner used is not preserved verbatim.
func renderFunc(fset *token.FileSet, fn *ast.FuncDecl) string {
	var buf bytes.Buffer

	if err := printer.Fprint(&buf, fset, fn); err != nil {
		return ""
	}

	return strings.TrimRight(buf.String(), "\n")
}
