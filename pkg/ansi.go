// Package pkg is a package that provides utilities for drill.
package pkg

import "regexp"

var ansiEscape = regexp.MustCompile(`\x1b(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// StripANSI removes ANSI escape sequences from text. Captured test output may
// carry terminal colouring that would garble the rendered result cards.
func StripANSI(text string) string {
	return ansiEscape.ReplaceAllString(text, "")
}
