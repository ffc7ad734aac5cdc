// Package adapter provides the interpreter-backed session, the test runner
// and its hook objects for exercise checking.
package adapter

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Session is the host interactive-session contract: it executes cell source,
// keeps the names the cell defined, and owns the error-display hook shown to
// the learner when a cell fails.
type Session interface {
	// Execute evaluates cell source in the session. Names defined by the
	// cell stay resolvable afterwards. On failure the session's error
	// display hook fires (unless suppressed) and the error is returned.
	Execute(ctx context.Context, src string) error

	// Lookup resolves a name defined in the session to its live value.
	Lookup(name string) (reflect.Value, bool)

	// QuietErrors suppresses the error display hook and returns a restore
	// func. With debug true suppression is skipped; the restore func is
	// still valid. Callers must defer the restore.
	QuietErrors(debug bool) func()
}

// InterpSession is a Session backed by a long-lived yaegi interpreter.
type InterpSession struct {
	mu         sync.Mutex
	interp     *interp.Interpreter
	displayErr func(error)
	errOut     io.Writer
}

// NewInterpSession constructs a session writing interpreted output to stdout
// and stderr. The default error display hook prints to stderr.
func NewInterpSession(stdout, stderr io.Writer) (*InterpSession, error) {
	i := interp.New(interp.Options{Stdout: stdout, Stderr: stderr})

	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib symbols: %w", err)
	}

	s := &InterpSession{interp: i, errOut: stderr}
	s.displayErr = s.printError

	return s, nil
}

func (s *InterpSession) printError(err error) {
	fmt.Fprintf(s.errOut, "cell execution failed: %v\n", err)
}

// Execute evaluates cell source in the long-lived interpreter.
func (s *InterpSession) Execute(ctx context.Context, src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.interp.EvalWithContext(ctx, src); err != nil {
		if s.displayErr != nil {
			s.displayErr(err)
		}

		return err
	}

	return nil
}

// Lookup resolves a top-level name defined by previously executed cells.
func (s *InterpSession) Lookup(name string) (reflect.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.interp.Eval(name)
	if err != nil || !v.IsValid() {
		return reflect.Value{}, false
	}

	return v, true
}

// QuietErrors swaps the error display hook for a no-op and returns a restore
// func that always reinstates the previous hook. In debug mode the hook is
// left untouched so failures stay visible.
func (s *InterpSession) QuietErrors(debug bool) func() {
	s.mu.Lock()
	prev := s.displayErr

	if !debug {
		s.displayErr = func(error) {}
	}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.displayErr = prev
		s.mu.Unlock()
	}
}
