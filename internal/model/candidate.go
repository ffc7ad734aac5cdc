package model

import "reflect"

// Path represents a file system path.
type Path string

// Candidate represents a learner-defined solution function extracted from a
// cell. Name carries the bare stem with the solution prefix stripped, Impl is
// the live callable looked up in the session namespace and Source the
// canonical rendering of its declaration (empty when unavailable). A
// Candidate is immutable once constructed.
type Candidate struct {
	Name   string
	Impl   reflect.Value
	Source string
}

// Callable reports whether the candidate holds a live function value.
func (c Candidate) Callable() bool {
	return c.Impl.IsValid() && c.Impl.Kind() == reflect.Func
}
