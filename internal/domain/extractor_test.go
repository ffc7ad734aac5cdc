package domain

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	execErr  error
	executed []string
	vals     map[string]reflect.Value
	quieted  bool
	restored bool
}

func (s *fakeSession) Execute(_ context.Context, src string) error {
	s.executed = append(s.executed, src)

	return s.execErr
}

func (s *fakeSession) Lookup(name string) (reflect.Value, bool) {
	v, ok := s.vals[name]

	return v, ok
}

func (s *fakeSession) QuietErrors(debug bool) func() {
	s.quieted = !debug

	return func() { s.restored = true }
}

func TestExtractCandidates(t *testing.T) {
	add := func(a, b int) int { return a + b }
	sub := func(a, b int) int { return a - b }

	session := &fakeSession{vals: map[string]reflect.Value{
		"solutionAdd": reflect.ValueOf(add),
		"solutionSub": reflect.ValueOf(sub),
		"helper":      reflect.ValueOf(func() {}),
	}}

	cell := `func solutionAdd(a, b int) int {
	return a + b
}

func helper() {}

func solutionSub(a, b int) int {
	return a - b
}
`

	candidates, err := ExtractCandidates(session, cell)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	require.Equal(t, "Add", candidates[0].Name)
	require.Equal(t, "Sub", candidates[1].Name)
	require.Contains(t, candidates[0].Source, "func solutionAdd(a, b int) int")
}

func TestExtractCandidates_PrefixAloneIsNotACandidate(t *testing.T) {
	session := &fakeSession{vals: map[string]reflect.Value{
		"solution": reflect.ValueOf(func() {}),
	}}

	candidates, err := ExtractCandidates(session, "func solution() {}\n")
	require.NoError(t, err)
	require.Empty(t, candidates)
}

func TestExtractCandidates_SkipsNamesMissingFromSession(t *testing.T) {
	// Declared in the cell but never resolvable, e.g. shadowed or removed.
	session := &fakeSession{vals: map[string]reflect.Value{}}

	candidates, err := ExtractCandidates(session, "func solutionAdd(a, b int) int { return a + b }\n")
	require.NoError(t, err)
	require.Empty(t, candidates)
}

func TestExtractCandidates_SkipsNonCallableValues(t *testing.T) {
	session := &fakeSession{vals: map[string]reflect.Value{
		"solutionAdd": reflect.ValueOf(42),
	}}

	candidates, err := ExtractCandidates(session, "func solutionAdd(a, b int) int { return a + b }\n")
	require.NoError(t, err)
	require.Empty(t, candidates)
}

func TestExtractCandidates_KeepsExplicitPackageClause(t *testing.T) {
	session := &fakeSession{vals: map[string]reflect.Value{
		"solutionAdd": reflect.ValueOf(func(a, b int) int { return a + b }),
	}}

	cell := "package scratch\n\nfunc solutionAdd(a, b int) int { return a + b }\n"

	candidates, err := ExtractCandidates(session, cell)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
}

func TestExtractCandidates_UnparsableCell(t *testing.T) {
	session := &fakeSession{vals: map[string]reflect.Value{}}

	_, err := ExtractCandidates(session, "func solutionAdd( {")
	require.Error(t, err)
}
