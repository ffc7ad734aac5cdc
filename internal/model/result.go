package model

// Phase identifies the stage of a test that produced a report.
type Phase int

const (
	// PhaseSetup is the optional per-test setup stage.
	PhaseSetup Phase = iota
	// PhaseCall is the test function invocation itself.
	PhaseCall
	// PhaseTeardown is the optional per-test teardown stage.
	PhaseTeardown
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseCall:
		return "call"
	case PhaseTeardown:
		return "teardown"
	}

	return "unknown"
}

// TestCaseResult holds the collected outcome of a single test case. It is
// final once the runner moves on to the next test.
type TestCaseResult struct {
	Name    string // runner-qualified, e.g. "arithmetic::TestAdd"
	Outcome TestOutcome
	Err     error  // from the failing phase, nil on pass
	Stack   string // recovered panic stack, empty on pass
	Stdout  string
	Stderr  string
	Report  string // raw report line for the failing phase
}

// BareName returns the test name without the module qualifier.
func (t TestCaseResult) BareName() string {
	for i := len(t.Name) - 1; i > 0; i-- {
		if t.Name[i] == ':' {
			return t.Name[i+1:]
		}
	}

	return t.Name
}

// RunResult is the run-level record for one candidate. Tests is populated if
// and only if Status is RunFinished; Errs is populated if and only if Status
// is one of the error statuses. Attempts stays 0 until the tracker stamps it.
// CellSource is populated only on compile errors.
type RunResult struct {
	Candidate  *Candidate
	Status     RunStatus
	Tests      []TestCaseResult
	Errs       []error
	Attempts   int
	CellSource string
}

// WithAttempts returns a copy of the result with Attempts set, preserving
// all other fields. The receiver is not mutated.
func (r RunResult) WithAttempts(n int) RunResult {
	r.Attempts = n
	return r
}

// Passed reports whether the run finished with every test passing.
func (r RunResult) Passed() bool {
	if r.Status != RunFinished || len(r.Tests) == 0 {
		return false
	}

	for _, t := range r.Tests {
		if t.Outcome != TestPass {
			return false
		}
	}

	return true
}

// Counts returns the number of passed tests and the total test count.
func (r RunResult) Counts() (passed, total int) {
	total = len(r.Tests)

	for _, t := range r.Tests {
		if t.Outcome == TestPass {
			passed++
		}
	}

	return passed, total
}
