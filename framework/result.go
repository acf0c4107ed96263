package framework

import (
	"strings"
)

// TestID identifies a test or subtest as a path of names from the root of
// the suite, e.g. "password reset/new password is usable".
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
}

// Results accumulates the outcome of a full suite run. Failures and Skips
// are subsets of Tests, kept separately so callers can report them without
// re-scanning.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skips    []TestResult
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}
