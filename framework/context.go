package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context represents the state of a single executing test. It provides the
// error/failure/skip primitives that assertion libraries need, plus debug
// output capture. Suites wrap it in their own richer test type.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes a whole suite. The action normally just calls Context.Run
// for each top-level test group.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			// FailNow and Skip unwind by panicking with the Context
			// itself; anything else is a genuine panic in test code.
			if _, ok := r.(*Context); !ok {
				c.failed = true
				err := fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				c.errors = append(c.errors, err)
				c.env.testLogger.TestError(c.id, err)
			} else if c.failed && len(c.errors) == 0 {
				err := errors.New("test failed with no failure message")
				c.errors = append(c.errors, err)
				c.env.testLogger.TestError(c.id, err)
			}
		}
		result := TestResult{
			TestID:     c.id,
			Errors:     c.errors,
			Skipped:    c.skipped,
			SkipReason: c.skipReason,
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
		if c.skipped {
			c.env.results.Skips = append(c.env.results.Skips, result)
		}
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

// Run executes a subtest in a child context.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	if c.env.filter != nil && !c.env.filter(id) {
		return
	}
	c.env.testLogger.TestStarted(id)
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a test failure without stopping the test. It is the hook
// that lets assertion libraries (assert, require) report through us.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow stops the current test immediately.
func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

// Skip stops the current test immediately without marking it failed.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug writes to the test's captured debug output, which the test logger
// may print depending on the outcome.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
