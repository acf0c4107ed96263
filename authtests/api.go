// Package authtests is the account-lifecycle test suite. It exercises
// registration, login/logout, session expiry, email verification, and
// password reset against a deployed instance of the service.
package authtests

import (
	"fmt"

	"github.com/stretchr/testify/require"

	"github.com/efantasy/account-contract-tests/account"
	"github.com/efantasy/account-contract-tests/config"
	"github.com/efantasy/account-contract-tests/framework"
	"github.com/efantasy/account-contract-tests/mailbox"
)

type environment struct {
	cfg   config.Environment
	inbox mailbox.Inbox
}

// T represents a test or subtest in the suite.
//
// It implements the same basic surface as Go's testing.T, but outside the
// Go test runner: this suite runs as a standalone binary against whatever
// environment it is pointed at. The assert and require packages work
// against a *T directly. On top of that it carries the suite environment
// and constructors for the pieces a test needs (API client, poller).
type T struct {
	context *framework.Context
	env     *environment
}

// Run runs a subtest, equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Errorf is called by assertions to record a failure without exiting.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions (the require package) to fail and
// immediately exit the test.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Debug logs output that the test logger shows depending on the outcome
// and the -debug flags.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

func (t *T) Environment() config.Environment {
	return t.env.cfg
}

// RequireLocalMailbox skips the test unless the target environment has a
// filesystem inbox to observe. In hosted environments the verification
// emails land in a channel this harness cannot see, so mailbox-dependent
// tests cannot run there.
func (t *T) RequireLocalMailbox() {
	if !t.env.cfg.LocalMailbox {
		t.context.SkipWithReason(fmt.Sprintf(
			"environment %q has no observable mailbox", t.env.cfg.Name))
	}
}

// NewClient creates an API client for the target environment, logging
// through this test's debug capture.
func (t *T) NewClient() *account.Client {
	return account.NewClient(t.env.cfg.APIBaseURL, t.DebugLogger())
}

// NewPoller creates a verification poller tuned per the environment
// config.
func (t *T) NewPoller() *mailbox.Poller {
	p := t.env.cfg.Poll
	return &mailbox.Poller{
		Inbox:       t.env.inbox,
		Attempts:    p.Attempts,
		SettleDelay: p.SettleDelay,
		Backoff:     p.Backoff,
		Epsilon:     p.Epsilon,
		Log:         t.DebugLogger(),
	}
}

// RegisterAccount registers a fresh account with a random identity and
// returns its (unauthenticated) session, failing the test if
// registration is rejected.
func (t *T) RegisterAccount(client *account.Client) *account.Session {
	username := RandomUsername()
	s, err := client.Register(username, RandomEmail(), RandomPassword())
	require.NoError(t, err, "could not register account %q", username)
	t.Debug("registered account %q", s.Username)
	return s
}
