package authtests

import (
	"github.com/efantasy/account-contract-tests/config"
	"github.com/efantasy/account-contract-tests/framework"
	"github.com/efantasy/account-contract-tests/mailbox"
)

// RunTestSuite runs the whole account-lifecycle suite against the given
// environment. inbox may be nil when the environment has no local
// mailbox; tests that need one skip themselves via RequireLocalMailbox.
func RunTestSuite(
	cfg config.Environment,
	inbox mailbox.Inbox,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{
			context: c,
			env:     &environment{cfg: cfg, inbox: inbox},
		}

		t.Run("basic auth", DoBasicAuthTests)
		t.Run("account verification", DoAccountVerificationTests)
		t.Run("password reset", DoPasswordResetTests)
	})
}
