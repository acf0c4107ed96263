package authtests

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efantasy/account-contract-tests/account"
	"github.com/efantasy/account-contract-tests/mailbox"
)

func DoAccountVerificationTests(t *T) {
	// Registers a fresh account and fetches the token from its welcome
	// email. Skips the test when the environment has no local mailbox.
	registerAndAwaitToken := func(t *T, client *account.Client) (*account.Session, mailbox.Token) {
		t.RequireLocalMailbox()
		sentAt := time.Now()
		a := t.RegisterAccount(client)

		token, err := t.NewPoller().Await(a.Username, "welcome", sentAt)
		require.NoError(t, err, "no fresh welcome email for %q", a.Username)
		require.Equal(t, a.Username, token.UserID,
			"welcome email token identifies the wrong user")
		return a, token
	}

	t.Run("email can be verified", func(t *T) {
		client := t.NewClient()
		a, token := registerAndAwaitToken(t, client)

		assert.NoError(t, client.VerifyEmail(a, token.Value))
	})

	t.Run("verifying twice is a no-op", func(t *T) {
		client := t.NewClient()
		a, token := registerAndAwaitToken(t, client)

		require.NoError(t, client.VerifyEmail(a, token.Value))
		assert.NoError(t, client.VerifyEmail(a, token.Value),
			"second verification with the same token must also succeed")
	})

	t.Run("bogus token is rejected", func(t *T) {
		client := t.NewClient()
		a := t.RegisterAccount(client)

		err := client.VerifyEmail(a, "random_token_that_is_wrong")
		assert.True(t, account.IsRejection(err),
			"verification with a made-up token should be rejected, got: %v", err)
	})
}
