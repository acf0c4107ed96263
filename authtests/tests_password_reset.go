package authtests

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efantasy/account-contract-tests/account"
)

func DoPasswordResetTests(t *T) {
	t.Run("reset yields a usable new password", func(t *T) {
		t.RequireLocalMailbox()
		client := t.NewClient()
		a := t.RegisterAccount(client)
		require.NoError(t, a.Login())

		sentAt := time.Now()
		require.NoError(t, client.RequestPasswordReset(a))

		token, err := t.NewPoller().Await(a.Username, "reset_password", sentAt)
		require.NoError(t, err, "no fresh reset email for %q", a.Username)
		require.Equal(t, a.Username, token.UserID)

		newPassword := RandomPassword()
		require.NoError(t, client.ConfirmPasswordReset(a, token.Value, newPassword))

		// The session still holds the old password; it must no longer
		// work.
		err = a.Login()
		assert.True(t, account.IsRejection(err),
			"old password should be rejected after a reset, got: %v", err)

		a.UpdatePassword(newPassword)
		require.NoError(t, a.Login(), "login with the new password failed")

		authenticated, err := a.CheckAuthenticated()
		require.NoError(t, err)
		assert.True(t, authenticated)
	})

	t.Run("reset confirmation with a bogus token is rejected", func(t *T) {
		client := t.NewClient()
		a := t.RegisterAccount(client)

		require.NoError(t, client.RequestPasswordReset(a))

		err := client.ConfirmPasswordReset(a, "random_token_that_is_wrong", RandomPassword())
		assert.True(t, account.IsRejection(err),
			"reset with a made-up token should be rejected, got: %v", err)
	})
}
