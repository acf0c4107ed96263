package authtests

import (
	"strings"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efantasy/account-contract-tests/account"
)

func DoBasicAuthTests(t *T) {
	t.Run("register then login", func(t *T) {
		client := t.NewClient()
		a := t.RegisterAccount(client)

		require.NoError(t, a.Login())

		authenticated, err := a.CheckAuthenticated()
		require.NoError(t, err)
		assert.True(t, authenticated, "session should be authenticated after login")
	})

	t.Run("wrong password is rejected", func(t *T) {
		client := t.NewClient()
		a := t.RegisterAccount(client)

		impostor := account.NewSession(client, a.Username, a.Email, RandomPassword())
		err := impostor.Login()
		require.Error(t, err)
		assert.True(t, account.IsRejection(err), "expected a service rejection, got: %v", err)

		authenticated, err := impostor.CheckAuthenticated()
		require.NoError(t, err)
		assert.False(t, authenticated, "failed login must leave the session unauthenticated")
	})

	t.Run("logout clears authentication", func(t *T) {
		client := t.NewClient()
		a := t.RegisterAccount(client)

		require.NoError(t, a.Login())
		require.NoError(t, a.Logout())

		authenticated, err := a.CheckAuthenticated()
		require.NoError(t, err)
		assert.False(t, authenticated, "session should be unauthenticated after logout")
	})

	t.Run("password length is validated", func(t *T) {
		client := t.NewClient()

		_, err := client.Register(RandomUsername(), RandomEmail(), "abc")
		assert.True(t, account.IsRejection(err), "too-short password should be rejected, got: %v", err)

		_, err = client.Register(RandomUsername(), RandomEmail(), strings.Repeat("a", 500))
		assert.True(t, account.IsRejection(err), "too-long password should be rejected, got: %v", err)
	})

	t.Run("duplicate username is rejected", func(t *T) {
		client := t.NewClient()
		a := t.RegisterAccount(client)

		_, err := client.Register(a.Username, RandomEmail(), RandomPassword())
		assert.True(t, account.IsRejection(err), "duplicate username should be rejected, got: %v", err)
	})

	t.Run("duplicate email is rejected", func(t *T) {
		client := t.NewClient()
		a := t.RegisterAccount(client)

		_, err := client.Register(RandomUsername(), a.Email, RandomPassword())
		assert.True(t, account.IsRejection(err), "duplicate email should be rejected, got: %v", err)
	})

	t.Run("welcome email is delivered", func(t *T) {
		t.RequireLocalMailbox()
		client := t.NewClient()

		sentAt := time.Now()
		a := t.RegisterAccount(client)

		token, err := t.NewPoller().Await(a.Username, "welcome", sentAt)
		require.NoError(t, err, "no fresh welcome email for %q", a.Username)
		assert.Equal(t, a.Username, token.UserID)
	})
}
