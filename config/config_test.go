package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocalDefaults(t *testing.T) {
	env, err := Load("local")
	require.NoError(t, err)

	assert.Equal(t, "local", env.Name)
	assert.Equal(t, "api.efantasy.localhost", env.APIBaseURL)
	assert.True(t, env.LocalMailbox)
	assert.Equal(t, "/Users/inbox", env.InboxPath)
	assert.Equal(t, 3, env.Poll.Attempts)
	assert.Equal(t, time.Second, env.Poll.SettleDelay)
	assert.Equal(t, 3*time.Second, env.Poll.Backoff)
	assert.Equal(t, 15*time.Second, env.Poll.Epsilon)
}

func TestLoadHostedEnvironmentHasNoMailbox(t *testing.T) {
	for _, name := range []string{"dev", "stage", "prod"} {
		env, err := Load(name)
		require.NoError(t, err)
		assert.False(t, env.LocalMailbox, "environment %q", name)
		assert.NotEmpty(t, env.APIBaseURL)
	}
}

func TestLoadIsCaseInsensitive(t *testing.T) {
	env, err := Load("LOCAL")
	require.NoError(t, err)
	assert.Equal(t, "local", env.Name)
}

func TestLoadEnvironmentVariableOverrides(t *testing.T) {
	t.Setenv("EFANTASY_POLL_EPSILON", "30s")
	t.Setenv("EFANTASY_ENVIRONMENTS_LOCAL_API_URL", "api.other.localhost")

	env, err := Load("local")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, env.Poll.Epsilon)
	assert.Equal(t, "api.other.localhost", env.APIBaseURL)
}

func TestLoadUnknownEnvironment(t *testing.T) {
	_, err := Load("sandbox")
	assert.Error(t, err)
}
