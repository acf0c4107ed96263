// Package config resolves the named target environments the harness can
// run against. Settings come from built-in defaults, an optional .env
// file, and EFANTASY_-prefixed environment variables, in increasing order
// of precedence. The core packages never read configuration themselves;
// everything they need is passed in explicitly.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvironmentNames lists the valid values for the -env flag.
var EnvironmentNames = []string{"local", "dev", "stage", "prod"}

// PollSettings tunes the verification poller. Epsilon is the staleness
// window around the triggering request's send time; emails whose
// timestamp falls outside it are treated as leftovers from another run.
type PollSettings struct {
	Attempts    int
	SettleDelay time.Duration
	Backoff     time.Duration
	Epsilon     time.Duration
}

// Environment describes one deployment target of the account service.
type Environment struct {
	Name       string
	APIBaseURL string

	// LocalMailbox reports whether sent emails can be observed in a
	// filesystem inbox. Only the local environment has one; elsewhere
	// the verification-email channel is not observable by this harness.
	LocalMailbox bool
	InboxPath    string

	Poll PollSettings
}

// Load resolves the environment with the given name.
func Load(name string) (Environment, error) {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("efantasy")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environments.local.api_url", "api.efantasy.localhost")
	v.SetDefault("environments.dev.api_url", "api.dev.int.efantasy.com")
	v.SetDefault("environments.stage.api_url", "api.stage.int.efantasy.com")
	v.SetDefault("environments.prod.api_url", "api.efantasy.com")

	v.SetDefault("inbox.path", "/Users/inbox")

	v.SetDefault("poll.attempts", 3)
	v.SetDefault("poll.settle_delay", "1s")
	v.SetDefault("poll.backoff", "3s")
	v.SetDefault("poll.epsilon", "15s")

	name = strings.ToLower(name)
	if !knownEnvironment(name) {
		return Environment{}, fmt.Errorf("unknown environment %q (expected one of %s)",
			name, strings.Join(EnvironmentNames, ", "))
	}

	env := Environment{
		Name:         name,
		APIBaseURL:   v.GetString("environments." + name + ".api_url"),
		LocalMailbox: name == "local",
		InboxPath:    v.GetString("inbox.path"),
		Poll: PollSettings{
			Attempts:    v.GetInt("poll.attempts"),
			SettleDelay: v.GetDuration("poll.settle_delay"),
			Backoff:     v.GetDuration("poll.backoff"),
			Epsilon:     v.GetDuration("poll.epsilon"),
		},
	}
	return env, nil
}

func knownEnvironment(name string) bool {
	for _, n := range EnvironmentNames {
		if n == name {
			return true
		}
	}
	return false
}
