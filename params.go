package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/efantasy/account-contract-tests/config"
	"github.com/efantasy/account-contract-tests/framework"
)

type commandParams struct {
	envName    string
	inboxPath  string
	filters    framework.RegexFilters
	keepEmails bool
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.envName, "env", "local",
		"environment to run against ("+strings.Join(config.EnvironmentNames, ", ")+")")
	fs.StringVar(&c.inboxPath, "inbox", "", "override the local inbox directory")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.keepEmails, "keep-emails", false, "skip the end-of-run inbox cleanup")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a copy-pasteable command line that re-runs exactly
// the given failed tests.
func (c commandParams) rerunCommand(failures []framework.TestResult) string {
	var b commandBuilder
	b.add(os.Args[0], "-env", c.envName)
	if c.inboxPath != "" {
		b.add("-inbox", c.inboxPath)
	}
	for _, f := range failures {
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	return b.String()
}
