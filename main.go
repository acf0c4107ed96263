package main

import (
	"fmt"
	"os"

	"github.com/efantasy/account-contract-tests/authtests"
	"github.com/efantasy/account-contract-tests/config"
	"github.com/efantasy/account-contract-tests/framework"
	"github.com/efantasy/account-contract-tests/mailbox"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg, err := config.Load(params.envName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if params.inboxPath != "" {
		cfg.InboxPath = params.inboxPath
	}

	fmt.Printf("Running account-lifecycle tests against %s (%s)\n", cfg.Name, cfg.APIBaseURL)
	printFilterDescription(params.filters)

	var inbox mailbox.Inbox
	var dirInbox *mailbox.DirInbox
	if cfg.LocalMailbox {
		dirInbox = mailbox.NewDirInbox(cfg.InboxPath)
		inbox = dirInbox
	} else {
		fmt.Println("This environment has no observable mailbox; mailbox-dependent tests will be skipped")
	}
	fmt.Println()

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := authtests.RunTestSuite(cfg, inbox, params.filters.AsFilter, testLogger)

	// Bulk cleanup runs once, strictly after every poll has finished.
	if dirInbox != nil && !params.keepEmails {
		if err := dirInbox.Purge(); err != nil {
			fmt.Fprintf(os.Stderr, "inbox cleanup failed: %s\n", err)
		}
	}

	PrintResults(results)
	if !results.OK() {
		fmt.Printf("\nTo re-run just the failed tests:\n  %s\n", params.rerunCommand(results.Failures))
		os.Exit(1)
	}
}

func printFilterDescription(filters framework.RegexFilters) {
	if !filters.IsDefined() {
		return
	}
	fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Printf("  run only tests matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Printf("  skip any tests matching %s\n", filters.MustNotMatch)
	}
}
