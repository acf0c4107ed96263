// Package mailbox observes the out-of-band email channel of the service
// under test. In local development the service dumps every email it
// "sends" into a shared directory; this package lists and reads that
// inbox, extracts verification tokens from message bodies, and polls for
// the message a just-issued request should have produced.
package mailbox

import "errors"

// ErrNotFound is returned by Inbox.Read when no message with the given
// name exists. During a poll this is an expected outcome, not a failure:
// a message can be listed by one run and deleted by another run's
// cleanup.
var ErrNotFound = errors.New("mailbox: message not found")

// Inbox is a read-only view of delivered emails. Implementations must
// return names in a stable lexicographic order so "first match" is
// deterministic; names are timestamp-prefixed, making that order
// oldest-first.
//
// The filesystem directory is the only implementation today. The
// interface is the seam where a networked inbox (e.g. a cloud datastore
// fed by the production email pipeline) would be substituted without
// touching the poller or the token extractor.
type Inbox interface {
	// List returns the names of all messages whose name contains
	// recipient and, if category is non-empty, category as substrings.
	List(recipient, category string) ([]string, error)

	// Read returns the raw body of the named message, or ErrNotFound.
	Read(name string) (string, error)
}
