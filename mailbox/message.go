package mailbox

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Message is a parsed mailbox entry identifier. Only the delivery
// timestamp is structured; category and recipient stay substring-matched
// against the raw name because category tags themselves contain the
// separator (e.g. "reset_password").
type Message struct {
	Name   string
	SentAt time.Time
}

// ParseMessageName extracts the Unix-epoch-seconds prefix from a message
// name of the form "<seconds>_<category>_...".
func ParseMessageName(name string) (Message, error) {
	prefix, rest, found := strings.Cut(name, "_")
	if !found || rest == "" {
		return Message{}, fmt.Errorf("message name %q has no timestamp prefix", name)
	}
	secs, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return Message{}, fmt.Errorf("message name %q has a malformed timestamp: %w", name, err)
	}
	return Message{Name: name, SentAt: time.Unix(secs, 0)}, nil
}
