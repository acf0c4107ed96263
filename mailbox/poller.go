package mailbox

import (
	"errors"
	"strings"
	"time"

	"github.com/efantasy/account-contract-tests/framework"
)

// ErrPollExhausted is returned when the retry budget is spent without a
// qualifying message. Against a local mailbox this is a hard test
// failure, never a silent skip.
var ErrPollExhausted = errors.New("mailbox: retry budget exhausted without a matching message")

const (
	defaultAttempts    = 3
	defaultSettleDelay = 1 * time.Second
	defaultBackoff     = 3 * time.Second
	defaultEpsilon     = 15 * time.Second
)

// Poller turns "an email should have just been triggered" into a usable
// token. It drives the inbox and the token extractor on a bounded retry
// schedule, tolerating delivery latency and ignoring stale leftovers from
// earlier or concurrent runs.
//
// Waiting is plain blocking sleep; there is no cancellation short of
// exhausting the budget. The poller is the only component in the harness
// that retries anything.
type Poller struct {
	Inbox Inbox

	// Attempts is the retry budget (default 3).
	Attempts int
	// SettleDelay is the initial wait before the first attempt, giving
	// the service time to deliver at all (default 1s).
	SettleDelay time.Duration
	// Backoff is the fixed wait between attempts (default 3s).
	Backoff time.Duration
	// Epsilon is the staleness window: a message qualifies only if its
	// embedded timestamp is within [sentAt-Epsilon, sentAt+Epsilon].
	// Matching recipient and category is not enough — the shared inbox
	// can hold identical-looking leftovers from failed or concurrent
	// runs (default 15s).
	Epsilon time.Duration

	Log framework.Logger

	// Sleep is a test seam; nil means time.Sleep.
	Sleep func(time.Duration)
}

// Await polls the inbox for a message of the given category addressed to
// recipient and triggered around sentAt, and extracts its token. sentAt
// must be captured at the moment the triggering request was issued.
func (p *Poller) Await(recipient, category string, sentAt time.Time) (Token, error) {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	settle := p.SettleDelay
	if settle <= 0 {
		settle = defaultSettleDelay
	}
	backoff := p.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	epsilon := p.Epsilon
	if epsilon <= 0 {
		epsilon = defaultEpsilon
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	log := p.Log
	if log == nil {
		log = framework.NullLogger()
	}

	sleep(settle)

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			sleep(backoff)
		}

		names, err := p.Inbox.List(recipient, category)
		if err != nil {
			return Token{}, err
		}
		if len(names) == 0 {
			log.Printf("poll %d/%d: no %q email for %q yet", attempt, attempts, category, recipient)
			continue
		}

		// Candidates are scanned oldest-first; the first one that
		// qualifies wins. A stale leftover must never shadow a fresh
		// message sorted after it.
		for _, name := range names {
			msg, err := ParseMessageName(name)
			if err != nil {
				log.Printf("poll %d/%d: %s", attempt, attempts, err)
				continue
			}
			if msg.SentAt.Before(sentAt.Add(-epsilon)) || msg.SentAt.After(sentAt.Add(epsilon)) {
				log.Printf("poll %d/%d: %q is outside the staleness window (sent %s, want within %s of %s)",
					attempt, attempts, name, msg.SentAt.Format(time.RFC3339), epsilon, sentAt.Format(time.RFC3339))
				continue
			}

			body, err := p.Inbox.Read(name)
			if errors.Is(err, ErrNotFound) {
				log.Printf("poll %d/%d: %q disappeared before it could be read", attempt, attempts, name)
				continue
			}
			if err != nil {
				return Token{}, err
			}
			if !strings.Contains(body, recipient) {
				log.Printf("poll %d/%d: %q does not mention %q", attempt, attempts, name, recipient)
				continue
			}

			token, ok := ExtractToken(body)
			if !ok {
				log.Printf("poll %d/%d: no verification link in %q", attempt, attempts, name)
				continue
			}
			return token, nil
		}
	}

	return Token{}, ErrPollExhausted
}
