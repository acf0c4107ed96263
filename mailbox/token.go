package mailbox

import (
	"net/url"
	"regexp"
	"strings"
)

// urlPattern matches https URLs embedded in an email body. It is a
// best-effort scan of free text, not a grammar for the whole body.
var urlPattern = regexp.MustCompile(
	`https://[\w-]+(?:\.[\w-]+)+(?:[\w.,@?^;=%&:/~+#-]*[\w@?^;=%&/~+#-])?`)

// Token is a one-time verification credential extracted from an email
// link, together with the subject it identifies. It is valid for exactly
// one verification attempt; the service treats a repeat submission of the
// same token as a no-op.
type Token struct {
	UserID string
	Value  string
}

// ExtractToken scans a message body for a verification link and pulls the
// user and token query values out of it. Bodies can contain several URLs
// (unsubscribe links, logos, the service homepage); the first URL whose
// raw text mentions both a user and a token fragment wins. Returning
// ok=false means the body holds no verification link — a normal outcome
// for message types this poll is not interested in, not an error.
func ExtractToken(body string) (Token, bool) {
	for _, match := range urlPattern.FindAllString(body, -1) {
		if !strings.Contains(match, "user") || !strings.Contains(match, "token") {
			continue
		}
		parsed, err := url.Parse(match)
		if err != nil {
			continue
		}
		query := parsed.Query()
		userID, token := query.Get("user"), query.Get("token")
		if userID == "" || token == "" {
			continue
		}
		return Token{UserID: userID, Value: token}, true
	}
	return Token{}, false
}
