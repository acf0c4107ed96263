package mailbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTokenFromWelcomeEmail(t *testing.T) {
	body := `<html><body>
<p>Welcome to eFantasy, some_user!</p>
<p>Please confirm your address by clicking
<a href="https://efantasy.dev/verify?user=some_user&token=abc123def">here</a>.</p>
</body></html>`

	token, ok := ExtractToken(body)
	require.True(t, ok)
	assert.Equal(t, "some_user", token.UserID)
	assert.Equal(t, "abc123def", token.Value)
}

func TestExtractTokenPicksTheVerificationURL(t *testing.T) {
	// Several URLs; only one carries both user and token keys.
	body := `Visit https://efantasy.dev/help for help.
Confirm at https://efantasy.dev/verify?user=some_user&token=tok-1 now.
Unsubscribe: https://efantasy.dev/unsubscribe?user=some_user`

	token, ok := ExtractToken(body)
	require.True(t, ok)
	assert.Equal(t, "some_user", token.UserID)
	assert.Equal(t, "tok-1", token.Value)
}

func TestExtractTokenNoMatch(t *testing.T) {
	for name, body := range map[string]string{
		"no urls at all":        "plain text with nothing useful",
		"url without query":     "see https://efantasy.dev/welcome",
		"url missing token key": "see https://efantasy.dev/page?user=some_user",
		"non-https url":         "see http://efantasy.dev/verify?user=u&token=tok",
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := ExtractToken(body)
			assert.False(t, ok)
		})
	}
}

func TestExtractTokenFirstQueryValueWins(t *testing.T) {
	body := "https://efantasy.dev/verify?user=first&token=tok-a&user=second&token=tok-b"

	token, ok := ExtractToken(body)
	require.True(t, ok)
	assert.Equal(t, "first", token.UserID)
	assert.Equal(t, "tok-a", token.Value)
}
