package mailbox

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMessage(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0600))
}

func TestDirInboxListFiltersAndOrders(t *testing.T) {
	dir := t.TempDir()
	inbox := NewDirInbox(dir)

	writeMessage(t, dir, "1589571334_welcome_alice_alice@test.nu_aaa.html", "hi alice")
	writeMessage(t, dir, "1589571335_welcome_bob_bob@test.nu_bbb.html", "hi bob")
	writeMessage(t, dir, "1589571336_reset_password_alice_alice@test.nu_ccc.html", "reset alice")
	writeMessage(t, dir, "1589571330_welcome_alice_alice@test.nu_ddd.html", "hi again alice")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir_alice_welcome"), 0700))

	names, err := inbox.List("alice", "welcome")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"1589571330_welcome_alice_alice@test.nu_ddd.html",
		"1589571334_welcome_alice_alice@test.nu_aaa.html",
	}, names, "lexicographic order, directories excluded")

	names, err = inbox.List("alice", "")
	require.NoError(t, err)
	assert.Len(t, names, 3, "empty category matches all categories")

	names, err = inbox.List("carol", "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDirInboxRead(t *testing.T) {
	dir := t.TempDir()
	inbox := NewDirInbox(dir)
	writeMessage(t, dir, "1589571334_welcome_alice_alice@test.nu_aaa.html", "hello alice")

	body, err := inbox.Read("1589571334_welcome_alice_alice@test.nu_aaa.html")
	require.NoError(t, err)
	assert.Equal(t, "hello alice", body)

	_, err = inbox.Read("1589571334_welcome_gone_gone@test.nu_zzz.html")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirInboxPurge(t *testing.T) {
	dir := t.TempDir()
	inbox := NewDirInbox(dir)
	for i := 0; i < 5; i++ {
		writeMessage(t, dir, fmt.Sprintf("158957133%d_welcome_u%d_u%d@test.nu_x.html", i, i, i), "body")
	}

	require.NoError(t, inbox.Purge())

	names, err := inbox.List("", "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestParseMessageName(t *testing.T) {
	msg, err := ParseMessageName("1589571334_welcome_alice_alice@test.nu_aaa.html")
	require.NoError(t, err)
	assert.Equal(t, int64(1589571334), msg.SentAt.Unix())

	_, err = ParseMessageName("not-a-message.html")
	assert.Error(t, err)

	_, err = ParseMessageName("notanumber_welcome_alice.html")
	assert.Error(t, err)
}
