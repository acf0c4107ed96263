package mailbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirInbox reads a directory of email files written by the local
// notifications service. File names look like
//
//	1589571334_welcome_some_user_some_user@test.nu_<uuid>.html
//
// and file contents are the raw email body. The inbox never deletes
// individual messages mid-run; Purge removes everything at once and must
// only be called after the whole test session, never concurrently with a
// poll.
type DirInbox struct {
	dir string
}

func NewDirInbox(dir string) *DirInbox {
	return &DirInbox{dir: dir}
}

func (i *DirInbox) Dir() string { return i.dir }

func (i *DirInbox) List(recipient, category string) ([]string, error) {
	entries, err := os.ReadDir(i.dir)
	if err != nil {
		return nil, fmt.Errorf("listing inbox %s: %w", i.dir, err)
	}
	// os.ReadDir sorts by filename, which is the lexicographic order we
	// promise; with timestamp-prefixed names that is oldest-first.
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.Contains(name, recipient) {
			continue
		}
		if category != "" && !strings.Contains(name, category) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (i *DirInbox) Read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(i.dir, name))
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("reading message %s: %w", name, err)
	}
	return string(data), nil
}

// Purge deletes every message in the inbox. Missing files are ignored:
// another run's cleanup may have raced ours.
func (i *DirInbox) Purge() error {
	entries, err := os.ReadDir(i.dir)
	if err != nil {
		return fmt.Errorf("listing inbox %s: %w", i.dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(i.dir, e.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("purging inbox: %w", err)
		}
	}
	return nil
}
