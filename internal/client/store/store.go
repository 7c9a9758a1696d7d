// Package store persists the bearer token across wallet sessions.
package store

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir    = "vornexz"
	tokenFile = "token"
)

// TokenStore is the durable home of the session credential. Absence is
// a valid state, not an error.
type TokenStore interface {
	Read() string
	Write(token string) error
	Clear() error
}

// FileStore keeps the token in a single file under the user config dir
type FileStore struct {
	path string
}

var _ TokenStore = (*FileStore)(nil)

// NewFileStore resolves the default token location,
// e.g. ~/.config/vornexz/token
func NewFileStore() (*FileStore, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewFileStoreAt(filepath.Join(base, appDir, tokenFile)), nil
}

// NewFileStoreAt uses an explicit token path
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Read returns the persisted token, or the empty string when absent.
// It never fails: unreadable state is treated as absence.
func (s *FileStore) Read() string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// Write persists the token, replacing any previous value
func (s *FileStore) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the persisted token. Safe to call when absent.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
