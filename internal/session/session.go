// Package session stores the bearer token for the logged-in user.
//
// The token lives in a single file under the config directory so it survives
// process restarts. An absent file means "logged out". Policy on expiry is
// not decided here: callers that need to react to a cleared session (the API
// client's 401 handler, the TUI) register a hook via NotifyClear.
package session

import (
	"os"
	"strings"
	"sync"
)

// Store holds the bearer token for the current user.
type Store struct {
	mu      sync.Mutex
	path    string
	onClear []func()
	cleared bool
}

// NewStore creates a token store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Set writes the token with mode 0600. The parent directory must exist.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared = false
	return os.WriteFile(s.path, []byte(token+"\n"), 0600)
}

// Get returns the stored token. ok is false when no token is stored.
func (s *Store) Get() (token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token = strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Clear removes the stored token and fires the registered hooks.
// Clearing an already-cleared store is a no-op: the hooks fire at most once
// per actual clear, so a burst of 401 responses logs out exactly once.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cleared {
		return nil
	}
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	existed := err == nil
	s.cleared = true
	if !existed {
		return nil
	}
	for _, fn := range s.onClear {
		fn()
	}
	return nil
}

// NotifyClear registers fn to run after the token is cleared.
func (s *Store) NotifyClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}
