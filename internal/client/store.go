package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store keys.
const (
	KeyDarkMode     = "darkMode"
	KeyChatHistory  = "chatHistory"
	KeyCurrentTheme = "currentTheme"
)

// Store is a small file-backed key-value store for client state: theme
// settings and the persisted chat history. Values are JSON-encoded; the
// whole store is one JSON object on disk, rewritten atomically on every Set.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]json.RawMessage
}

// DefaultStorePath is the store location under the user config directory.
func DefaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tanya", "state.json"), nil
}

// OpenStore loads the store at path, creating parent directories as needed.
// A missing file yields an empty store.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	s := &Store{
		path:   path,
		values: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		// A corrupt store is discarded rather than wedging the client.
		s.values = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Get decodes the value under key into v. The second return reports whether
// the key was present.
func (s *Store) Get(key string, v interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, err
	}
	return true, nil
}

// Set stores v under key and persists the store.
func (s *Store) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	return s.flush()
}

// Delete removes key and persists the store.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.flush()
}

// flush writes the store via a temp file and rename. Caller holds the lock.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
