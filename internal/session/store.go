package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore owns the persisted credential token. Presence of a token
// only means a restore attempt is owed; a failed restore must Clear it.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the bearer token in a single file, the process
// equivalent of browser local storage. It also serves as the token
// source for outgoing gateway calls.
type FileStore struct {
	path string

	mu     sync.RWMutex
	cached string
	loaded bool
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) loadLocked() (string, error) {
	if s.loaded {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.cached, s.loaded = "", true
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}

	s.cached = strings.TrimSpace(string(data))
	s.loaded = true
	return s.cached, nil
}

func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}

	s.cached, s.loaded = token, true
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached, s.loaded = "", true
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// Token implements the gateway token source. Errors surface later as
// unauthenticated calls, which is the failure mode we want anyway.
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.loadLocked()
	if err != nil {
		return ""
	}
	return token
}
