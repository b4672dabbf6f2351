package truegate

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/natefinch/atomic"
)

// FileTokenStore persists the session token to a single file, the desktop
// analogue of the portal's durable client storage slot. Writes go through
// an atomic replace so a crash never leaves a torn token on disk.
type FileTokenStore struct {
	path string
}

var _ TokenStore = (*FileTokenStore)(nil)

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load returns the stored token, or an empty string when none exists.
func (s *FileTokenStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "could not read token storage")
	}
	return strings.TrimSpace(string(raw)), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "could not create token storage directory")
	}
	if err := atomic.WriteFile(s.path, strings.NewReader(token)); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "could not write token storage")
	}
	// the token is a credential; keep it out of other users' reach
	if err := os.Chmod(s.path, 0o600); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "could not restrict token storage permissions")
	}
	return nil
}

// Erase removes the stored token. Erasing an already-empty store is fine.
func (s *FileTokenStore) Erase() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "could not erase token storage")
	}
	return nil
}

// MemoryTokenStore keeps the token in process memory only. Used by tests
// and by embedders that manage persistence themselves.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

var _ TokenStore = (*MemoryTokenStore)(nil)

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Erase() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
