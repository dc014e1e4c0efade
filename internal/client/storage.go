package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shelfwise/shelfwise/internal/domain"
)

// ErrNoSession is returned by Load when no session is persisted.
var ErrNoSession = errors.New("no persisted session")

// Storage persists the session under two keys, a token string and a
// serialized user, always written and cleared together.
type Storage interface {
	Load() (token string, user *domain.User, err error)
	Save(token string, user *domain.User) error
	Clear() error
}

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// FileStorage keeps the session in two files inside a directory.
type FileStorage struct {
	dir string
}

// NewFileStorage creates storage rooted at dir, creating it if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Load reads the persisted token and user.
func (s *FileStorage) Load() (string, *domain.User, error) {
	tokenBytes, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, ErrNoSession
		}
		return "", nil, fmt.Errorf("read token: %w", err)
	}

	userBytes, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, ErrNoSession
		}
		return "", nil, fmt.Errorf("read user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(userBytes, &user); err != nil {
		return "", nil, fmt.Errorf("decode user: %w", err)
	}

	return string(tokenBytes), &user, nil
}

// Save persists both keys.
func (s *FileStorage) Save(token string, user *domain.User) error {
	userBytes, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), userBytes, 0o600); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

// Clear removes both keys.
func (s *FileStorage) Clear() error {
	var errs []error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MemStorage is an in-memory Storage for tests.
type MemStorage struct {
	mu    sync.Mutex
	token string
	user  *domain.User
	set   bool
}

// NewMemStorage creates an empty in-memory storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{}
}

// Load returns the stored session or ErrNoSession.
func (s *MemStorage) Load() (string, *domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", nil, ErrNoSession
	}
	userCopy := *s.user
	return s.token, &userCopy, nil
}

// Save stores the session.
func (s *MemStorage) Save(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	userCopy := *user
	s.token = token
	s.user = &userCopy
	s.set = true
	return nil
}

// Clear drops the session.
func (s *MemStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.set = false
	return nil
}
