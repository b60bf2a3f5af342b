package session

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/svidal/filmoteca/internal/domain"
)

// Store holds the signed-in identity and persists it across runs. It is
// the single source of truth for "is someone logged in"; tokens live in
// TokenStore and must never be used to infer auth state.
//
// Only the auth service writes identity. A corrupted or missing file on
// load is treated as "no session", never surfaced as an error.
type Store struct {
	mu          sync.RWMutex
	user        *domain.User
	path        string // empty = memory-only
	subscribers []func(*domain.User)
	logger      *slog.Logger
}

// NewStore creates a store persisting to path. An empty path keeps the
// identity in memory only. The stored identity, if any, is rehydrated
// before NewStore returns.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger}
	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return // no session
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == 0 {
		// Corrupted record: discard rather than error
		s.logger.Warn("discarding unreadable session file", "path", s.path)
		os.Remove(s.path)
		return
	}
	s.user = &user
	s.logger.Debug("session rehydrated", "user", user.Email)
}

// User returns the current identity, or nil when anonymous.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether an identity is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// SetUser replaces the stored identity, persists it, and notifies
// subscribers synchronously.
func (s *Store) SetUser(user *domain.User) {
	s.mu.Lock()
	if user != nil {
		u := *user
		s.user = &u
	} else {
		s.user = nil
	}
	s.persistLocked()
	subs := make([]func(*domain.User), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(user)
	}
}

// ClearUser removes the identity and persists the cleared state.
func (s *Store) ClearUser() {
	s.SetUser(nil)
}

// Subscribe registers a callback invoked synchronously on every identity
// change. The callback receives the new identity (nil on clear).
func (s *Store) Subscribe(fn func(*domain.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) persistLocked() {
	if s.path == "" {
		return
	}
	if s.user == nil {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove session file", "error", err)
		}
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.logger.Warn("failed to create session directory", "error", err)
		return
	}
	data, err := json.Marshal(s.user)
	if err != nil {
		s.logger.Warn("failed to encode session", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}
}
