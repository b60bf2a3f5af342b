package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair is the stored access/refresh credential pair. The pair is
// replaced wholesale on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenStore persists the credential tokens. Only the HTTP client and the
// auth service write here; identity lives in Store.
type TokenStore struct {
	mu   sync.RWMutex
	pair TokenPair
	path string // empty = memory-only
}

// NewTokenStore creates a token store persisting to path. An empty path
// keeps tokens in memory only. Stored tokens are rehydrated immediately;
// an unreadable file is treated as "no tokens".
func NewTokenStore(path string) *TokenStore {
	s := &TokenStore{path: path}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var pair TokenPair
			if json.Unmarshal(data, &pair) == nil {
				s.pair = pair
			}
		}
	}
	return s
}

// AccessToken returns the stored access token, or "" when absent.
func (s *TokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.AccessToken
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (s *TokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.RefreshToken
}

// SetTokens replaces both tokens and persists them.
func (s *TokenStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = TokenPair{AccessToken: access, RefreshToken: refresh}
	return s.persistLocked()
}

// Clear removes both tokens and the persisted file.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = TokenPair{}
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AccessTokenExpiry decodes the access token's exp claim without verifying
// the signature (the client has no signing key; the server remains the
// authority). Returns zero time when no token is stored or the claim is
// unreadable.
func (s *TokenStore) AccessTokenExpiry() time.Time {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func (s *TokenStore) persistLocked() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(s.pair)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
