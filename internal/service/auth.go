package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/svidal/filmoteca/internal/domain"
	"github.com/svidal/filmoteca/internal/query"
	"github.com/svidal/filmoteca/internal/session"
)

// AuthService is the only component that performs login, registration and
// logout, and the only writer of the persisted identity. Token persistence
// is shared with the HTTP client, which rewrites the pair on refresh.
type AuthService struct {
	accounts domain.AccountRepository
	sessions *session.Store
	tokens   *session.TokenStore
	cache    *query.Cache
	logger   *slog.Logger
}

// NewAuthService creates the auth controller.
func NewAuthService(accounts domain.AccountRepository, sessions *session.Store, tokens *session.TokenStore, cache *query.Cache, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		cache:    cache,
		logger:   logger,
	}
}

// Login exchanges credentials for a session, persists the token pair and
// the identity. Server failures carry the backend's detail message where
// one exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	creds := domain.Credentials{Email: email, Password: password}
	if err := domain.Validate(creds); err != nil {
		return nil, err
	}

	sess, err := s.accounts.Login(ctx, creds)
	if err != nil {
		s.logger.Warn("login failed", "email", email, "error", err)
		return nil, err
	}

	if err := s.tokens.SetTokens(sess.AccessToken, sess.RefreshToken); err != nil {
		return nil, err
	}
	s.sessions.SetUser(&sess.User)
	s.logger.Info("signed in", "user", sess.User.Email)

	return &sess.User, nil
}

// Register creates the account, then immediately signs in with the same
// credentials: registration alone does not establish a session.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	reg := domain.Registration{Name: name, Email: email, Password: password}
	if err := domain.Validate(reg); err != nil {
		return nil, err
	}

	if _, err := s.accounts.Register(ctx, reg); err != nil {
		s.logger.Warn("registration failed", "email", email, "error", err)
		return nil, err
	}
	s.logger.Info("account registered", "email", email)

	return s.Login(ctx, email, password)
}

// Logout invalidates the server session on a best-effort basis, then
// unconditionally clears tokens and identity. Logout always succeeds
// locally.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.accounts.Logout(ctx); err != nil {
		// Swallowed: the local session is cleared regardless.
		s.logger.Warn("server logout failed", "error", err)
	}

	if user := s.sessions.User(); user != nil {
		s.cache.InvalidateFavorites(user.ID)
	}
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("failed to clear tokens", "error", err)
	}
	s.sessions.ClearUser()
	s.logger.Info("signed out")
}

// Bootstrap reconciles the rehydrated identity against the stored tokens.
// An identity without tokens is not trusted; an identity with tokens is
// validated against /api/auth/me. Tokens without an identity adopt the
// server's answer. The server being unreachable keeps the local session
// as-is so the client stays usable offline.
func (s *AuthService) Bootstrap(ctx context.Context) {
	hasUser := s.sessions.IsAuthenticated()
	hasTokens := s.tokens.RefreshToken() != "" || s.tokens.AccessToken() != ""

	switch {
	case !hasUser && !hasTokens:
		return

	case hasUser && !hasTokens:
		s.logger.Info("dropping stored identity with no tokens")
		s.sessions.ClearUser()
		return
	}

	user, err := s.accounts.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrServerOffline) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("could not validate session, keeping local state", "error", err)
			return
		}
		s.logger.Info("stored session rejected by server, clearing", "error", err)
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear tokens", "error", clearErr)
		}
		s.sessions.ClearUser()
		return
	}

	// Adopt the server's identity; it may have changed out of band.
	s.sessions.SetUser(user)
	s.logger.Debug("session validated", "user", user.Email)
}

// CurrentUser returns the signed-in identity, or nil when anonymous.
func (s *AuthService) CurrentUser() *domain.User {
	return s.sessions.User()
}

// IsAuthenticated reports whether an identity is present. Components must
// never infer auth state from token presence.
func (s *AuthService) IsAuthenticated() bool {
	return s.sessions.IsAuthenticated()
}

// SessionExpiry returns when the current access token expires, or zero
// when unknown.
func (s *AuthService) SessionExpiry() time.Time {
	return s.tokens.AccessTokenExpiry()
}
