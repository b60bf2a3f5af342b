package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/svidal/filmoteca/internal/domain"
	"github.com/svidal/filmoteca/internal/query"
	"github.com/svidal/filmoteca/internal/session"
)

// FavoriteService manages a user's favorite edges. All operations guard
// locally on auth state before touching the network: an anonymous caller
// gets ErrSignInRequired and no request is sent. This is a UX guard, not
// authorization; the server still enforces its own.
type FavoriteService struct {
	repo     domain.FavoriteRepository
	cache    *query.Cache
	sessions *session.Store
	logger   *slog.Logger

	group singleflight.Group
}

// NewFavoriteService creates a favorites service for the signed-in user.
func NewFavoriteService(repo domain.FavoriteRepository, cache *query.Cache, sessions *session.Store, logger *slog.Logger) *FavoriteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoriteService{repo: repo, cache: cache, sessions: sessions, logger: logger}
}

// Favorites returns the signed-in user's favorite movies, cached.
func (s *FavoriteService) Favorites(ctx context.Context) ([]domain.Movie, error) {
	user := s.sessions.User()
	if user == nil {
		return nil, domain.ErrSignInRequired
	}

	key := query.FavoritesKey(user.ID)
	var cached []domain.Movie
	if s.cache.GetFavorites(key, &cached) {
		s.logger.Debug("cache hit", "key", key)
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		movies, err := fetchWithRetry(ctx, s.logger, func(ctx context.Context) ([]domain.Movie, error) {
			return s.repo.ListFavorites(ctx, user.ID)
		})
		if err != nil {
			return nil, err
		}
		if err := s.cache.SaveFavorites(key, movies); err != nil {
			s.logger.Warn("failed to cache favorites", "error", err)
		}
		return movies, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Movie), nil
}

// IsFavorite reports whether the movie is in the current favorites
// snapshot. Anonymous callers always get false.
func (s *FavoriteService) IsFavorite(ctx context.Context, movieID int) bool {
	movies, err := s.Favorites(ctx)
	if err != nil {
		return false
	}
	for _, m := range movies {
		if m.ID == movieID {
			return true
		}
	}
	return false
}

// Check queries the server-side membership predicate directly, bypassing
// the snapshot.
func (s *FavoriteService) Check(ctx context.Context, movieID int) (domain.FavoriteStatus, error) {
	user := s.sessions.User()
	if user == nil {
		return domain.FavoriteStatus{}, domain.ErrSignInRequired
	}
	return s.repo.CheckFavorite(ctx, user.ID, movieID)
}

// Add marks a movie and invalidates the favorites snapshot.
func (s *FavoriteService) Add(ctx context.Context, movieID int) error {
	user := s.sessions.User()
	if user == nil {
		return domain.ErrSignInRequired
	}
	if err := s.repo.AddFavorite(ctx, user.ID, movieID); err != nil {
		return err
	}
	s.cache.InvalidateFavorites(user.ID)
	s.logger.Info("favorite added", "movie", movieID)
	return nil
}

// Remove unmarks a movie and invalidates the favorites snapshot.
func (s *FavoriteService) Remove(ctx context.Context, movieID int) error {
	user := s.sessions.User()
	if user == nil {
		return domain.ErrSignInRequired
	}
	if err := s.repo.RemoveFavorite(ctx, user.ID, movieID); err != nil {
		return err
	}
	s.cache.InvalidateFavorites(user.ID)
	s.logger.Info("favorite removed", "movie", movieID)
	return nil
}

// Toggle adds the movie when it is absent from the current favorites
// snapshot and removes it otherwise. The decision reads the latest cache,
// not the server; two racing toggles can both add or both remove, and the
// server is responsible for keeping that idempotent. Returns whether the
// movie is a favorite after the call.
func (s *FavoriteService) Toggle(ctx context.Context, movieID int) (bool, error) {
	if !s.sessions.IsAuthenticated() {
		return false, domain.ErrSignInRequired
	}

	if s.IsFavorite(ctx, movieID) {
		if err := s.Remove(ctx, movieID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := s.Add(ctx, movieID); err != nil {
		return false, err
	}
	return true, nil
}
