package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/svidal/filmoteca/internal/domain"
	"github.com/svidal/filmoteca/internal/query"
)

// CatalogService is the cached read/write path for the movie catalog.
// Reads are keyed by (endpoint, parameters): equal keys share one cached
// result and one in-flight request. Writes invalidate the affected movie
// and every listing namespace, so the next read refetches instead of
// serving stale data.
type CatalogService struct {
	repo   domain.CatalogRepository
	cache  *query.Cache
	logger *slog.Logger

	// Collapses concurrent fetches for the same key into one request.
	group singleflight.Group
}

// NewCatalogService creates a catalog service over repo and cache.
func NewCatalogService(repo domain.CatalogRepository, cache *query.Cache, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{repo: repo, cache: cache, logger: logger}
}

// cachedMovies reads through the movies cache with per-key dedup and
// bounded retry on transient failures.
func cachedMovies[T any](ctx context.Context, s *CatalogService, key string, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	if s.cache.GetMovies(key, &cached) {
		s.logger.Debug("cache hit", "key", key)
		return cached, nil
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		val, err := fetchWithRetry(ctx, s.logger, fetch)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SaveMovies(key, val); err != nil {
			s.logger.Warn("failed to cache result", "key", key, "error", err)
		}
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if shared {
		s.logger.Debug("request deduplicated", "key", key)
	}
	return v.(T), nil
}

// ListMovies returns one page of the catalog. Page numbers are 1-based.
func (s *CatalogService) ListMovies(ctx context.Context, page, limit int) (domain.Page[domain.Movie], error) {
	if page < 1 {
		page = 1
	}
	key := query.MovieListKey(page, limit)
	return cachedMovies(ctx, s, key, func(ctx context.Context) (domain.Page[domain.Movie], error) {
		return s.repo.ListMovies(ctx, page, limit)
	})
}

// GetMovie returns a single movie by id
func (s *CatalogService) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	key := query.MovieKey(id)
	return cachedMovies(ctx, s, key, func(ctx context.Context) (*domain.Movie, error) {
		return s.repo.GetMovie(ctx, id)
	})
}

// SearchMovies returns movies matching the filter
func (s *CatalogService) SearchMovies(ctx context.Context, filter domain.SearchFilter) ([]domain.Movie, error) {
	if filter.IsZero() {
		return nil, nil
	}
	key := query.SearchKey(filter)
	return cachedMovies(ctx, s, key, func(ctx context.Context) ([]domain.Movie, error) {
		return s.repo.SearchMovies(ctx, filter)
	})
}

// PopularMovies returns the top-N movies by server-side ranking
func (s *CatalogService) PopularMovies(ctx context.Context, limit int) ([]domain.Movie, error) {
	key := query.PopularKey(limit)
	return cachedMovies(ctx, s, key, func(ctx context.Context) ([]domain.Movie, error) {
		return s.repo.PopularMovies(ctx, limit)
	})
}

// RecentMovies returns the top-N most recently added movies
func (s *CatalogService) RecentMovies(ctx context.Context, limit int) ([]domain.Movie, error) {
	key := query.RecentKey(limit)
	return cachedMovies(ctx, s, key, func(ctx context.Context) ([]domain.Movie, error) {
		return s.repo.RecentMovies(ctx, limit)
	})
}

// MoviesByClassification returns movies with the given rating code
func (s *CatalogService) MoviesByClassification(ctx context.Context, code string, limit int) ([]domain.Movie, error) {
	key := query.ClassificationKey(code, limit)
	return cachedMovies(ctx, s, key, func(ctx context.Context) ([]domain.Movie, error) {
		return s.repo.MoviesByClassification(ctx, code, limit)
	})
}

// MoviesByUser returns movies authored by a user
func (s *CatalogService) MoviesByUser(ctx context.Context, userID int) ([]domain.Movie, error) {
	key := query.UserMoviesKey(userID)
	return cachedMovies(ctx, s, key, func(ctx context.Context) ([]domain.Movie, error) {
		return s.repo.MoviesByUser(ctx, userID)
	})
}

// CreateMovie validates the input, creates the record, and invalidates
// every cached listing
func (s *CatalogService) CreateMovie(ctx context.Context, input domain.CreateMovieInput) (*domain.Movie, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	movie, err := s.repo.CreateMovie(ctx, input)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateMovieLists()
	s.logger.Info("movie created", "id", movie.ID, "title", movie.Title)
	return movie, nil
}

// UpdateMovie validates the input, applies the update, and invalidates
// the movie entry plus every cached listing
func (s *CatalogService) UpdateMovie(ctx context.Context, id int, input domain.UpdateMovieInput) (*domain.Movie, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	movie, err := s.repo.UpdateMovie(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateMovie(id)
	s.logger.Info("movie updated", "id", id)
	return movie, nil
}

// DeleteMovie removes the record and invalidates the movie entry plus
// every cached listing
func (s *CatalogService) DeleteMovie(ctx context.Context, id int) error {
	if err := s.repo.DeleteMovie(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateMovie(id)
	s.logger.Info("movie deleted", "id", id)
	return nil
}

// UploadImage attaches a poster to a movie and invalidates its entry
func (s *CatalogService) UploadImage(ctx context.Context, movieID int, filename string, data []byte) (string, error) {
	imageURL, err := s.repo.UploadImage(ctx, movieID, filename, data)
	if err != nil {
		return "", err
	}
	s.cache.InvalidateMovie(movieID)
	return imageURL, nil
}

// DeleteImage removes a movie's poster and invalidates its entry
func (s *CatalogService) DeleteImage(ctx context.Context, movieID int) error {
	if err := s.repo.DeleteImage(ctx, movieID); err != nil {
		return err
	}
	s.cache.InvalidateMovie(movieID)
	return nil
}
