package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/svidal/filmoteca/internal/domain"
	"github.com/svidal/filmoteca/internal/query"
	"github.com/svidal/filmoteca/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memCache(t *testing.T) *query.Cache {
	t.Helper()
	cache, err := query.NewCache("")
	require.NoError(t, err)
	return cache
}

// fakeCatalog counts calls and lets each operation be stubbed.
type fakeCatalog struct {
	listCalls   int32
	getCalls    int32
	searchCalls int32

	listFn   func(ctx context.Context, page, limit int) (domain.Page[domain.Movie], error)
	getFn    func(ctx context.Context, id int) (*domain.Movie, error)
	createFn func(ctx context.Context, input domain.CreateMovieInput) (*domain.Movie, error)
	updateFn func(ctx context.Context, id int, input domain.UpdateMovieInput) (*domain.Movie, error)
	deleteFn func(ctx context.Context, id int) error
}

func (f *fakeCatalog) ListMovies(ctx context.Context, page, limit int) (domain.Page[domain.Movie], error) {
	atomic.AddInt32(&f.listCalls, 1)
	if f.listFn != nil {
		return f.listFn(ctx, page, limit)
	}
	return domain.NewPage([]domain.Movie{{ID: 1, Title: "Dune"}}, 1, page, limit), nil
}

func (f *fakeCatalog) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	atomic.AddInt32(&f.getCalls, 1)
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &domain.Movie{ID: id, Title: "Dune"}, nil
}

func (f *fakeCatalog) SearchMovies(ctx context.Context, filter domain.SearchFilter) ([]domain.Movie, error) {
	atomic.AddInt32(&f.searchCalls, 1)
	return []domain.Movie{{ID: 1, Title: "Dune"}}, nil
}

func (f *fakeCatalog) PopularMovies(ctx context.Context, limit int) ([]domain.Movie, error) {
	return []domain.Movie{{ID: 1}}, nil
}

func (f *fakeCatalog) RecentMovies(ctx context.Context, limit int) ([]domain.Movie, error) {
	return []domain.Movie{{ID: 2}}, nil
}

func (f *fakeCatalog) MoviesByClassification(ctx context.Context, code string, limit int) ([]domain.Movie, error) {
	return []domain.Movie{{ID: 3, Classification: code}}, nil
}

func (f *fakeCatalog) MoviesByUser(ctx context.Context, userID int) ([]domain.Movie, error) {
	return []domain.Movie{{ID: 4}}, nil
}

func (f *fakeCatalog) CreateMovie(ctx context.Context, input domain.CreateMovieInput) (*domain.Movie, error) {
	if f.createFn != nil {
		return f.createFn(ctx, input)
	}
	return &domain.Movie{ID: 10, Title: input.Title}, nil
}

func (f *fakeCatalog) UpdateMovie(ctx context.Context, id int, input domain.UpdateMovieInput) (*domain.Movie, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, input)
	}
	return &domain.Movie{ID: id}, nil
}

func (f *fakeCatalog) DeleteMovie(ctx context.Context, id int) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeCatalog) UploadImage(ctx context.Context, movieID int, filename string, data []byte) (string, error) {
	return "/static/posters/1.jpg", nil
}

func (f *fakeCatalog) DeleteImage(ctx context.Context, movieID int) error {
	return nil
}

func validCreateInput() domain.CreateMovieInput {
	return domain.CreateMovieInput{
		Title:           "Dune",
		Director:        "Villeneuve",
		Genre:           "Sci-Fi",
		DurationMinutes: 155,
		Year:            2021,
		Classification:  "PG-13",
	}
}

func TestCatalogServiceCachesReads(t *testing.T) {
	t.Parallel()

	repo := &fakeCatalog{}
	svc := service.NewCatalogService(repo, memCache(t), discardLogger())
	ctx := context.Background()

	first, err := svc.ListMovies(ctx, 1, 20)
	require.NoError(t, err)

	second, err := svc.ListMovies(ctx, 1, 20)
	require.NoError(t, err)

	require.Equal(t, first.Items, second.Items)
	require.EqualValues(t, 1, atomic.LoadInt32(&repo.listCalls), "second read must come from cache")
}

func TestCatalogServiceDistinctParamsDistinctEntries(t *testing.T) {
	t.Parallel()

	repo := &fakeCatalog{}
	svc := service.NewCatalogService(repo, memCache(t), discardLogger())
	ctx := context.Background()

	_, err := svc.ListMovies(ctx, 1, 20)
	require.NoError(t, err)
	_, err = svc.ListMovies(ctx, 2, 20)
	require.NoError(t, err)

	require.EqualValues(t, 2, atomic.LoadInt32(&repo.listCalls))
}

func TestCatalogServiceDeduplicatesConcurrentReads(t *testing.T) {
	t.Parallel()

	repo := &fakeCatalog{
		getFn: func(ctx context.Context, id int) (*domain.Movie, error) {
			time.Sleep(100 * time.Millisecond)
			return &domain.Movie{ID: id, Title: "Dune"}, nil
		},
	}
	svc := service.NewCatalogService(repo, memCache(t), discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetMovie(context.Background(), 1)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, atomic.LoadInt32(&repo.getCalls), "concurrent identical reads share one fetch")
}

func TestCatalogServiceRetriesTransientReadFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	repo := &fakeCatalog{
		getFn: func(ctx context.Context, id int) (*domain.Movie, error) {
			calls++
			if calls < 3 {
				return nil, &domain.APIError{Status: 502, Detail: "bad gateway"}
			}
			return &domain.Movie{ID: id}, nil
		},
	}
	svc := service.NewCatalogService(repo, memCache(t), discardLogger())

	movie, err := svc.GetMovie(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, movie.ID)
	require.Equal(t, 3, calls)
}

func TestCatalogServiceDoesNotRetryRejections(t *testing.T) {
	t.Parallel()

	calls := 0
	repo := &fakeCatalog{
		getFn: func(ctx context.Context, id int) (*domain.Movie, error) {
			calls++
			return nil, domain.ErrNotFound
		},
	}
	svc := service.NewCatalogService(repo, memCache(t), discardLogger())

	_, err := svc.GetMovie(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, 1, calls)
}

func TestCatalogServiceCreateInvalidatesListings(t *testing.T) {
	t.Parallel()

	repo := &fakeCatalog{}
	svc := service.NewCatalogService(repo, memCache(t), discardLogger())
	ctx := context.Background()

	_, err := svc.ListMovies(ctx, 1, 20)
	require.NoError(t, err)

	_, err = svc.CreateMovie(ctx, validCreateInput())
	require.NoError(t, err)

	_, err = svc.ListMovies(ctx, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&repo.listCalls), "listing must refetch after a create")
}

func TestCatalogServiceUpdateInvalidatesMovieAndListings(t *testing.T) {
	t.Parallel()

	repo := &fakeCatalog{}
	svc := service.NewCatalogService(repo, memCache(t), discardLogger())
	ctx := context.Background()

	_, err := svc.GetMovie(ctx, 1)
	require.NoError(t, err)
	_, err = svc.ListMovies(ctx, 1, 20)
	require.NoError(t, err)

	title := "Dune Part Two"
	_, err = svc.UpdateMovie(ctx, 1, domain.UpdateMovieInput{Title: &title})
	require.NoError(t, err)

	_, err = svc.GetMovie(ctx, 1)
	require.NoError(t, err)
	_, err = svc.ListMovies(ctx, 1, 20)
	require.NoError(t, err)

	require.EqualValues(t, 2, atomic.LoadInt32(&repo.getCalls))
	require.EqualValues(t, 2, atomic.LoadInt32(&repo.listCalls))
}

func TestCatalogServiceRejectsInvalidInputBeforeNetwork(t *testing.T) {
	t.Parallel()

	created := false
	repo := &fakeCatalog{
		createFn: func(ctx context.Context, input domain.CreateMovieInput) (*domain.Movie, error) {
			created = true
			return &domain.Movie{}, nil
		},
	}
	svc := service.NewCatalogService(repo, memCache(t), discardLogger())

	input := validCreateInput()
	input.Classification = "XX"
	_, err := svc.CreateMovie(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.False(t, created, "invalid input must not reach the repository")
}

func TestCatalogServiceDeleteInvalidates(t *testing.T) {
	t.Parallel()

	repo := &fakeCatalog{}
	svc := service.NewCatalogService(repo, memCache(t), discardLogger())
	ctx := context.Background()

	_, err := svc.GetMovie(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMovie(ctx, 1))

	_, err = svc.GetMovie(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&repo.getCalls))
}

func TestCatalogServiceSearchEmptyFilterShortCircuits(t *testing.T) {
	t.Parallel()

	repo := &fakeCatalog{}
	svc := service.NewCatalogService(repo, memCache(t), discardLogger())

	movies, err := svc.SearchMovies(context.Background(), domain.SearchFilter{})
	require.NoError(t, err)
	require.Empty(t, movies)
	require.Zero(t, atomic.LoadInt32(&repo.searchCalls))
}
