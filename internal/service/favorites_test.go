package service_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/svidal/filmoteca/internal/domain"
	"github.com/svidal/filmoteca/internal/service"
	"github.com/svidal/filmoteca/internal/session"
)

// fakeFavorites tracks membership in memory and counts every network-shaped
// call so tests can assert the anonymous guard fires before any request.
type fakeFavorites struct {
	calls  int32
	marked map[int]bool

	listFn func(ctx context.Context, userID int) ([]domain.Movie, error)
}

func newFakeFavorites(movieIDs ...int) *fakeFavorites {
	marked := make(map[int]bool)
	for _, id := range movieIDs {
		marked[id] = true
	}
	return &fakeFavorites{marked: marked}
}

func (f *fakeFavorites) ListFavorites(ctx context.Context, userID int) ([]domain.Movie, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.listFn != nil {
		return f.listFn(ctx, userID)
	}
	movies := make([]domain.Movie, 0, len(f.marked))
	for id := range f.marked {
		movies = append(movies, domain.Movie{ID: id})
	}
	return movies, nil
}

func (f *fakeFavorites) AddFavorite(ctx context.Context, userID, movieID int) error {
	atomic.AddInt32(&f.calls, 1)
	f.marked[movieID] = true
	return nil
}

func (f *fakeFavorites) RemoveFavorite(ctx context.Context, userID, movieID int) error {
	atomic.AddInt32(&f.calls, 1)
	delete(f.marked, movieID)
	return nil
}

func (f *fakeFavorites) CheckFavorite(ctx context.Context, userID, movieID int) (domain.FavoriteStatus, error) {
	atomic.AddInt32(&f.calls, 1)
	return domain.FavoriteStatus{IsFavorite: f.marked[movieID], UserID: userID, MovieID: movieID}, nil
}

func signedInStore() *session.Store {
	store := session.NewStore("", nil)
	store.SetUser(&domain.User{ID: 7, Name: "Ana", Email: "ana@example.com"})
	return store
}

func TestFavoritesAnonymousGuard(t *testing.T) {
	t.Parallel()

	repo := newFakeFavorites()
	anonymous := session.NewStore("", nil)
	svc := service.NewFavoriteService(repo, memCache(t), anonymous, discardLogger())
	ctx := context.Background()

	_, err := svc.Favorites(ctx)
	require.ErrorIs(t, err, domain.ErrSignInRequired)

	require.ErrorIs(t, svc.Add(ctx, 1), domain.ErrSignInRequired)
	require.ErrorIs(t, svc.Remove(ctx, 1), domain.ErrSignInRequired)

	_, err = svc.Toggle(ctx, 1)
	require.ErrorIs(t, err, domain.ErrSignInRequired)

	_, err = svc.Check(ctx, 1)
	require.ErrorIs(t, err, domain.ErrSignInRequired)

	require.False(t, svc.IsFavorite(ctx, 1))

	require.Zero(t, atomic.LoadInt32(&repo.calls), "anonymous callers must never reach the network")
}

func TestFavoritesListIsCached(t *testing.T) {
	t.Parallel()

	repo := newFakeFavorites(1, 2)
	svc := service.NewFavoriteService(repo, memCache(t), signedInStore(), discardLogger())
	ctx := context.Background()

	first, err := svc.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	_, err = svc.Favorites(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&repo.calls))
}

func TestFavoritesToggleAddsWhenAbsent(t *testing.T) {
	t.Parallel()

	repo := newFakeFavorites()
	svc := service.NewFavoriteService(repo, memCache(t), signedInStore(), discardLogger())

	isFav, err := svc.Toggle(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, isFav)
	require.True(t, repo.marked[5])
}

func TestFavoritesToggleRemovesWhenPresent(t *testing.T) {
	t.Parallel()

	repo := newFakeFavorites(5)
	svc := service.NewFavoriteService(repo, memCache(t), signedInStore(), discardLogger())

	isFav, err := svc.Toggle(context.Background(), 5)
	require.NoError(t, err)
	require.False(t, isFav)
	require.False(t, repo.marked[5])
}

func TestFavoritesMutationInvalidatesSnapshot(t *testing.T) {
	t.Parallel()

	repo := newFakeFavorites()
	svc := service.NewFavoriteService(repo, memCache(t), signedInStore(), discardLogger())
	ctx := context.Background()

	require.False(t, svc.IsFavorite(ctx, 9))
	require.NoError(t, svc.Add(ctx, 9))

	// The stale snapshot was wiped; the next read refetches and sees the add.
	require.True(t, svc.IsFavorite(ctx, 9))
}

func TestFavoritesMembershipReflectsLastOperation(t *testing.T) {
	t.Parallel()

	repo := newFakeFavorites()
	svc := service.NewFavoriteService(repo, memCache(t), signedInStore(), discardLogger())
	ctx := context.Background()

	isFav, err := svc.Toggle(ctx, 3)
	require.NoError(t, err)
	require.True(t, isFav)

	isFav, err = svc.Toggle(ctx, 3)
	require.NoError(t, err)
	require.False(t, isFav)

	isFav, err = svc.Toggle(ctx, 3)
	require.NoError(t, err)
	require.True(t, isFav)
	require.True(t, svc.IsFavorite(ctx, 3))
}

func TestFavoritesCheckBypassesSnapshot(t *testing.T) {
	t.Parallel()

	repo := newFakeFavorites(4)
	svc := service.NewFavoriteService(repo, memCache(t), signedInStore(), discardLogger())

	status, err := svc.Check(context.Background(), 4)
	require.NoError(t, err)
	require.True(t, status.IsFavorite)
	require.Equal(t, 7, status.UserID)
	require.Equal(t, 4, status.MovieID)
}

func TestFavoritesListErrorPropagates(t *testing.T) {
	t.Parallel()

	repo := newFakeFavorites()
	repo.listFn = func(ctx context.Context, userID int) ([]domain.Movie, error) {
		return nil, &domain.APIError{Status: 403, Detail: "prohibido"}
	}
	svc := service.NewFavoriteService(repo, memCache(t), signedInStore(), discardLogger())

	_, err := svc.Favorites(context.Background())
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 403, apiErr.Status)
}
