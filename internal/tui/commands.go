package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/svidal/filmoteca/internal/domain"
)

const requestTimeout = 30 * time.Second

// loadPageCmd fetches one page of the catalog
func (m *Model) loadPageCmd(page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := m.catalog.ListMovies(ctx, page, m.pageSize)
		if err != nil {
			return ErrMsg{Err: err, Context: "failed to load movies"}
		}
		return PageLoadedMsg{Page: result}
	}
}

// searchCmd runs a server-side title search. The query is echoed back so
// stale responses can be dropped after the input has changed.
func (m *Model) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		results, err := m.catalog.SearchMovies(ctx, domain.SearchFilter{Title: query})
		if err != nil {
			return ErrMsg{Err: err, Context: "search failed"}
		}
		return SearchResultsMsg{Results: results, Query: query}
	}
}

// loadFavoritesCmd fetches the signed-in user's favorites snapshot
func (m *Model) loadFavoritesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		movies, err := m.favorites.Favorites(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrSignInRequired) {
				return FavoritesLoadedMsg{} // anonymous: empty snapshot
			}
			return ErrMsg{Err: err, Context: "failed to load favorites"}
		}
		return FavoritesLoadedMsg{Movies: movies}
	}
}

// toggleFavoriteCmd flips the favorite edge for a movie
func (m *Model) toggleFavoriteCmd(movieID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		isFav, err := m.favorites.Toggle(ctx, movieID)
		if err != nil {
			if errors.Is(err, domain.ErrSignInRequired) {
				return SignInRequiredMsg{}
			}
			return ErrMsg{Err: err, Context: "failed to update favorites"}
		}
		return FavoriteToggledMsg{MovieID: movieID, IsFavorite: isFav}
	}
}

// clearStatusAfter clears the status bar after a delay
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
