package tui

import "github.com/svidal/filmoteca/internal/domain"

// Message types for the browse screen

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg signals that a catalog page has been loaded
type PageLoadedMsg struct {
	Page domain.Page[domain.Movie]
}

// SearchResultsMsg signals that server search results are ready
type SearchResultsMsg struct {
	Results []domain.Movie
	Query   string
}

// FavoritesLoadedMsg carries the signed-in user's favorites snapshot
type FavoritesLoadedMsg struct {
	Movies []domain.Movie
}

// FavoriteToggledMsg signals that a toggle settled
type FavoriteToggledMsg struct {
	MovieID    int
	IsFavorite bool
}

// SignInRequiredMsg signals that an action needs a signed-in user
type SignInRequiredMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
