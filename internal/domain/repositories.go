package domain

import "context"

// CatalogRepository provides access to the movie catalog
type CatalogRepository interface {
	// ListMovies returns one page of the catalog. Page numbers are 1-based.
	ListMovies(ctx context.Context, page, limit int) (Page[Movie], error)

	// GetMovie returns a single movie by id
	GetMovie(ctx context.Context, id int) (*Movie, error)

	// SearchMovies returns movies matching the filter
	SearchMovies(ctx context.Context, filter SearchFilter) ([]Movie, error)

	// PopularMovies returns the top-N movies by server-side ranking
	PopularMovies(ctx context.Context, limit int) ([]Movie, error)

	// RecentMovies returns the top-N most recently added movies
	RecentMovies(ctx context.Context, limit int) ([]Movie, error)

	// MoviesByClassification returns movies with the given rating code
	MoviesByClassification(ctx context.Context, code string, limit int) ([]Movie, error)

	// MoviesByUser returns movies authored by a user
	MoviesByUser(ctx context.Context, userID int) ([]Movie, error)

	// CreateMovie creates a catalog record and returns the server's copy
	CreateMovie(ctx context.Context, input CreateMovieInput) (*Movie, error)

	// UpdateMovie applies a partial update and returns the server's copy
	UpdateMovie(ctx context.Context, id int, input UpdateMovieInput) (*Movie, error)

	// DeleteMovie removes a catalog record
	DeleteMovie(ctx context.Context, id int) error

	// UploadImage attaches a poster image to a movie and returns its URL
	UploadImage(ctx context.Context, movieID int, filename string, data []byte) (string, error)

	// DeleteImage removes a movie's poster image
	DeleteImage(ctx context.Context, movieID int) error
}

// FavoriteRepository provides access to a user's favorite edges
type FavoriteRepository interface {
	// ListFavorites returns the movies a user has marked
	ListFavorites(ctx context.Context, userID int) ([]Movie, error)

	// AddFavorite marks a movie for a user
	AddFavorite(ctx context.Context, userID, movieID int) error

	// RemoveFavorite unmarks a movie for a user
	RemoveFavorite(ctx context.Context, userID, movieID int) error

	// CheckFavorite reports whether the edge exists
	CheckFavorite(ctx context.Context, userID, movieID int) (FavoriteStatus, error)
}

// AccountRepository provides the credential endpoints
type AccountRepository interface {
	// Login exchanges credentials for a session
	Login(ctx context.Context, creds Credentials) (*Session, error)

	// Register creates an account. It does not establish a session.
	Register(ctx context.Context, reg Registration) (*User, error)

	// Logout invalidates the server-side session
	Logout(ctx context.Context) error

	// CurrentUser fetches and validates the identity behind the stored tokens
	CurrentUser(ctx context.Context) (*User, error)
}
