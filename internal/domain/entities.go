package domain

import (
	"fmt"
	"time"
)

// User is the identity portion of a session. Tokens are kept separately;
// presence of a User is what "logged in" means.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Session pairs a user identity with its credential tokens. It is replaced
// wholesale on login and token refresh, and destroyed on logout.
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Movie is a catalog record. The server owns the ID; the client never
// originates one.
type Movie struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Director        string    `json:"director"`
	Genre           string    `json:"genre"`
	DurationMinutes int       `json:"duration_minutes"`
	Year            int       `json:"year"`
	Classification  string    `json:"classification"`
	Synopsis        string    `json:"synopsis"`
	CreatedAt       time.Time `json:"created_at"`
	ImageURL        string    `json:"image_url,omitempty"`
}

// FormattedDuration returns the runtime in a human-readable format
func (m Movie) FormattedDuration() string {
	h := m.DurationMinutes / 60
	mins := m.DurationMinutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// Favorite is the edge between a user and a movie.
type Favorite struct {
	UserID   int       `json:"user_id"`
	MovieID  int       `json:"movie_id"`
	MarkedAt time.Time `json:"marked_at"`
}

// FavoriteStatus is the result of a membership check.
type FavoriteStatus struct {
	IsFavorite bool
	MarkedAt   time.Time
	UserID     int
	MovieID    int
}

// SearchFilter narrows a catalog search. Zero-valued fields are omitted
// from the query.
type SearchFilter struct {
	Title    string
	Director string
	Genre    string
	Year     int
	YearMin  int
	YearMax  int
}

// IsZero reports whether no filter criteria are set.
func (f SearchFilter) IsZero() bool {
	return f == SearchFilter{}
}

// CreateMovieInput carries the fields for a new catalog record.
type CreateMovieInput struct {
	Title           string `validate:"required,max=200"`
	Director        string `validate:"required,max=100"`
	Genre           string `validate:"required,max=50"`
	DurationMinutes int    `validate:"required,gt=0,lte=600"`
	Year            int    `validate:"required,gte=1888,lte=2100"`
	Classification  string `validate:"required,oneof=G PG PG-13 R NC-17"`
	Synopsis        string `validate:"max=2000"`
}

// UpdateMovieInput carries a partial update. Nil fields are left untouched
// on the server.
type UpdateMovieInput struct {
	Title           *string `validate:"omitempty,max=200"`
	Director        *string `validate:"omitempty,max=100"`
	Genre           *string `validate:"omitempty,max=50"`
	DurationMinutes *int    `validate:"omitempty,gt=0,lte=600"`
	Year            *int    `validate:"omitempty,gte=1888,lte=2100"`
	Classification  *string `validate:"omitempty,oneof=G PG PG-13 R NC-17"`
	Synopsis        *string `validate:"omitempty,max=2000"`
}

// Credentials are the login inputs.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Registration are the sign-up inputs. The confirmation is always sent
// equal to the password; registration does not itself establish a session.
type Registration struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}
