package api

import (
	"time"

	"github.com/svidal/filmoteca/internal/domain"
)

// Wire types mirror the backend's JSON contract; field names are the
// server's, not ours. Mapping to domain types happens at this boundary
// only.

type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contraseña"`
}

type registerRequest struct {
	Name            string `json:"nombre"`
	Email           string `json:"correo"`
	Password        string `json:"contraseña"`
	ConfirmPassword string `json:"confirmarContraseña"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type userDTO struct {
	ID           int    `json:"id"`
	Name         string `json:"nombre"`
	Email        string `json:"correo"`
	RegisteredAt string `json:"fecha_registro"`
}

type authResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"`
	ExpiresIn    int     `json:"expires_in"`
	ExpiresAt    string  `json:"expires_at"`
	User         userDTO `json:"user"`
}

type movieDTO struct {
	ID              int    `json:"id"`
	Title           string `json:"titulo"`
	Director        string `json:"director"`
	Genre           string `json:"genero"`
	DurationMinutes int    `json:"duracion"`
	Year            int    `json:"año"`
	Classification  string `json:"clasificacion"`
	Synopsis        string `json:"sinopsis"`
	CreatedAt       string `json:"fecha_creacion"`
	ImageURL        string `json:"image_url"`
}

type createMovieRequest struct {
	Title           string `json:"titulo"`
	Director        string `json:"director"`
	Genre           string `json:"genero"`
	DurationMinutes int    `json:"duracion"`
	Year            int    `json:"año"`
	Classification  string `json:"clasificacion"`
	Synopsis        string `json:"sinopsis,omitempty"`
}

type updateMovieRequest struct {
	Title           *string `json:"titulo,omitempty"`
	Director        *string `json:"director,omitempty"`
	Genre           *string `json:"genero,omitempty"`
	DurationMinutes *int    `json:"duracion,omitempty"`
	Year            *int    `json:"año,omitempty"`
	Classification  *string `json:"clasificacion,omitempty"`
	Synopsis        *string `json:"sinopsis,omitempty"`
}

type paginatedMoviesResponse struct {
	Items        []movieDTO `json:"items"`
	TotalRecords int        `json:"total_records"`
	CurrentPage  int        `json:"current_pg"`
	Limit        int        `json:"limit"`
	Pages        int        `json:"pages"`
	HasNext      bool       `json:"has_next"`
	HasPrev      bool       `json:"has_prev"`
	NextPage     *int       `json:"next_page"`
	PrevPage     *int       `json:"prev_page"`
}

type favoriteCheckResponse struct {
	IsFavorite bool   `json:"es_favorito"`
	FavoriteID *int   `json:"favorito_id"`
	MarkedAt   string `json:"fecha_marcado"`
	UserID     int    `json:"usuario_id"`
	MovieID    int    `json:"pelicula_id"`
}

type uploadImageResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
	MovieID  int    `json:"pelicula_id"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func mapUser(dto userDTO) domain.User {
	return domain.User{
		ID:           dto.ID,
		Name:         dto.Name,
		Email:        dto.Email,
		RegisteredAt: parseServerTime(dto.RegisteredAt),
	}
}

func mapMovie(dto movieDTO) domain.Movie {
	return domain.Movie{
		ID:              dto.ID,
		Title:           dto.Title,
		Director:        dto.Director,
		Genre:           dto.Genre,
		DurationMinutes: dto.DurationMinutes,
		Year:            dto.Year,
		Classification:  dto.Classification,
		Synopsis:        dto.Synopsis,
		CreatedAt:       parseServerTime(dto.CreatedAt),
		ImageURL:        dto.ImageURL,
	}
}

func mapMovies(dtos []movieDTO) []domain.Movie {
	movies := make([]domain.Movie, len(dtos))
	for i, dto := range dtos {
		movies[i] = mapMovie(dto)
	}
	return movies
}

// parseServerTime handles the timestamp formats the backend emits. An
// unparseable value degrades to the zero time rather than failing the
// whole response.
func parseServerTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
