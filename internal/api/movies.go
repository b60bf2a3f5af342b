package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/svidal/filmoteca/internal/domain"
)

// ListMovies returns one page of the catalog. Page numbers are 1-based.
// Pagination fields are re-derived from the total count so HasNext and
// HasPrev cannot disagree with CurrentPage vs TotalPages.
func (c *Client) ListMovies(ctx context.Context, page, limit int) (domain.Page[domain.Movie], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var resp paginatedMoviesResponse
	if err := c.do(ctx, http.MethodGet, "/api/peliculas/", query, nil, &resp); err != nil {
		return domain.Page[domain.Movie]{}, err
	}

	return domain.NewPage(mapMovies(resp.Items), resp.TotalRecords, resp.CurrentPage, resp.Limit), nil
}

// GetMovie returns a single movie by id
func (c *Client) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	var resp movieDTO
	path := fmt.Sprintf("/api/peliculas/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	movie := mapMovie(resp)
	return &movie, nil
}

// SearchMovies returns movies matching the filter. Zero-valued criteria
// are omitted from the query string.
func (c *Client) SearchMovies(ctx context.Context, filter domain.SearchFilter) ([]domain.Movie, error) {
	query := url.Values{}
	if filter.Title != "" {
		query.Set("titulo", filter.Title)
	}
	if filter.Director != "" {
		query.Set("director", filter.Director)
	}
	if filter.Genre != "" {
		query.Set("genero", filter.Genre)
	}
	if filter.Year > 0 {
		query.Set("año", strconv.Itoa(filter.Year))
	}
	if filter.YearMin > 0 {
		query.Set("año_min", strconv.Itoa(filter.YearMin))
	}
	if filter.YearMax > 0 {
		query.Set("año_max", strconv.Itoa(filter.YearMax))
	}

	var resp []movieDTO
	if err := c.do(ctx, http.MethodGet, "/api/peliculas/buscar/", query, nil, &resp); err != nil {
		return nil, err
	}
	return mapMovies(resp), nil
}

// PopularMovies returns the top-N movies by server-side ranking
func (c *Client) PopularMovies(ctx context.Context, limit int) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var resp []movieDTO
	if err := c.do(ctx, http.MethodGet, "/api/peliculas/populares/top", query, nil, &resp); err != nil {
		return nil, err
	}
	return mapMovies(resp), nil
}

// RecentMovies returns the top-N most recently added movies
func (c *Client) RecentMovies(ctx context.Context, limit int) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var resp []movieDTO
	if err := c.do(ctx, http.MethodGet, "/api/peliculas/recientes/nuevas", query, nil, &resp); err != nil {
		return nil, err
	}
	return mapMovies(resp), nil
}

// MoviesByClassification returns movies with the given rating code
func (c *Client) MoviesByClassification(ctx context.Context, code string, limit int) ([]domain.Movie, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var resp []movieDTO
	path := fmt.Sprintf("/api/peliculas/clasificacion/%s", url.PathEscape(code))
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return mapMovies(resp), nil
}

// MoviesByUser returns movies authored by a user
func (c *Client) MoviesByUser(ctx context.Context, userID int) ([]domain.Movie, error) {
	var resp []movieDTO
	path := fmt.Sprintf("/api/peliculas/usuario/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return mapMovies(resp), nil
}

// CreateMovie creates a catalog record and returns the server's copy
func (c *Client) CreateMovie(ctx context.Context, input domain.CreateMovieInput) (*domain.Movie, error) {
	req := createMovieRequest{
		Title:           input.Title,
		Director:        input.Director,
		Genre:           input.Genre,
		DurationMinutes: input.DurationMinutes,
		Year:            input.Year,
		Classification:  input.Classification,
		Synopsis:        input.Synopsis,
	}

	var resp movieDTO
	if err := c.do(ctx, http.MethodPost, "/api/peliculas/", nil, req, &resp); err != nil {
		return nil, err
	}
	movie := mapMovie(resp)
	return &movie, nil
}

// UpdateMovie applies a partial update and returns the server's copy
func (c *Client) UpdateMovie(ctx context.Context, id int, input domain.UpdateMovieInput) (*domain.Movie, error) {
	req := updateMovieRequest{
		Title:           input.Title,
		Director:        input.Director,
		Genre:           input.Genre,
		DurationMinutes: input.DurationMinutes,
		Year:            input.Year,
		Classification:  input.Classification,
		Synopsis:        input.Synopsis,
	}

	var resp movieDTO
	path := fmt.Sprintf("/api/peliculas/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &resp); err != nil {
		return nil, err
	}
	movie := mapMovie(resp)
	return &movie, nil
}

// DeleteMovie removes a catalog record
func (c *Client) DeleteMovie(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/peliculas/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// UploadImage attaches a poster image to a movie and returns its URL. The
// payload is sent as multipart form data under the "image" field.
func (c *Client) UploadImage(ctx context.Context, movieID int, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	var resp uploadImageResponse
	path := fmt.Sprintf("/api/peliculas/%d/imagen", movieID)
	if err := c.doRaw(ctx, http.MethodPost, path, nil, buf.Bytes(), writer.FormDataContentType(), &resp); err != nil {
		return "", err
	}
	return resp.ImageURL, nil
}

// DeleteImage removes a movie's poster image
func (c *Client) DeleteImage(ctx context.Context, movieID int) error {
	path := fmt.Sprintf("/api/peliculas/%d/imagen", movieID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ImageURL returns the public URL for a movie's poster image
func (c *Client) ImageURL(movieID int) string {
	return fmt.Sprintf("%s/api/peliculas/imagen/%d", c.baseURL, movieID)
}
