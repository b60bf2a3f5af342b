package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/svidal/filmoteca/internal/domain"
)

// ListFavorites returns the movies a user has marked
func (c *Client) ListFavorites(ctx context.Context, userID int) ([]domain.Movie, error) {
	var resp []movieDTO
	path := fmt.Sprintf("/api/usuarios/%d/favoritos", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return mapMovies(resp), nil
}

// AddFavorite marks a movie for a user
func (c *Client) AddFavorite(ctx context.Context, userID, movieID int) error {
	path := fmt.Sprintf("/api/usuarios/%d/favoritos/%d", userID, movieID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// RemoveFavorite unmarks a movie for a user
func (c *Client) RemoveFavorite(ctx context.Context, userID, movieID int) error {
	path := fmt.Sprintf("/api/usuarios/%d/favoritos/%d", userID, movieID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// CheckFavorite reports whether the favorite edge exists
func (c *Client) CheckFavorite(ctx context.Context, userID, movieID int) (domain.FavoriteStatus, error) {
	var resp favoriteCheckResponse
	path := fmt.Sprintf("/api/favoritos/verificar/%d/%d", userID, movieID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return domain.FavoriteStatus{}, err
	}
	return domain.FavoriteStatus{
		IsFavorite: resp.IsFavorite,
		MarkedAt:   parseServerTime(resp.MarkedAt),
		UserID:     resp.UserID,
		MovieID:    resp.MovieID,
	}, nil
}
