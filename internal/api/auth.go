package api

import (
	"context"
	"net/http"

	"github.com/svidal/filmoteca/internal/domain"
)

// Login exchanges credentials for a session. The returned session carries
// the token pair; persisting it is the caller's responsibility so the
// single-writer contract on the token store stays with the auth service.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	req := loginRequest{Email: creds.Email, Password: creds.Password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}

	return &domain.Session{
		User:         mapUser(resp.User),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    parseServerTime(resp.ExpiresAt),
	}, nil
}

// Register creates an account. The confirmation field is always sent equal
// to the password; registration does not establish a session.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	req := registerRequest{
		Name:            reg.Name,
		Email:           reg.Email,
		Password:        reg.Password,
		ConfirmPassword: reg.Password,
	}

	var resp userDTO
	if err := c.do(ctx, http.MethodPost, "/api/usuarios/", nil, req, &resp); err != nil {
		return nil, err
	}

	user := mapUser(resp)
	return &user, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// CurrentUser fetches the identity behind the stored tokens. Used to
// validate a rehydrated session on startup.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var resp userDTO
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	user := mapUser(resp)
	return &user, nil
}
