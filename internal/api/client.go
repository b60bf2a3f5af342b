package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/svidal/filmoteca/internal/domain"
	"github.com/svidal/filmoteca/internal/session"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Filmoteca/1.0"
)

// Client performs HTTP calls against the catalog API. It attaches the
// bearer token on every request and recovers from access-token expiry
// exactly once per request: a 401 triggers a single refresh cycle and a
// re-issue of the original request. Concurrent 401s share one refresh
// call. Everything else reaches the caller unmodified.
//
// This client is the only path to the network; no other component issues
// raw requests.
type Client struct {
	baseURL    string
	tokens     *session.TokenStore
	httpClient *http.Client
	logger     *slog.Logger

	// Collapses simultaneous refresh attempts into one upstream call.
	refreshGroup singleflight.Group
}

// NewClient creates a catalog API client rooted at baseURL.
func NewClient(baseURL string, tokens *session.TokenStore, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// do performs an authenticated request and decodes the JSON response into
// out (skipped when out is nil). The body, when non-nil, is JSON-encoded.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = data
	}
	return c.doRaw(ctx, method, path, query, payload, "application/json", out)
}

// doRaw sends the request with the given pre-built payload. The payload is
// kept as bytes so the request can be re-issued after a token refresh.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, payload []byte, contentType string, out any) error {
	status, respBody, err := c.send(ctx, method, path, query, payload, contentType, c.tokens.AccessToken())
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		// One refresh cycle, shared across concurrent callers. The retry
		// flag is implicit: this path runs at most once per request.
		newAccess, refreshErr := c.refresh(ctx)
		if refreshErr != nil {
			if errors.Is(refreshErr, domain.ErrNoRefreshToken) {
				// Nothing to refresh with: the original 401 stands.
				return c.unauthorizedError(respBody)
			}
			return refreshErr
		}
		status, respBody, err = c.send(ctx, method, path, query, payload, contentType, newAccess)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			// Already retried once; no refresh loops.
			return c.unauthorizedError(respBody)
		}
	}

	if err := c.checkStatus(status, respBody); err != nil {
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(respBody))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// send performs one HTTP round trip and returns the status and body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, contentType, accessToken string) (int, []byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		c.logger.Error("api request failed", "error", err)
		return 0, nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

// refresh exchanges the stored refresh token for a new token pair and
// persists it. Concurrent callers share a single upstream call; each
// receives the same new access token or the same error. On failure the
// stored tokens are cleared; clearing identity is the auth service's job.
func (c *Client) refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		refreshToken := c.tokens.RefreshToken()
		if refreshToken == "" {
			return nil, domain.ErrNoRefreshToken
		}

		body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
		if err != nil {
			return nil, fmt.Errorf("failed to encode refresh request: %w", err)
		}

		status, respBody, err := c.send(ctx, http.MethodPost, "/api/auth/refresh", nil, body, "application/json", "")
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			c.logger.Warn("token refresh rejected", "status", status)
			if clearErr := c.tokens.Clear(); clearErr != nil {
				c.logger.Warn("failed to clear tokens", "error", clearErr)
			}
			return nil, domain.ErrAuthFailed
		}

		var tokens refreshResponse
		if err := json.Unmarshal(respBody, &tokens); err != nil {
			return nil, fmt.Errorf("failed to parse refresh response: %w", err)
		}
		if err := c.tokens.SetTokens(tokens.AccessToken, tokens.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to persist tokens: %w", err)
		}

		c.logger.Debug("access token refreshed")
		return tokens.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// unauthorizedError maps an unrecoverable 401 to a caller-facing error,
// keeping the server's detail message when one is present.
func (c *Client) unauthorizedError(body []byte) error {
	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &domain.APIError{Status: http.StatusUnauthorized, Detail: payload.Detail}
	}
	return domain.ErrAuthFailed
}

// checkStatus maps a non-2xx response to a domain error. The server sends
// {"detail": "..."} on structured failures; anything else falls back to a
// generic message for the status class.
func (c *Client) checkStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	if status == http.StatusNotFound {
		return domain.ErrNotFound
	}

	detail := ""
	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		detail = payload.Detail
	}
	if detail == "" {
		if status >= 500 {
			detail = "the server encountered an error"
		} else {
			detail = "the request was rejected"
		}
	}

	c.logger.Error("api request error", "status", status, "detail", detail)
	return &domain.APIError{Status: status, Detail: detail}
}
