package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrServerOffline indicates the catalog server is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrAuthFailed indicates authentication failed and could not be
	// recovered by a token refresh
	ErrAuthFailed = errors.New("authentication failed")

	// ErrSignInRequired indicates the operation needs a signed-in user
	ErrSignInRequired = errors.New("sign in required")

	// ErrNoRefreshToken indicates no refresh token is stored
	ErrNoRefreshToken = errors.New("no refresh token available")
)

// APIError is a structured error returned by the backend. The server sends
// {"detail": "..."} on validation and conflict failures; Detail falls back
// to a generic message when the payload is absent or malformed.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Detail)
}

// IsTransient reports whether the error is worth retrying: transport
// failures and server-side 5xx responses only. Validation and auth
// failures surface immediately.
func IsTransient(err error) bool {
	if errors.Is(err, ErrServerOffline) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return false
}
