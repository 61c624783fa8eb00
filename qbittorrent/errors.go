package qbittorrent

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the qBittorrent client.
var (
	// ErrSessionExpired is returned when the server rejects the stored credentials.
	ErrSessionExpired = errors.New("session expired")

	// ErrAuthFailed is returned when a login attempt yields no credentials.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrTransport wraps network level failures.
	ErrTransport = errors.New("request failed")

	// ErrDecode is returned when a response body has an unexpected shape.
	ErrDecode = errors.New("unexpected response")

	// ErrRejected is returned when the server does not answer "Ok." to an add request.
	ErrRejected = errors.New("request rejected by qBittorrent")
)

// APIError represents a non-2xx answer from the Web API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := fmt.Sprintf("qBittorrent API error: %s %s: status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
