package session

import "errors"

// Errors returned by the credential store.
var (
	// ErrNotConfigured is returned when no endpoint is active or the store is empty.
	ErrNotConfigured = errors.New("no (default) url configured, please configure one using the auth subcommand")

	// ErrUnknownEndpoint is returned when an operation names an endpoint that was never added.
	ErrUnknownEndpoint = errors.New("url is not registered")

	// ErrInvalidEndpoint is returned when a url cannot be used as an endpoint identity.
	ErrInvalidEndpoint = errors.New("invalid endpoint url")

	// ErrMalformedStore is returned when the credentials file exists but cannot be decoded.
	ErrMalformedStore = errors.New("malformed credentials file")
)
