package dispatch

import (
	"errors"

	"github.com/s0up4200/qbtctl/qbittorrent"
	"github.com/s0up4200/qbtctl/session"
)

// ErrInvalidInput is returned for arguments rejected before any remote call.
var ErrInvalidInput = errors.New("invalid input")

const (
	msgSessionExpired = "The server rejected the stored session, it has expired or was logged out. " +
		"Authenticate again with: qbtctl auth add <url> <username>"
	msgNotConfigured = "No (default) url configured. Please configure a url using the auth subcommand!"
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, session.ErrUnknownEndpoint):
		return 0
	default:
		return 1
	}
}

// Describe renders an error returned by a command as one line for the user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, qbittorrent.ErrSessionExpired):
		return msgSessionExpired
	case errors.Is(err, session.ErrNotConfigured):
		return msgNotConfigured
	default:
		return err.Error()
	}
}

// IsFatal reports whether err invalidates the active session for the rest of the process.
func IsFatal(err error) bool {
	return errors.Is(err, qbittorrent.ErrSessionExpired)
}
