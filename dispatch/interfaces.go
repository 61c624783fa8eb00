package dispatch

import (
	"context"
	"time"

	"github.com/s0up4200/qbtctl/qbittorrent"
	"github.com/s0up4200/qbtctl/session"
)

// API is the set of remote operations the dispatcher issues.
// *qbittorrent.Client implements it.
type API interface {
	GetTorrents(ctx context.Context, opts qbittorrent.ListOptions) ([]qbittorrent.Torrent, error)
	GetTorrentFiles(ctx context.Context, hash string) ([]qbittorrent.TorrentFile, error)
	AddURL(ctx context.Context, link string, paused bool) error
	AddFile(ctx context.Context, path string, paused bool) error
	DeleteTorrents(ctx context.Context, hashes []string, deleteFiles bool) error
	Pause(ctx context.Context, hashes ...string) error
	Resume(ctx context.Context, hashes ...string) error
	Recheck(ctx context.Context, hashes ...string) error
	Reannounce(ctx context.Context, hashes ...string) error
	Shutdown(ctx context.Context) error
	Version(ctx context.Context) (string, error)
	GetLogs(ctx context.Context) ([]qbittorrent.LogEntry, error)
	SpeedLimitsMode(ctx context.Context) (qbittorrent.SpeedLimitsMode, error)
	ToggleSpeedLimitsMode(ctx context.Context) error
	Logout(ctx context.Context) error
}

// Connector builds the API bound to one session.
type Connector func(sess session.Session) API

// Authenticator logs in and returns the new session, or nil when the
// server handed out no credentials.
type Authenticator func(ctx context.Context, endpoint session.Endpoint, username, password string) (*session.Session, error)

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
