package qbittorrent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	qbit "github.com/autobrr/go-qbittorrent"
	"github.com/go-resty/resty/v2"
)

const (
	pathLogin            = "api/v2/auth/login"
	pathLogout           = "api/v2/auth/logout"
	pathTorrentsInfo     = "api/v2/torrents/info"
	pathTorrentsFiles    = "api/v2/torrents/files"
	pathTorrentsAdd      = "api/v2/torrents/add"
	pathTorrentsDelete   = "api/v2/torrents/delete"
	pathTorrentsPause    = "api/v2/torrents/pause"
	pathTorrentsStop     = "api/v2/torrents/stop"
	pathTorrentsResume   = "api/v2/torrents/resume"
	pathTorrentsStart    = "api/v2/torrents/start"
	pathTorrentsRecheck  = "api/v2/torrents/recheck"
	pathTorrentsAnnounce = "api/v2/torrents/reannounce"
	pathAppShutdown      = "api/v2/app/shutdown"
	pathAppVersion       = "api/v2/app/version"
	pathLogMain          = "api/v2/log/main"
	pathSpeedLimitsMode  = "api/v2/transfer/speedLimitsMode"
	pathToggleSpeedMode  = "api/v2/transfer/toggleSpeedLimitsMode"
)

// GetTorrents retrieves torrents sorted and limited by the server.
func (c *Client) GetTorrents(ctx context.Context, opts ListOptions) ([]Torrent, error) {
	params := url.Values{}
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}
	if opts.Reverse {
		params.Set("reverse", "true")
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	resp, err := c.Execute(ctx, http.MethodGet, pathTorrentsInfo, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get torrents: %w", err)
	}

	var wire []qbit.Torrent
	if err := decodeJSON(resp, &wire); err != nil {
		return nil, fmt.Errorf("failed to get torrents: %w", err)
	}

	c.logger.Debug().Msgf("Retrieved %d torrents from qBittorrent", len(wire))

	torrents := make([]Torrent, 0, len(wire))
	for _, t := range wire {
		torrents = append(torrents, torrentFromWire(t))
	}
	return torrents, nil
}

// GetTorrentFiles gets the files of one torrent.
func (c *Client) GetTorrentFiles(ctx context.Context, hash string) ([]TorrentFile, error) {
	resp, err := c.Execute(ctx, http.MethodGet, pathTorrentsFiles, url.Values{"hash": {hash}})
	if err != nil {
		return nil, fmt.Errorf("failed to get torrent files: %w", err)
	}

	var wire []fileResponse
	if err := decodeJSON(resp, &wire); err != nil {
		return nil, fmt.Errorf("failed to get torrent files: %w", err)
	}
	return filesFromWire(wire), nil
}

// AddURL adds a torrent from a link, typically a magnet uri.
func (c *Client) AddURL(ctx context.Context, link string, paused bool) error {
	req := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"urls":   link,
			"paused": strconv.FormatBool(paused),
		})
	return c.add(req)
}

// AddFile uploads a local .torrent file.
func (c *Client) AddFile(ctx context.Context, path string, paused bool) error {
	req := c.http.R().
		SetContext(ctx).
		SetFile("torrents", path).
		SetMultipartFormData(map[string]string{
			"paused": strconv.FormatBool(paused),
		})
	return c.add(req)
}

func (c *Client) add(req *resty.Request) error {
	resp, err := c.do(req, http.MethodPost, pathTorrentsAdd)
	if err != nil {
		return fmt.Errorf("failed to add torrent: %w", err)
	}
	if body := strings.TrimSpace(resp.String()); body != "Ok." {
		return fmt.Errorf("failed to add torrent: %w: %q", ErrRejected, body)
	}
	return nil
}

// DeleteTorrents removes torrents, and their data when deleteFiles is set.
func (c *Client) DeleteTorrents(ctx context.Context, hashes []string, deleteFiles bool) error {
	params := url.Values{
		"hashes":      {strings.Join(hashes, "|")},
		"deleteFiles": {strconv.FormatBool(deleteFiles)},
	}
	if _, err := c.Execute(ctx, http.MethodPost, pathTorrentsDelete, params); err != nil {
		return fmt.Errorf("failed to delete torrents: %w", err)
	}
	return nil
}

// Pause pauses torrents. Servers running API v2.11+ only know torrents/stop.
func (c *Client) Pause(ctx context.Context, hashes ...string) error {
	if err := c.postHashes(ctx, hashes, pathTorrentsPause, pathTorrentsStop); err != nil {
		return fmt.Errorf("failed to pause torrent: %w", err)
	}
	return nil
}

// Resume resumes torrents. Servers running API v2.11+ only know torrents/start.
func (c *Client) Resume(ctx context.Context, hashes ...string) error {
	if err := c.postHashes(ctx, hashes, pathTorrentsResume, pathTorrentsStart); err != nil {
		return fmt.Errorf("failed to resume torrent: %w", err)
	}
	return nil
}

// Recheck forces a piece recheck.
func (c *Client) Recheck(ctx context.Context, hashes ...string) error {
	if err := c.postHashes(ctx, hashes, pathTorrentsRecheck); err != nil {
		return fmt.Errorf("failed to recheck torrent: %w", err)
	}
	return nil
}

// Reannounce forces a reannounce to all trackers.
func (c *Client) Reannounce(ctx context.Context, hashes ...string) error {
	if err := c.postHashes(ctx, hashes, pathTorrentsAnnounce); err != nil {
		return fmt.Errorf("failed to reannounce torrent: %w", err)
	}
	return nil
}

// postHashes posts the pipe-joined hashes to the first path the server knows.
func (c *Client) postHashes(ctx context.Context, hashes []string, paths ...string) error {
	params := url.Values{"hashes": {strings.Join(hashes, "|")}}

	var err error
	for _, path := range paths {
		_, err = c.Execute(ctx, http.MethodPost, path, params)

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			c.logger.Debug().Str("path", path).Msg("Endpoint not found, trying next")
			continue
		}
		return err
	}
	return err
}

// Shutdown asks the application to exit.
func (c *Client) Shutdown(ctx context.Context) error {
	if _, err := c.Execute(ctx, http.MethodPost, pathAppShutdown, nil); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Version returns the application version, e.g. "v4.6.2".
func (c *Client) Version(ctx context.Context) (string, error) {
	resp, err := c.Execute(ctx, http.MethodPost, pathAppVersion, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get version: %w", err)
	}
	return strings.TrimSpace(resp.String()), nil
}

// GetLogs retrieves the main application log.
func (c *Client) GetLogs(ctx context.Context) ([]LogEntry, error) {
	resp, err := c.Execute(ctx, http.MethodPost, pathLogMain, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get logs: %w", err)
	}

	var wire []logResponse
	if err := decodeJSON(resp, &wire); err != nil {
		return nil, fmt.Errorf("failed to get logs: %w", err)
	}

	entries := make([]LogEntry, 0, len(wire))
	for _, l := range wire {
		entries = append(entries, LogEntry{
			ID:        l.ID,
			Level:     parseLogLevel(l.Type),
			Timestamp: time.Unix(l.Timestamp, 0),
			Message:   l.Message,
		})
	}
	return entries, nil
}

// SpeedLimitsMode reports whether alternative speed limits are enabled.
func (c *Client) SpeedLimitsMode(ctx context.Context) (SpeedLimitsMode, error) {
	resp, err := c.Execute(ctx, http.MethodPost, pathSpeedLimitsMode, nil)
	if err != nil {
		return SpeedLimitsUnknown, fmt.Errorf("failed to get speed limits mode: %w", err)
	}
	return parseSpeedLimitsMode(resp.String()), nil
}

// ToggleSpeedLimitsMode switches alternative speed limits on or off.
func (c *Client) ToggleSpeedLimitsMode(ctx context.Context) error {
	if _, err := c.Execute(ctx, http.MethodPost, pathToggleSpeedMode, nil); err != nil {
		return fmt.Errorf("failed to toggle speed limits mode: %w", err)
	}
	return nil
}
