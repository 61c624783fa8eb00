// Package qbittorrent provides a client for interacting with the qBittorrent Web API.
//
// A Client is bound to one stored session: every request carries the
// session's cookies and a Referer header pointing at the endpoint, which the
// Web API requires for CSRF protection. Requests go through resty on top of a
// retryablehttp transport, optionally rate limited.
//
// # Features
//
//   - Cookie based login that yields a storable token
//   - Torrent listing, file listing, add, delete, pause, resume, recheck, reannounce
//   - Application shutdown, version, main log and alternative speed limits
//   - Forward compatible torrent state decoding
//
// # Errors
//
// Every response is classified in one place. A 403 is reported as
// ErrSessionExpired, other non-2xx answers as *APIError, network failures
// wrap ErrTransport and unexpected bodies wrap ErrDecode.
//
// # Usage
//
//	sess, err := qbittorrent.Authenticate(ctx, endpoint, "admin", password, logger)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    return qbittorrent.ErrAuthFailed
//	}
//
//	client := qbittorrent.NewClient(*sess, logger, qbittorrent.WithTimeout(10*time.Second))
//	torrents, err := client.GetTorrents(ctx, qbittorrent.ListOptions{Sort: "name"})
package qbittorrent
