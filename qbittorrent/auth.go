package qbittorrent

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/s0up4200/qbtctl/session"
)

// Authenticate logs in to endpoint and returns a session carrying the
// received cookies. It returns nil, nil when the server hands out no
// cookies, which some deployments do with a 200 on wrong credentials.
func Authenticate(ctx context.Context, endpoint session.Endpoint, username, password string, logger zerolog.Logger, opts ...Option) (*session.Session, error) {
	o := buildOptions(opts)
	rc := newRestyClient(endpoint, o, logger)

	resp, err := rc.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		Post(pathLogin)
	if err != nil {
		return nil, fmt.Errorf("%w: login: %w", ErrTransport, err)
	}

	// qBittorrent bans the client ip after repeated failures and answers 403 to logins.
	if resp.StatusCode() == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %s refused the login (too many failed attempts?)", ErrAuthFailed, endpoint)
	}
	if err := checkResponse(resp, http.MethodPost, pathLogin); err != nil {
		return nil, err
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		logger.Debug().Str("endpoint", endpoint.String()).Str("body", resp.String()).Msg("Login returned no cookies")
		return nil, nil
	}

	return &session.Session{
		Endpoint: endpoint,
		Token:    FormatToken(cookies),
	}, nil
}

// Logout invalidates the client's token on the server.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Execute(ctx, http.MethodPost, pathLogout, nil)
	return err
}
