package dispatch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/qbtctl/qbittorrent"
	"github.com/s0up4200/qbtctl/session"
)

// maxConcurrentChecks bounds the probes issued by auth list --check.
const maxConcurrentChecks = 4

// AuthAddRequest holds the arguments of auth add.
type AuthAddRequest struct {
	URL      string
	Username string
	Password string
	// Activate makes the new session the active one.
	Activate bool
}

// AuthAdd logs in to an endpoint and stores the resulting session.
func (d *Dispatcher) AuthAdd(ctx context.Context, req AuthAddRequest) error {
	endpoint, err := session.ParseEndpoint(req.URL)
	if err != nil {
		return err
	}
	if req.Username == "" {
		return fmt.Errorf("%w: username must not be empty", ErrInvalidInput)
	}

	sess, err := d.authenticate(ctx, endpoint, req.Username, req.Password)
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("%w: %s returned no session cookie, check the username and password", qbittorrent.ErrAuthFailed, endpoint)
	}

	d.store.Add(sess.Endpoint, sess.Token)
	if req.Activate {
		if err := d.store.Activate(sess.Endpoint); err != nil {
			return err
		}
	}

	d.logger.Info().Str("endpoint", endpoint.String()).Bool("activated", req.Activate).Msg("Stored session")
	d.printf("Authentication successful!\n")
	return nil
}

// AuthRemove forgets the session of an endpoint. Removing an endpoint that
// was never stored only prints a notice.
func (d *Dispatcher) AuthRemove(rawURL string) error {
	endpoint, err := session.ParseEndpoint(rawURL)
	if err != nil {
		return err
	}

	if d.store.Remove(endpoint) {
		d.printf("Removed %s\n", endpoint)
	} else {
		d.printf("%s is not stored.\n", endpoint)
	}
	return nil
}

// AuthActivate selects the endpoint used by torrent and global commands.
func (d *Dispatcher) AuthActivate(rawURL string) error {
	endpoint, err := session.ParseEndpoint(rawURL)
	if err != nil {
		return err
	}

	if err := d.store.Activate(endpoint); err != nil {
		if errors.Is(err, session.ErrUnknownEndpoint) {
			return fmt.Errorf("%w: %s, use the add subcommand to add it", session.ErrUnknownEndpoint, endpoint)
		}
		return err
	}

	d.printf("Set %s as the default\n", endpoint)
	return nil
}

// AuthListRequest holds the arguments of auth list.
type AuthListRequest struct {
	ShowSecrets bool
	// Check probes every stored session against its server.
	Check bool
}

// SessionStatus is the outcome of probing one stored session.
type SessionStatus string

const (
	StatusValid       SessionStatus = "valid"
	StatusExpired     SessionStatus = "expired"
	StatusUnreachable SessionStatus = "unreachable"
)

// AuthList prints the stored sessions, optionally checking each one.
func (d *Dispatcher) AuthList(ctx context.Context, req AuthListRequest) error {
	entries := d.store.List(req.ShowSecrets)
	d.printf("%s", d.formatter(false).FormatSessions(entries, req.ShowSecrets))

	if !req.Check || len(entries) == 0 {
		return nil
	}

	statuses := d.checkSessions(ctx, entries)

	d.printf("\nSTATUS\tURL\n")
	for _, e := range entries {
		d.printf("%s\t%s\n", statuses[e.Endpoint], e.Endpoint)
	}
	return nil
}

// checkSessions issues a version call per stored session. Failures are
// reported per endpoint and never abort the listing.
func (d *Dispatcher) checkSessions(ctx context.Context, entries []session.Entry) map[session.Endpoint]SessionStatus {
	results := make([]SessionStatus, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)

	for i, e := range entries {
		sess, ok := d.store.Get(e.Endpoint)
		if !ok {
			continue
		}
		i := i
		g.Go(func() error {
			_, err := d.connect(sess).Version(gctx)
			switch {
			case err == nil:
				results[i] = StatusValid
			case errors.Is(err, qbittorrent.ErrSessionExpired):
				results[i] = StatusExpired
			default:
				d.logger.Debug().Err(err).Str("endpoint", sess.Endpoint.String()).Msg("Session check failed")
				results[i] = StatusUnreachable
			}
			return nil
		})
	}
	_ = g.Wait()

	statuses := make(map[session.Endpoint]SessionStatus, len(entries))
	for i, e := range entries {
		statuses[e.Endpoint] = results[i]
	}
	return statuses
}

// AuthLogout invalidates the stored token on the server and forgets it.
func (d *Dispatcher) AuthLogout(ctx context.Context, rawURL string) error {
	endpoint, err := session.ParseEndpoint(rawURL)
	if err != nil {
		return err
	}

	sess, ok := d.store.Get(endpoint)
	if !ok {
		return fmt.Errorf("%w: %s", session.ErrUnknownEndpoint, endpoint)
	}

	// A rejected token is as good as logged out.
	if err := d.connect(sess).Logout(ctx); err != nil && !errors.Is(err, qbittorrent.ErrSessionExpired) {
		return fmt.Errorf("failed to log out of %s: %w", endpoint, err)
	}

	d.store.Remove(endpoint)
	d.printf("Logged out of %s.\n", endpoint)
	return nil
}
