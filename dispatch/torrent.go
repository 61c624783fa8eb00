package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/s0up4200/qbtctl/filter"
	"github.com/s0up4200/qbtctl/qbittorrent"
	"github.com/s0up4200/qbtctl/render"
)

// ListRequest holds the arguments of torrent list. Options are sent
// unchanged on every fetch of a refreshing list.
type ListRequest struct {
	Options qbittorrent.ListOptions
	// Interval enables refreshing when positive.
	Interval time.Duration
	// Filter is applied client side after every fetch. May be nil.
	Filter  *filter.Filter
	Verbose bool
}

type listState int

const (
	listFetch listState = iota
	listRender
	listSleep
	listDone
)

// List prints the torrents of the active session. With an interval it keeps
// refreshing until ctx is cancelled, which ends the listing without error.
func (d *Dispatcher) List(ctx context.Context, req ListRequest) error {
	if req.Options.Sort != "" && !qbittorrent.IsSortField(req.Options.Sort) {
		return fmt.Errorf("%w: unknown sort field %q, use one of %s", ErrInvalidInput, req.Options.Sort, strings.Join(qbittorrent.SortFields, ", "))
	}
	if req.Options.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if req.Interval < 0 {
		return fmt.Errorf("%w: interval must not be negative", ErrInvalidInput)
	}

	api, err := d.activeAPI()
	if err != nil {
		return err
	}

	formatter := d.formatter(req.Verbose)
	sortLabel := req.Options.Sort
	if sortLabel == "" {
		sortLabel = "none"
	}

	var (
		state    = listFetch
		refresh  = 0
		torrents []qbittorrent.Torrent
	)

	for {
		switch state {
		case listFetch:
			torrents, err = api.GetTorrents(ctx, req.Options)
			if err != nil {
				if ctx.Err() != nil {
					d.logger.Debug().Int("refreshes", refresh).Msg("List refresh stopped")
					return nil
				}
				return err
			}
			if req.Filter != nil {
				if torrents, err = req.Filter.Apply(torrents); err != nil {
					return err
				}
			}
			state = listRender

		case listRender:
			var info *render.RefreshInfo
			if req.Interval > 0 {
				info = &render.RefreshInfo{Count: refresh, Interval: req.Interval}
			}
			d.printf("%s", formatter.FormatTorrentList(torrents))
			d.printf("%s", formatter.FormatListFooter(len(torrents), sortLabel, req.Options.Reverse, info))

			if req.Interval > 0 {
				state = listSleep
			} else {
				state = listDone
			}

		case listSleep:
			refresh++
			if err := d.sleep(ctx, req.Interval); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					d.logger.Debug().Int("refreshes", refresh-1).Msg("List refresh stopped")
					return nil
				}
				return err
			}
			if d.clearScreen {
				d.printf("%s", render.ClearScreen)
			}
			state = listFetch

		case listDone:
			return nil
		}
	}
}

// Content prints the files of one torrent.
func (d *Dispatcher) Content(ctx context.Context, hash string) error {
	if strings.TrimSpace(hash) == "" {
		return fmt.Errorf("%w: a torrent hash must be provided", ErrInvalidInput)
	}

	api, err := d.activeAPI()
	if err != nil {
		return err
	}

	files, err := api.GetTorrentFiles(ctx, hash)
	if err != nil {
		return err
	}

	d.printf("%s", d.formatter(false).FormatFiles(files))
	return nil
}

type addSource int

const (
	addFromURL addSource = iota
	addFromFile
)

// classifyAddInput decides whether input is a url or a torrent file. A url
// wins when the input parses with a scheme longer than one character, which
// keeps windows drive letters on the file side.
func classifyAddInput(input string) (addSource, error) {
	if u, err := url.Parse(input); err == nil && len(u.Scheme) > 1 {
		return addFromURL, nil
	}

	info, err := os.Stat(input)
	if err == nil && !info.IsDir() {
		return addFromFile, nil
	}
	return 0, fmt.Errorf("%w: %q is not a valid url or a path to a torrent file", ErrInvalidInput, input)
}

// Add adds a torrent from a url (http, https, magnet) or a local .torrent file.
func (d *Dispatcher) Add(ctx context.Context, input string, paused bool) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("%w: a url or path must be provided", ErrInvalidInput)
	}

	source, err := classifyAddInput(input)
	if err != nil {
		return err
	}

	api, err := d.activeAPI()
	if err != nil {
		return err
	}

	switch source {
	case addFromURL:
		if err := api.AddURL(ctx, input, paused); err != nil {
			return fmt.Errorf("adding url failed: %w", err)
		}
		d.printf("Added url.\n")
	case addFromFile:
		if err := api.AddFile(ctx, input, paused); err != nil {
			return fmt.Errorf("adding torrent file failed: %w", err)
		}
		d.printf("Added torrent file.\n")
	}
	return nil
}

// DeleteRequest holds the arguments of torrent delete.
type DeleteRequest struct {
	Hashes      []string
	DeleteFiles bool
	// Confirmed skips the confirmation prompt.
	Confirmed bool
}

// Delete removes torrents after asking for confirmation.
func (d *Dispatcher) Delete(ctx context.Context, req DeleteRequest) error {
	hashes := make([]string, 0, len(req.Hashes))
	for _, h := range req.Hashes {
		if h = strings.TrimSpace(h); h != "" {
			hashes = append(hashes, h)
		}
	}
	if len(hashes) == 0 {
		return fmt.Errorf("%w: at least one hash must be provided", ErrInvalidInput)
	}

	api, err := d.activeAPI()
	if err != nil {
		return err
	}

	if !req.Confirmed {
		question := fmt.Sprintf("You are about to delete %d torrent(s)", len(hashes))
		if req.DeleteFiles {
			question += " AND THEIR FILES ON DISK"
		}
		question += ". Are you sure?"

		ok, err := d.prompter.Confirm(question)
		if err != nil {
			return err
		}
		if !ok {
			d.printf("Cancelled\n")
			return nil
		}
	}

	if err := api.DeleteTorrents(ctx, hashes, req.DeleteFiles); err != nil {
		return err
	}

	d.printf("Sent request to delete %d torrent(s).\n", len(hashes))
	return nil
}

// Pause pauses one torrent.
func (d *Dispatcher) Pause(ctx context.Context, hash string) error {
	return d.hashAction(ctx, hash, "pause", API.Pause)
}

// Resume resumes one torrent.
func (d *Dispatcher) Resume(ctx context.Context, hash string) error {
	return d.hashAction(ctx, hash, "resume", API.Resume)
}

// Recheck rechecks the data of one torrent.
func (d *Dispatcher) Recheck(ctx context.Context, hash string) error {
	return d.hashAction(ctx, hash, "recheck", API.Recheck)
}

// Reannounce reannounces one torrent to its trackers.
func (d *Dispatcher) Reannounce(ctx context.Context, hash string) error {
	return d.hashAction(ctx, hash, "reannounce", API.Reannounce)
}

func (d *Dispatcher) hashAction(ctx context.Context, hash, verb string, call func(API, context.Context, ...string) error) error {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return fmt.Errorf("%w: a torrent hash must be provided", ErrInvalidInput)
	}

	api, err := d.activeAPI()
	if err != nil {
		return err
	}

	if err := call(api, ctx, hash); err != nil {
		return err
	}

	d.printf("Sent request to %s torrent.\n", verb)
	return nil
}
