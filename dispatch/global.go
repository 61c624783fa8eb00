package dispatch

import (
	"context"
	"strings"
)

// Shutdown asks the application to quit.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	api, err := d.activeAPI()
	if err != nil {
		return err
	}

	if err := api.Shutdown(ctx); err != nil {
		return err
	}

	d.printf("Sent request to shutdown the app.\n")
	return nil
}

// Version prints the application version.
func (d *Dispatcher) Version(ctx context.Context) error {
	api, err := d.activeAPI()
	if err != nil {
		return err
	}

	version, err := api.Version(ctx)
	if err != nil {
		return err
	}

	d.printf("The qBittorrent app is running: %s\n", strings.TrimSpace(version))
	return nil
}

// Log prints the main application log.
func (d *Dispatcher) Log(ctx context.Context) error {
	api, err := d.activeAPI()
	if err != nil {
		return err
	}

	entries, err := api.GetLogs(ctx)
	if err != nil {
		return err
	}

	d.printf("%s", d.formatter(false).FormatLogs(entries))
	return nil
}

// AltSpeed prints whether the alternative speed limits are enabled,
// toggling them first when asked to.
func (d *Dispatcher) AltSpeed(ctx context.Context, toggle bool) error {
	api, err := d.activeAPI()
	if err != nil {
		return err
	}

	if toggle {
		if err := api.ToggleSpeedLimitsMode(ctx); err != nil {
			return err
		}
	}

	mode, err := api.SpeedLimitsMode(ctx)
	if err != nil {
		return err
	}

	if toggle {
		d.printf("Alternative speed limits toggled. They are now: %s\n", mode)
	} else {
		d.printf("Alternative speed limits are currently: %s\n", mode)
	}
	return nil
}
