package dispatch

import "github.com/rs/zerolog"

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPrompter sets the prompter used for destructive commands.
func WithPrompter(p Prompter) Option {
	return func(d *Dispatcher) {
		d.prompter = p
	}
}

// WithSleeper replaces the sleep between list refreshes.
func WithSleeper(s Sleeper) Option {
	return func(d *Dispatcher) {
		d.sleep = s
	}
}

// WithClearScreen controls whether a refreshing list clears the terminal between renders.
func WithClearScreen(enabled bool) Option {
	return func(d *Dispatcher) {
		d.clearScreen = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}
