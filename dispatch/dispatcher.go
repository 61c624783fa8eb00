// Package dispatch routes CLI commands to the remote API of the active session.
//
// Every command resolves the active session from the credential store, issues
// its remote calls through an API obtained from the Connector and writes the
// rendered result to the output writer. Errors are returned unchanged so the
// caller can apply ExitCode and Describe after flushing the store.
package dispatch

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/s0up4200/qbtctl/render"
	"github.com/s0up4200/qbtctl/session"
)

// Dispatcher executes one command against the credential store and the remote API.
type Dispatcher struct {
	store        *session.Store
	connect      Connector
	authenticate Authenticator
	prompter     Prompter
	sleep        Sleeper
	out          io.Writer
	logger       zerolog.Logger
	clearScreen  bool
}

// New creates a dispatcher. The prompter defaults to declining every question.
func New(store *session.Store, connect Connector, authenticate Authenticator, out io.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:        store,
		connect:      connect,
		authenticate: authenticate,
		prompter:     declinePrompter{},
		sleep:        SleepContext,
		out:          out,
		logger:       zerolog.Nop(),
		clearScreen:  true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) activeAPI() (API, error) {
	sess, err := d.store.ResolveActive()
	if err != nil {
		return nil, err
	}
	d.logger.Debug().Str("endpoint", sess.Endpoint.String()).Msg("Using active session")
	return d.connect(sess), nil
}

func (d *Dispatcher) formatter(verbose bool) *render.ConsoleFormatter {
	return render.NewConsoleFormatter(verbose)
}

func (d *Dispatcher) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

type declinePrompter struct{}

func (declinePrompter) Confirm(string) (bool, error) {
	return false, nil
}
