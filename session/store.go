package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// RedactedToken replaces tokens in listings unless secrets are revealed.
const RedactedToken = "[REDACTED]"

const fileHeader = "# This is the credentials file for qbtctl, a cli qBittorrent client.\n" +
	"# If you edit it by hand, make sure that active (if set) always has a matching entry in sessions.\n\n"

// Store holds every known session and the active selection.
// If active is set it is always a key of sessions.
type Store struct {
	sessions map[Endpoint]string
	active   Endpoint
	path     string
}

type storeFile struct {
	Active   string            `toml:"active,omitempty"`
	Sessions map[string]string `toml:"sessions"`
}

// New returns an empty, unbacked store.
func New() *Store {
	return &Store{sessions: make(map[Endpoint]string)}
}

// Open loads the store backed by path. A missing file yields an empty store;
// a malformed file is an error.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Str("path", path).Msg("No credentials file, starting with an empty store")
		s := New()
		s.path = path
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.active == "" && len(s.sessions) > 0 {
		logger.Debug().Msg("Credentials file has sessions but none is active")
	}

	s.path = path
	logger.Debug().Str("path", path).Int("sessions", len(s.sessions)).Msg("Loaded credentials")
	return s, nil
}

// Decode reads a store from its TOML representation.
func Decode(r io.Reader) (*Store, error) {
	var f storeFile
	if err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}

	s := New()
	for raw, token := range f.Sessions {
		e, err := ParseEndpoint(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
		}
		if _, dup := s.sessions[e]; dup {
			return nil, fmt.Errorf("%w: more than one session for %s", ErrMalformedStore, e)
		}
		s.sessions[e] = token
	}

	if f.Active != "" {
		e, err := ParseEndpoint(f.Active)
		if err != nil {
			return nil, fmt.Errorf("%w: active: %v", ErrMalformedStore, err)
		}
		if _, ok := s.sessions[e]; !ok {
			return nil, fmt.Errorf("%w: active url %s has no session", ErrMalformedStore, e)
		}
		s.active = e
	}

	return s, nil
}

// Encode writes the TOML representation of the store, including the comment header.
func (s *Store) Encode(w io.Writer) error {
	f := storeFile{
		Active:   string(s.active),
		Sessions: make(map[string]string, len(s.sessions)),
	}
	for e, token := range s.sessions {
		f.Sessions[string(e)] = token
	}

	if _, err := io.WriteString(w, fileHeader); err != nil {
		return err
	}
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(f)
}

// Flush atomically writes the store to the file it was opened from.
func (s *Store) Flush() error {
	if s.path == "" {
		return errors.New("store has no backing file")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credentials: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}
	return nil
}

// Path returns the backing file, or "" for unbacked stores.
func (s *Store) Path() string {
	return s.path
}

// Add inserts or overwrites the session for e. The first session added to a
// store without an active endpoint becomes active.
func (s *Store) Add(e Endpoint, token string) {
	s.sessions[e] = token
	if s.active == "" {
		s.active = e
	}
}

// Activate selects e as the active endpoint.
func (s *Store) Activate(e Endpoint) error {
	if _, ok := s.sessions[e]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEndpoint, e)
	}
	s.active = e
	return nil
}

// Remove deletes the session for e, clearing the active selection if it
// pointed at e. It reports whether a session existed.
func (s *Store) Remove(e Endpoint) bool {
	if s.active == e {
		s.active = ""
	}
	if _, ok := s.sessions[e]; !ok {
		return false
	}
	delete(s.sessions, e)
	return true
}

// Get returns the session stored for e.
func (s *Store) Get(e Endpoint) (Session, bool) {
	token, ok := s.sessions[e]
	if !ok {
		return Session{}, false
	}
	return Session{Endpoint: e, Token: token}, true
}

// Active returns the active endpoint, if any.
func (s *Store) Active() (Endpoint, bool) {
	return s.active, s.active != ""
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	return len(s.sessions)
}

// List returns every session ordered by endpoint. Tokens are replaced by
// RedactedToken unless revealSecrets is set.
func (s *Store) List(revealSecrets bool) []Entry {
	entries := make([]Entry, 0, len(s.sessions))
	for e, token := range s.sessions {
		if !revealSecrets {
			token = RedactedToken
		}
		entries = append(entries, Entry{
			Endpoint: e,
			Token:    token,
			Active:   e == s.active,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Endpoint < entries[j].Endpoint
	})
	return entries
}

// ResolveActive returns the active session.
func (s *Store) ResolveActive() (Session, error) {
	if s.active == "" || len(s.sessions) == 0 {
		return Session{}, ErrNotConfigured
	}
	sess, ok := s.Get(s.active)
	if !ok {
		return Session{}, ErrNotConfigured
	}
	return sess, nil
}
