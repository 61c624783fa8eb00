package dispatch

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/s0up4200/qbtctl/qbittorrent"
	"github.com/s0up4200/qbtctl/session"
)

// mockAPI implements API for testing
type mockAPI struct {
	mu sync.Mutex

	torrents   []qbittorrent.Torrent
	files      []qbittorrent.TorrentFile
	logs       []qbittorrent.LogEntry
	version    string
	speedMode  qbittorrent.SpeedLimitsMode
	err        error
	logoutErr  error
	versionErr error
	onFetch    func(ctx context.Context) error

	// Track calls for verification
	calls  []string
	hashes []string
	opts   []qbittorrent.ListOptions
	events *[]string
}

func (m *mockAPI) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	if m.events != nil {
		*m.events = append(*m.events, call)
	}
}

func (m *mockAPI) GetTorrents(ctx context.Context, opts qbittorrent.ListOptions) ([]qbittorrent.Torrent, error) {
	m.record("fetch")
	m.opts = append(m.opts, opts)
	if m.onFetch != nil {
		if err := m.onFetch(ctx); err != nil {
			return nil, err
		}
	}
	return m.torrents, m.err
}

func (m *mockAPI) GetTorrentFiles(ctx context.Context, hash string) ([]qbittorrent.TorrentFile, error) {
	m.record("files")
	m.hashes = append(m.hashes, hash)
	return m.files, m.err
}

func (m *mockAPI) AddURL(ctx context.Context, link string, paused bool) error {
	m.record("addURL")
	return m.err
}

func (m *mockAPI) AddFile(ctx context.Context, path string, paused bool) error {
	m.record("addFile")
	return m.err
}

func (m *mockAPI) DeleteTorrents(ctx context.Context, hashes []string, deleteFiles bool) error {
	m.record("delete")
	m.hashes = append(m.hashes, hashes...)
	return m.err
}

func (m *mockAPI) Pause(ctx context.Context, hashes ...string) error {
	m.record("pause")
	m.hashes = append(m.hashes, hashes...)
	return m.err
}

func (m *mockAPI) Resume(ctx context.Context, hashes ...string) error {
	m.record("resume")
	m.hashes = append(m.hashes, hashes...)
	return m.err
}

func (m *mockAPI) Recheck(ctx context.Context, hashes ...string) error {
	m.record("recheck")
	m.hashes = append(m.hashes, hashes...)
	return m.err
}

func (m *mockAPI) Reannounce(ctx context.Context, hashes ...string) error {
	m.record("reannounce")
	m.hashes = append(m.hashes, hashes...)
	return m.err
}

func (m *mockAPI) Shutdown(ctx context.Context) error {
	m.record("shutdown")
	return m.err
}

func (m *mockAPI) Version(ctx context.Context) (string, error) {
	m.record("version")
	if m.versionErr != nil {
		return "", m.versionErr
	}
	return m.version, m.err
}

func (m *mockAPI) GetLogs(ctx context.Context) ([]qbittorrent.LogEntry, error) {
	m.record("logs")
	return m.logs, m.err
}

func (m *mockAPI) SpeedLimitsMode(ctx context.Context) (qbittorrent.SpeedLimitsMode, error) {
	m.record("speedMode")
	return m.speedMode, m.err
}

func (m *mockAPI) ToggleSpeedLimitsMode(ctx context.Context) error {
	m.record("toggleSpeed")
	if m.speedMode == qbittorrent.SpeedLimitsEnabled {
		m.speedMode = qbittorrent.SpeedLimitsDisabled
	} else {
		m.speedMode = qbittorrent.SpeedLimitsEnabled
	}
	return m.err
}

func (m *mockAPI) Logout(ctx context.Context) error {
	m.record("logout")
	return m.logoutErr
}

type mockPrompter struct {
	answer    bool
	questions []string
}

func (p *mockPrompter) Confirm(question string) (bool, error) {
	p.questions = append(p.questions, question)
	return p.answer, nil
}

// renderRecorder logs a "render" event whenever a list footer is written.
type renderRecorder struct {
	bytes.Buffer
	events *[]string
}

func (r *renderRecorder) Write(p []byte) (int, error) {
	if r.events != nil && strings.HasPrefix(string(p), "Found ") {
		*r.events = append(*r.events, "render")
	}
	return r.Buffer.Write(p)
}

const testEndpoint = session.Endpoint("http://qbt.example:8080/")

func storeWithActive() *session.Store {
	store := session.New()
	store.Add(testEndpoint, "SID=abc;")
	return store
}

func connectTo(api API) Connector {
	return func(session.Session) API {
		return api
	}
}

func noAuth(context.Context, session.Endpoint, string, string) (*session.Session, error) {
	return nil, nil
}
