package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/qbtctl/qbittorrent"
	"github.com/s0up4200/qbtctl/session"
)

func TestFormatTorrentList(t *testing.T) {
	torrents := []qbittorrent.Torrent{
		{
			Hash:     "abc",
			Name:     "Debian ISO",
			Progress: 0.42,
			Ratio:    1.234,
			Size:     650_000_000,
			State:    qbittorrent.StatePausedUploading,
			AddedOn:  time.Unix(1700000000, 0),
		},
	}

	out := NewConsoleFormatter(false).FormatTorrentList(torrents)
	assert.Contains(t, out, "   | Debian ISO\n   |\n")
	assert.Contains(t, out, "   |  > Hash: abc\n")
	assert.Contains(t, out, "   |  > Progress: 42.00% <####______>\n")
	assert.Contains(t, out, "   |  > Size: 650 MB\n")
	assert.Contains(t, out, "   |  > Added on: "+Timestamp(1700000000)+"\n")
	assert.Contains(t, out, "   |  > Ratio: 1.23\n")
	assert.Contains(t, out, "   |  > State: PausedUP\n")

	verbose := NewConsoleFormatter(true).FormatTorrentList(torrents)
	assert.Contains(t, verbose, "   |  > State: PausedUP (Torrent is paused and has finished downloading)\n")
}

func TestFormatListFooter(t *testing.T) {
	f := NewConsoleFormatter(false)

	assert.Equal(t, "Found 3 torrents, sorted by: name\n", f.FormatListFooter(3, "name", false, nil))
	assert.Equal(t, "Found 0 torrents, sorted by: ratio (reversed)\n", f.FormatListFooter(0, "ratio", true, nil))
	assert.Equal(t,
		"Found 2 torrents, sorted by: size\nRefreshed 4 times, every 500ms\n",
		f.FormatListFooter(2, "size", false, &RefreshInfo{Count: 4, Interval: 500 * time.Millisecond}),
	)
}

func TestFormatFiles(t *testing.T) {
	out := NewConsoleFormatter(false).FormatFiles([]qbittorrent.TorrentFile{
		{Name: "a/one.iso", Progress: 1, Size: 2000},
		{Name: "a/two.nfo", Progress: 0, Size: 12},
	})

	assert.Contains(t, out, "   | a/one.iso\n")
	assert.Contains(t, out, "   |  > Progress: 100.00% <##########>\n")
	assert.Contains(t, out, "   |  > Size: 12 B\n")
	assert.True(t, strings.HasSuffix(out, "Torrent contains 2 files.\n"))
}

func TestFormatLogs(t *testing.T) {
	out := NewConsoleFormatter(false).FormatLogs([]qbittorrent.LogEntry{
		{ID: 7, Level: qbittorrent.LogCritical, Timestamp: time.Unix(1700000000, 0), Message: "disk full"},
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "ID\tTYPE\tTIME\t\t\tMESSAGE", lines[0])
	assert.Equal(t, "7\tCRIT\t"+Timestamp(1700000000)+"\tdisk full", lines[len(lines)-1])
}

func TestFormatSessions(t *testing.T) {
	f := NewConsoleFormatter(false)

	assert.Equal(t, "No stored sessions!\n", f.FormatSessions(nil, false))

	entries := []session.Entry{
		{Endpoint: "http://a.example/", Token: session.RedactedToken, Active: true},
		{Endpoint: "http://b.example/", Token: session.RedactedToken},
	}
	out := f.FormatSessions(entries, false)
	assert.Contains(t, out, "NOTE: secrets are redacted")
	assert.Contains(t, out, "[*]\thttp://a.example/: [REDACTED]\n")
	assert.Contains(t, out, "[ ]\thttp://b.example/: [REDACTED]\n")

	revealed := f.FormatSessions([]session.Entry{{Endpoint: "http://a.example/", Token: "SID=abc;"}}, true)
	assert.NotContains(t, revealed, "NOTE")
	assert.Contains(t, revealed, "SID=abc;")
}
