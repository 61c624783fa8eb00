// Package render turns torrents, files, log entries and sessions into console text.
package render

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/s0up4200/qbtctl/qbittorrent"
)

const (
	barCells = 10

	// TimeLayout is used for every timestamp shown to the user.
	TimeLayout = "2006-01-02 15:04:05"
)

// ProgressBar renders p in [0,1] as a bracketed 10 cell bar, e.g. "<###_______>".
// Filled cells are floor(p*10), clamped to the bar.
func ProgressBar(p float64) string {
	filled := 0
	if !math.IsNaN(p) {
		filled = int(math.Floor(p * barCells))
	}
	filled = max(0, min(barCells, filled))

	var sb strings.Builder
	sb.Grow(barCells + 2)
	sb.WriteByte('<')
	sb.WriteString(strings.Repeat("#", filled))
	sb.WriteString(strings.Repeat("_", barCells-filled))
	sb.WriteByte('>')
	return sb.String()
}

// HumanSize formats a byte count with SI (1000 based) units.
func HumanSize(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.Bytes(uint64(-bytes))
	}
	return humanize.Bytes(uint64(bytes))
}

// StateLabel returns the short state code, or the long description when verbose.
func StateLabel(state qbittorrent.TorrentState, verbose bool) string {
	if verbose {
		return state.Description()
	}
	return state.Code()
}

// Timestamp renders a unix timestamp in local time at second resolution.
func Timestamp(epoch int64) string {
	return FormatTime(time.Unix(epoch, 0))
}

// FormatTime renders t in local time with TimeLayout.
func FormatTime(t time.Time) string {
	return t.Local().Format(TimeLayout)
}
