package qbittorrent

import (
	"strings"
	"time"

	qbit "github.com/autobrr/go-qbittorrent"
)

// Torrent contains information about a torrent
type Torrent struct {
	Hash     string
	Name     string
	Progress float64
	Ratio    float64
	Size     int64
	State    TorrentState
	AddedOn  time.Time
}

func torrentFromWire(t qbit.Torrent) Torrent {
	return Torrent{
		Hash:     t.Hash,
		Name:     t.Name,
		Progress: t.Progress,
		Ratio:    t.Ratio,
		Size:     t.Size,
		State:    ParseTorrentState(t.State),
		AddedOn:  time.Unix(t.AddedOn, 0),
	}
}

// IsComplete reports whether every piece has been downloaded.
func (t Torrent) IsComplete() bool {
	return t.Progress >= 1
}

// TorrentFile is one file inside a torrent.
type TorrentFile struct {
	Index    int
	Name     string
	Progress float64
	Size     int64
}

// fileResponse mirrors a torrents/files entry. Progress must stay float64;
// qbit.TorrentFiles decodes it as float32.
type fileResponse struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
	Size     int64   `json:"size"`
}

func filesFromWire(files []fileResponse) []TorrentFile {
	out := make([]TorrentFile, 0, len(files))
	for _, f := range files {
		out = append(out, TorrentFile{
			Index:    f.Index,
			Name:     f.Name,
			Progress: f.Progress,
			Size:     f.Size,
		})
	}
	return out
}

// ListOptions are forwarded verbatim as torrents/info query parameters.
type ListOptions struct {
	Sort    string
	Reverse bool
	Limit   int
}

// SortFields lists the values accepted by ListOptions.Sort.
var SortFields = []string{"name", "hash", "progress", "size", "ratio", "state", "added_on"}

// IsSortField reports whether field is a supported sort key.
func IsSortField(field string) bool {
	for _, f := range SortFields {
		if f == field {
			return true
		}
	}
	return false
}

// LogLevel is the severity of a main log entry.
type LogLevel int

const (
	LogNormal   LogLevel = 1
	LogInfo     LogLevel = 2
	LogWarning  LogLevel = 4
	LogCritical LogLevel = 8
	LogUnknown  LogLevel = 0
)

// Code returns the four letter level tag.
func (l LogLevel) Code() string {
	switch l {
	case LogNormal:
		return "NORM"
	case LogInfo:
		return "INFO"
	case LogWarning:
		return "WARN"
	case LogCritical:
		return "CRIT"
	default:
		return "UNKNOWN"
	}
}

func parseLogLevel(v int) LogLevel {
	switch l := LogLevel(v); l {
	case LogNormal, LogInfo, LogWarning, LogCritical:
		return l
	default:
		return LogUnknown
	}
}

// LogEntry is one line of the application log.
type LogEntry struct {
	ID        int64
	Level     LogLevel
	Timestamp time.Time
	Message   string
}

type logResponse struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Type      int    `json:"type"`
}

// SpeedLimitsMode tells whether the alternative speed limits are in effect.
type SpeedLimitsMode int

const (
	SpeedLimitsUnknown SpeedLimitsMode = iota
	SpeedLimitsDisabled
	SpeedLimitsEnabled
)

func parseSpeedLimitsMode(body string) SpeedLimitsMode {
	switch strings.TrimSpace(body) {
	case "1":
		return SpeedLimitsEnabled
	case "0":
		return SpeedLimitsDisabled
	default:
		return SpeedLimitsUnknown
	}
}

// String implements fmt.Stringer.
func (m SpeedLimitsMode) String() string {
	switch m {
	case SpeedLimitsEnabled:
		return "Enabled"
	case SpeedLimitsDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}
