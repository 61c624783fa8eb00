package qbittorrent

import (
	qbit "github.com/autobrr/go-qbittorrent"
)

// TorrentState is the lifecycle state reported by qBittorrent.
type TorrentState int

const (
	StateError TorrentState = iota
	StateMissingFiles
	StateUploading
	StatePausedUploading
	StateQueuedUploading
	StateStalledUploading
	StateCheckingUploading
	StateForcedUploading
	StateAllocating
	StateDownloading
	StateFetchingMetadata
	StatePausedDownloading
	StateQueuedDownloading
	StateStalledDownloading
	StateCheckingDownloading
	StateForcedDownloading
	StateCheckingResumeData
	StateMoving
	StateForcedFetchingMetadata
	StateUnknown
)

type stateInfo struct {
	wire        qbit.TorrentState
	code        string
	description string
}

var stateTable = [...]stateInfo{
	StateError:                  {"error", "Error", "Some error occurred, applies to paused torrents"},
	StateMissingFiles:           {"missingFiles", "MissingFiles", "Torrent data files are missing"},
	StateUploading:              {"uploading", "Uploading", "Torrent is being seeded and data is being transferred"},
	StatePausedUploading:        {"pausedUP", "PausedUP", "Torrent is paused and has finished downloading"},
	StateQueuedUploading:        {"queuedUP", "QueuedUP", "Queuing is enabled and torrent is queued for upload"},
	StateStalledUploading:       {"stalledUP", "StalledUP", "Torrent is being seeded, but no connections were made"},
	StateCheckingUploading:      {"checkingUP", "CheckingUP", "Torrent has finished downloading and is being checked"},
	StateForcedUploading:        {"forcedUP", "ForcedUP", "Torrent is forced to uploading and ignores queue limit"},
	StateAllocating:             {"allocating", "Allocating", "Torrent is allocating disk space for download"},
	StateDownloading:            {"downloading", "Downloading", "Torrent is being downloaded and data is being transferred"},
	StateFetchingMetadata:       {"metaDL", "MetaDL", "Torrent has just started downloading and is fetching metadata"},
	StatePausedDownloading:      {"pausedDL", "PausedDL", "Torrent is paused and has NOT finished downloading"},
	StateQueuedDownloading:      {"queuedDL", "QueuedDL", "Queuing is enabled and torrent is queued for download"},
	StateStalledDownloading:     {"stalledDL", "StalledDL", "Torrent is being downloaded, but no connections were made"},
	StateCheckingDownloading:    {"checkingDL", "CheckingDL", "Same as checkingUP, but torrent has NOT finished downloading"},
	StateForcedDownloading:      {"forcedDL", "ForcedDL", "Torrent is forced to downloading to ignore queue limit"},
	StateCheckingResumeData:     {"checkingResumeData", "CheckingResumeData", "Checking resume data on qBt startup"},
	StateMoving:                 {"moving", "Moving", "Torrent is moving to another location"},
	StateForcedFetchingMetadata: {"forcedMetaDL", "ForcedMetaDL", "Torrent is forced to fetch metadata and ignores queue limit"},
	StateUnknown:                {"unknown", "Unknown", "Unknown status"},
}

// qBittorrent 5 renamed the paused states.
var stateAliases = map[qbit.TorrentState]TorrentState{
	"stoppedUP": StatePausedUploading,
	"stoppedDL": StatePausedDownloading,
}

var stateByWire = func() map[qbit.TorrentState]TorrentState {
	m := make(map[qbit.TorrentState]TorrentState, len(stateTable)+len(stateAliases))
	for s, info := range stateTable {
		m[info.wire] = TorrentState(s)
	}
	for wire, s := range stateAliases {
		m[wire] = s
	}
	return m
}()

// ParseTorrentState maps a wire value to a state. Unrecognized values map to StateUnknown.
func ParseTorrentState(wire qbit.TorrentState) TorrentState {
	if s, ok := stateByWire[wire]; ok {
		return s
	}
	return StateUnknown
}

func (s TorrentState) info() stateInfo {
	if s < 0 || int(s) >= len(stateTable) {
		return stateTable[StateUnknown]
	}
	return stateTable[s]
}

// Code returns the short state code, e.g. "PausedUP".
func (s TorrentState) Code() string {
	return s.info().code
}

// Description returns the long human readable description.
func (s TorrentState) Description() string {
	return s.info().description
}

// Wire returns the value qBittorrent uses for the state.
func (s TorrentState) Wire() qbit.TorrentState {
	return s.info().wire
}

// String implements fmt.Stringer.
func (s TorrentState) String() string {
	return s.Code()
}

// UnmarshalText decodes a wire value and never fails.
func (s *TorrentState) UnmarshalText(text []byte) error {
	*s = ParseTorrentState(qbit.TorrentState(text))
	return nil
}
